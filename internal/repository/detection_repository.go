package repository

import (
	"sort"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/summitsquad321/TrailMap/internal/models"
)

// DetectionRepository defines storage operations for detection documents.
type DetectionRepository interface {
	BatchWrite(batch map[string]models.Detection) error
	StreamAll() ([]models.Detection, error)
	FindByFileNames(fileNames []string) ([]models.Detection, error)
}

// DetectionRepositoryImpl provides methods to interact with the Detection model in the database.
type DetectionRepositoryImpl struct {
	db *gorm.DB
}

// NewDetectionRepository creates a new DetectionRepositoryImpl instance with the provided GORM database connection.
func NewDetectionRepository(db *gorm.DB) *DetectionRepositoryImpl {
	return &DetectionRepositoryImpl{db: db}
}

// BatchWrite commits every record in the batch inside one transaction: either
// all rows become visible or none do. A record whose doc id already exists is
// replaced in full, which is what makes re-ingestion of the same export
// idempotent.
func (r *DetectionRepositoryImpl) BatchWrite(batch map[string]models.Detection) error {
	if len(batch) == 0 {
		return nil
	}

	docIDs := make([]string, 0, len(batch))
	for docID := range batch {
		docIDs = append(docIDs, docID)
	}
	sort.Strings(docIDs)

	detections := make([]models.Detection, 0, len(batch))
	for _, docID := range docIDs {
		det := batch[docID]
		det.DocID = docID
		detections = append(detections, det)
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&detections).Error
	})
	return errors.Wrap(err, "could not batch-write detections")
}

// StreamAll retrieves every detection from the database. The aggregation
// engine materializes the full working set and filters in memory.
func (r *DetectionRepositoryImpl) StreamAll() ([]models.Detection, error) {
	var detections []models.Detection
	if err := r.db.Find(&detections).Error; err != nil {
		return nil, errors.Wrap(err, "could not load detections")
	}
	return detections, nil
}

// FindByFileNames retrieves all detections whose file name is in the given
// list. Used by the maintenance re-assignment flow.
func (r *DetectionRepositoryImpl) FindByFileNames(fileNames []string) ([]models.Detection, error) {
	if len(fileNames) == 0 {
		return nil, nil
	}
	var detections []models.Detection
	if err := r.db.Where("file_name IN ?", fileNames).Find(&detections).Error; err != nil {
		return nil, errors.Wrap(err, "could not load detections by file name")
	}
	return detections, nil
}
