package repository

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/summitsquad321/TrailMap/internal/models"
	"github.com/summitsquad321/TrailMap/internal/utils"
)

// CameraRepository defines registry operations for camera documents.
type CameraRepository interface {
	Create(cameraID, nickname string, lat, lon float64) (*models.Camera, error)
	Get(cameraID string) (*models.Camera, error)
	Update(cameraID string, fields models.CameraUpdate) (*models.Camera, error)
	Delete(cameraID string) error
	List() ([]models.Camera, error)
	ListIDs() (map[string]struct{}, error)
	FindWithinRadius(lat, lon, radiusMeters float64) ([]models.Camera, error)
}

// CameraRepositoryImpl provides methods to interact with the Camera model in the database.
type CameraRepositoryImpl struct {
	db *gorm.DB
}

// NewCameraRepository creates a new CameraRepositoryImpl instance with the provided GORM database connection.
func NewCameraRepository(db *gorm.DB) *CameraRepositoryImpl {
	return &CameraRepositoryImpl{db: db}
}

// Create persists a new camera. The id is user-supplied and immutable, so the
// registry is read first; an existing id fails with DuplicateCameraError and
// leaves the stored camera untouched.
func (r *CameraRepositoryImpl) Create(cameraID, nickname string, lat, lon float64) (*models.Camera, error) {
	var existing models.Camera
	err := r.db.First(&existing, "camera_id = ?", cameraID).Error
	switch {
	case err == nil:
		return nil, &models.DuplicateCameraError{CameraID: cameraID}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, errors.Wrap(err, "could not check camera existence")
	}

	now := time.Now().UTC()
	camera := models.Camera{
		CameraID:  cameraID,
		Nickname:  nickname,
		Lat:       lat,
		Lon:       lon,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.db.Create(&camera).Error; err != nil {
		return nil, errors.Wrap(err, "could not create camera")
	}
	return &camera, nil
}

// Get retrieves a camera by its id.
func (r *CameraRepositoryImpl) Get(cameraID string) (*models.Camera, error) {
	var camera models.Camera
	err := r.db.First(&camera, "camera_id = ?", cameraID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &models.NotFoundError{CameraID: cameraID}
	}
	if err != nil {
		return nil, errors.Wrap(err, "could not load camera")
	}
	return &camera, nil
}

// Update merges the supplied mutable fields (nickname, lat, lon) into an
// existing camera and bumps updated_at. Absent camera fails with NotFoundError.
func (r *CameraRepositoryImpl) Update(cameraID string, fields models.CameraUpdate) (*models.Camera, error) {
	camera, err := r.Get(cameraID)
	if err != nil {
		return nil, err
	}
	if fields.Nickname != nil {
		camera.Nickname = *fields.Nickname
	}
	if fields.Lat != nil {
		camera.Lat = *fields.Lat
	}
	if fields.Lon != nil {
		camera.Lon = *fields.Lon
	}
	camera.UpdatedAt = time.Now().UTC()
	if err := r.db.Save(camera).Error; err != nil {
		return nil, errors.Wrap(err, "could not update camera")
	}
	return camera, nil
}

// Delete removes a camera document. Detections referencing it are kept for
// audit, so they may outlive their camera.
func (r *CameraRepositoryImpl) Delete(cameraID string) error {
	if _, err := r.Get(cameraID); err != nil {
		return err
	}
	if err := r.db.Delete(&models.Camera{}, "camera_id = ?", cameraID).Error; err != nil {
		return errors.Wrap(err, "could not delete camera")
	}
	return nil
}

// List retrieves all cameras from the database.
func (r *CameraRepositoryImpl) List() ([]models.Camera, error) {
	var cameras []models.Camera
	if err := r.db.Find(&cameras).Error; err != nil {
		return nil, errors.Wrap(err, "could not list cameras")
	}
	return cameras, nil
}

// ListIDs retrieves the set of registered camera ids. Ingestion takes this
// snapshot once per batch.
func (r *CameraRepositoryImpl) ListIDs() (map[string]struct{}, error) {
	var ids []string
	if err := r.db.Model(&models.Camera{}).Pluck("camera_id", &ids).Error; err != nil {
		return nil, errors.Wrap(err, "could not list camera ids")
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// FindWithinRadius returns cameras within radiusMeters of the given point.
// A bounding box narrows the candidates before the exact Haversine check.
func (r *CameraRepositoryImpl) FindWithinRadius(lat, lon, radiusMeters float64) ([]models.Camera, error) {
	minLat, maxLat, minLon, maxLon := utils.CalculateBoundingBox(lat, lon, radiusMeters)

	var candidates []models.Camera
	err := r.db.
		Where("lat BETWEEN ? AND ?", minLat, maxLat).
		Where("lon BETWEEN ? AND ?", minLon, maxLon).
		Find(&candidates).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not query cameras by location")
	}

	var nearby []models.Camera
	for _, cam := range candidates {
		if utils.HaversineDistance(lat, lon, cam.Lat, cam.Lon) <= radiusMeters {
			nearby = append(nearby, cam)
		}
	}
	return nearby, nil
}
