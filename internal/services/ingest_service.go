package services

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/summitsquad321/TrailMap/internal/metrics"
	"github.com/summitsquad321/TrailMap/internal/models"
	"github.com/summitsquad321/TrailMap/internal/repository"
)

// timestampLayouts are the accepted date_time formats, tried in order.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// rollupInvalidator lets the ingest path drop cached rollups after the
// detection set changes.
type rollupInvalidator interface {
	FlushCache()
}

// IngestService validates incoming detection rows against the camera registry
// and commits them as a single atomic batch.
type IngestService struct {
	Cameras    repository.CameraRepository
	Detections repository.DetectionRepository
	Metrics    *metrics.Metrics
	Rollups    rollupInvalidator
	// Now supplies the ingestion wall clock; tests override it.
	Now func() time.Time
}

// NewIngestService creates a new IngestService with the given repositories.
// metrics and rollups may be nil.
func NewIngestService(cameras repository.CameraRepository, detections repository.DetectionRepository, m *metrics.Metrics, rollups rollupInvalidator) *IngestService {
	return &IngestService{
		Cameras:    cameras,
		Detections: detections,
		Metrics:    m,
		Rollups:    rollups,
		Now:        time.Now,
	}
}

// Ingest validates every row and writes the whole batch in one transaction:
// either all rows are committed or none is. The registry snapshot is taken
// once at the start of the batch; a camera created mid-batch by another caller
// is not recognized. Rows that collide on the derived doc id overwrite the
// stored record in full, and duplicate ids within one batch collapse last-wins
// before the write.
func (s *IngestService) Ingest(rows []models.DetectionRow) error {
	if len(rows) == 0 {
		return nil
	}

	known, err := s.Cameras.ListIDs()
	if err != nil {
		s.Metrics.IncrementBatches("rejected")
		return err
	}

	// Collect every offending camera id, not just the first, so the operator
	// can create all of them and retry the batch once.
	var unknown []string
	seen := make(map[string]struct{})
	for _, row := range rows {
		if _, ok := known[row.CameraID]; ok {
			continue
		}
		if _, dup := seen[row.CameraID]; dup {
			continue
		}
		seen[row.CameraID] = struct{}{}
		unknown = append(unknown, row.CameraID)
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		s.Metrics.IncrementBatches("rejected")
		return &models.UnknownCameraError{CameraIDs: unknown}
	}

	now := s.Now().UTC()
	batch := make(map[string]models.Detection, len(rows))
	for _, row := range rows {
		if row.BuckCount < 0 || row.DeerCount < 0 || row.DoeCount < 0 {
			s.Metrics.IncrementBatches("rejected")
			return &models.InvalidRowError{Reason: fmt.Sprintf("negative count for file '%s'", row.FileName)}
		}

		ts, err := resolveTimestamp(row.DateTime, now)
		if err != nil {
			s.Metrics.IncrementBatches("rejected")
			return err
		}

		docID := models.DetectionDocID(row.CameraID, ts, row.FileName)
		batch[docID] = models.Detection{
			DocID:      docID,
			FileName:   row.FileName,
			DateTime:   ts,
			BuckCount:  row.BuckCount,
			DeerCount:  row.DeerCount,
			DoeCount:   row.DoeCount,
			CameraID:   row.CameraID,
			Direction:  row.Direction,
			IngestedAt: now,
		}
	}

	if err := s.Detections.BatchWrite(batch); err != nil {
		s.Metrics.IncrementBatches("rejected")
		return err
	}

	log.Printf("Ingested batch: %d rows, %d documents", len(rows), len(batch))
	s.Metrics.IncrementBatches("accepted")
	s.Metrics.AddIngestedRows(len(batch))
	if s.Rollups != nil {
		s.Rollups.FlushCache()
	}
	return nil
}

// Reassign re-ingests every detection matching the given file names under a
// new camera id. Since the camera id is part of the derived identity this
// produces fresh records; the originals remain in place for audit.
func (s *IngestService) Reassign(fileNames []string, cameraID string) (int, error) {
	detections, err := s.Detections.FindByFileNames(fileNames)
	if err != nil {
		return 0, err
	}
	if len(detections) == 0 {
		return 0, nil
	}

	known, err := s.Cameras.ListIDs()
	if err != nil {
		return 0, err
	}
	if _, ok := known[cameraID]; !ok {
		return 0, &models.UnknownCameraError{CameraIDs: []string{cameraID}}
	}

	// The stored timestamps pass through unchanged, so sub-second precision
	// from the original ingest survives the re-assignment.
	now := s.Now().UTC()
	batch := make(map[string]models.Detection, len(detections))
	for _, det := range detections {
		det.CameraID = cameraID
		det.DocID = models.DetectionDocID(cameraID, det.DateTime, det.FileName)
		det.IngestedAt = now
		batch[det.DocID] = det
	}
	if err := s.Detections.BatchWrite(batch); err != nil {
		s.Metrics.IncrementBatches("rejected")
		return 0, err
	}

	s.Metrics.IncrementBatches("accepted")
	s.Metrics.AddIngestedRows(len(batch))
	if s.Rollups != nil {
		s.Rollups.FlushCache()
	}
	log.Printf("Reassigned %d detections to camera %s", len(batch), cameraID)
	return len(batch), nil
}

// resolveTimestamp maps the literal "NOW" to the ingestion wall clock and
// otherwise tries the accepted layouts.
func resolveTimestamp(raw string, now time.Time) (time.Time, error) {
	if raw == "NOW" {
		return now, nil
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, &models.InvalidTimestampError{Raw: raw}
}
