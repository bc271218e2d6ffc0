package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/summitsquad321/TrailMap/internal/models"
	"github.com/summitsquad321/TrailMap/internal/repository"
)

// setupIngest builds an ingest service over an in-memory SQLite store with a
// pinned clock and the given cameras registered.
func setupIngest(t *testing.T, cameraIDs ...string) (*IngestService, *repository.DetectionRepositoryImpl) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Camera{}, &models.Detection{}))

	cameraRepo := repository.NewCameraRepository(db)
	detectionRepo := repository.NewDetectionRepository(db)
	for _, id := range cameraIDs {
		_, err := cameraRepo.Create(id, "", 41.7, -79.1)
		require.NoError(t, err)
	}

	svc := NewIngestService(cameraRepo, detectionRepo, nil, nil)
	svc.Now = func() time.Time {
		return time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc, detectionRepo
}

func row(fileName, dateTime, cameraID string, buck int) models.DetectionRow {
	return models.DetectionRow{
		FileName:  fileName,
		DateTime:  dateTime,
		BuckCount: buck,
		CameraID:  cameraID,
	}
}

func TestIngestWritesBatch(t *testing.T) {
	svc, detections := setupIngest(t, "cam-1")

	err := svc.Ingest([]models.DetectionRow{
		row("a.jpg", "2024-09-26 06:42:56", "cam-1", 1),
		row("b.jpg", "2024-09-26 07:00:00", "cam-1", 0),
	})
	require.NoError(t, err)

	all, err := detections.StreamAll()
	require.NoError(t, err)
	require.Len(t, all, 2)

	byFile := map[string]models.Detection{}
	for _, det := range all {
		byFile[det.FileName] = det
	}
	a := byFile["a.jpg"]
	assert.Equal(t, "cam-1_20240926T064256_a.jpg", a.DocID)
	assert.Equal(t, time.Date(2024, 9, 26, 6, 42, 56, 0, time.UTC), a.DateTime)
	assert.Equal(t, time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC), a.IngestedAt)
}

func TestIngestIdempotentReingestion(t *testing.T) {
	svc, detections := setupIngest(t, "cam-1")

	first := row("a.jpg", "2024-09-26 06:42:56", "cam-1", 1)
	require.NoError(t, svc.Ingest([]models.DetectionRow{first}))

	second := first
	second.BuckCount = 3
	second.Direction = "SW"
	require.NoError(t, svc.Ingest([]models.DetectionRow{second}))

	all, err := detections.StreamAll()
	require.NoError(t, err)
	require.Len(t, all, 1, "same (camera, timestamp, file) must map to one record")
	assert.Equal(t, 3, all[0].BuckCount)
	assert.Equal(t, "SW", all[0].Direction)
}

func TestIngestUnknownCameraAbortsBatch(t *testing.T) {
	svc, detections := setupIngest(t, "cam-1")

	err := svc.Ingest([]models.DetectionRow{
		row("a.jpg", "2024-09-26 06:42:56", "cam-1", 1),
		row("b.jpg", "2024-09-26 07:00:00", "ghost-2", 0),
		row("c.jpg", "2024-09-26 08:00:00", "ghost-1", 0),
		row("d.jpg", "2024-09-26 09:00:00", "ghost-2", 0),
	})

	var unknown *models.UnknownCameraError
	require.ErrorAs(t, err, &unknown)
	// Every offending id, deduplicated and sorted.
	assert.Equal(t, []string{"ghost-1", "ghost-2"}, unknown.CameraIDs)

	all, err := detections.StreamAll()
	require.NoError(t, err)
	assert.Empty(t, all, "a rejected batch must leave the store unchanged")
}

func TestIngestNowLiteral(t *testing.T) {
	svc, detections := setupIngest(t, "cam-1")

	require.NoError(t, svc.Ingest([]models.DetectionRow{row("a.jpg", "NOW", "cam-1", 0)}))

	all, err := detections.StreamAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC), all[0].DateTime)
	assert.Equal(t, "cam-1_20241001T120000_a.jpg", all[0].DocID)
}

func TestIngestInvalidTimestampAbortsBatch(t *testing.T) {
	svc, detections := setupIngest(t, "cam-1")

	err := svc.Ingest([]models.DetectionRow{
		row("a.jpg", "2024-09-26 06:42:56", "cam-1", 1),
		row("b.jpg", "last tuesday", "cam-1", 0),
	})

	var badTS *models.InvalidTimestampError
	require.ErrorAs(t, err, &badTS)
	assert.Equal(t, "last tuesday", badTS.Raw)

	all, err := detections.StreamAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestIngestNegativeCountAbortsBatch(t *testing.T) {
	svc, detections := setupIngest(t, "cam-1")

	err := svc.Ingest([]models.DetectionRow{row("a.jpg", "2024-09-26 06:42:56", "cam-1", -1)})

	var badRow *models.InvalidRowError
	require.ErrorAs(t, err, &badRow)

	all, err := detections.StreamAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestIngestDuplicateDocIDsLastWins(t *testing.T) {
	svc, detections := setupIngest(t, "cam-1")

	first := row("a.jpg", "2024-09-26 06:42:56", "cam-1", 1)
	second := first
	second.BuckCount = 7
	require.NoError(t, svc.Ingest([]models.DetectionRow{first, second}))

	all, err := detections.StreamAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 7, all[0].BuckCount)
}

func TestIngestEmptyBatch(t *testing.T) {
	svc, detections := setupIngest(t, "cam-1")
	require.NoError(t, svc.Ingest(nil))

	all, err := detections.StreamAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestIngestAcceptedTimestampLayouts(t *testing.T) {
	svc, detections := setupIngest(t, "cam-1")

	err := svc.Ingest([]models.DetectionRow{
		row("a.jpg", "2024-09-26 06:42:56", "cam-1", 0),
		row("b.jpg", "2024-09-26T06:42:56Z", "cam-1", 0),
		row("c.jpg", "2024-09-26T07:42:56", "cam-1", 0),
		row("d.jpg", "2024-09-27", "cam-1", 0),
	})
	require.NoError(t, err)

	all, err := detections.StreamAll()
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestReassignCreatesNewIdentity(t *testing.T) {
	svc, detections := setupIngest(t, "cam-1", "cam-2")

	require.NoError(t, svc.Ingest([]models.DetectionRow{
		row("a.jpg", "2024-09-26 06:42:56", "cam-1", 2),
		row("b.jpg", "2024-09-26 07:00:00", "cam-1", 0),
	}))

	count, err := svc.Reassign([]string{"a.jpg"}, "cam-2")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	all, err := detections.StreamAll()
	require.NoError(t, err)
	// The camera id is part of the derived identity, so re-assignment writes a
	// fresh record and the original remains as an orphan.
	require.Len(t, all, 3)

	ids := map[string]bool{}
	for _, det := range all {
		ids[det.DocID] = true
	}
	assert.True(t, ids["cam-1_20240926T064256_a.jpg"])
	assert.True(t, ids["cam-2_20240926T064256_a.jpg"])
}

func TestReassignPreservesSubSecondPrecision(t *testing.T) {
	svc, detections := setupIngest(t, "cam-1", "cam-2")

	require.NoError(t, svc.Ingest([]models.DetectionRow{
		row("a.jpg", "2024-09-26T06:42:56.789Z", "cam-1", 1),
	}))

	count, err := svc.Reassign([]string{"a.jpg"}, "cam-2")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	all, err := detections.StreamAll()
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, det := range all {
		assert.Equal(t, 789_000_000, det.DateTime.Nanosecond())
	}
}

func TestReassignUnknownCameraFails(t *testing.T) {
	svc, _ := setupIngest(t, "cam-1")

	require.NoError(t, svc.Ingest([]models.DetectionRow{
		row("a.jpg", "2024-09-26 06:42:56", "cam-1", 0),
	}))

	_, err := svc.Reassign([]string{"a.jpg"}, "ghost")
	var unknown *models.UnknownCameraError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, []string{"ghost"}, unknown.CameraIDs)
}

func TestReassignNoMatches(t *testing.T) {
	svc, _ := setupIngest(t, "cam-1")

	count, err := svc.Reassign([]string{"missing.jpg"}, "cam-1")
	require.NoError(t, err)
	assert.Zero(t, count)
}
