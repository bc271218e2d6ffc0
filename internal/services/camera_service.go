package services

import (
	"log"

	"github.com/summitsquad321/TrailMap/internal/models"
	"github.com/summitsquad321/TrailMap/internal/repository"
)

// CameraService provides registry operations for the dashboard and the
// nearby-camera map query.
type CameraService struct {
	Repo repository.CameraRepository
}

// NewCameraService creates a new CameraService with the given repository.
func NewCameraService(repo repository.CameraRepository) *CameraService {
	return &CameraService{Repo: repo}
}

// Create registers a new camera. Fails with DuplicateCameraError if the id is
// already taken.
func (s *CameraService) Create(cameraID, nickname string, lat, lon float64) (*models.Camera, error) {
	camera, err := s.Repo.Create(cameraID, nickname, lat, lon)
	if err != nil {
		return nil, err
	}
	log.Printf("Created camera %s (%s)", camera.CameraID, camera.Nickname)
	return camera, nil
}

// Update merges the supplied mutable fields into an existing camera.
func (s *CameraService) Update(cameraID string, fields models.CameraUpdate) (*models.Camera, error) {
	return s.Repo.Update(cameraID, fields)
}

// Delete removes a camera from the registry. Its detections are retained for
// audit.
func (s *CameraService) Delete(cameraID string) error {
	if err := s.Repo.Delete(cameraID); err != nil {
		return err
	}
	log.Printf("Deleted camera %s (detections retained)", cameraID)
	return nil
}

// List returns every registered camera keyed by camera id.
func (s *CameraService) List() (map[string]models.Camera, error) {
	cameras, err := s.Repo.List()
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Camera, len(cameras))
	for _, cam := range cameras {
		byID[cam.CameraID] = cam
	}
	return byID, nil
}

// ListIDs returns the ids of every registered camera.
func (s *CameraService) ListIDs() ([]string, error) {
	set, err := s.Repo.ListIDs()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids, nil
}

// Nearby returns cameras within radiusMeters of the given point.
func (s *CameraService) Nearby(lat, lon, radiusMeters float64) ([]models.Camera, error) {
	return s.Repo.FindWithinRadius(lat, lon, radiusMeters)
}
