package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/summitsquad321/TrailMap/internal/models"
	"github.com/summitsquad321/TrailMap/internal/repository"
	"github.com/summitsquad321/TrailMap/internal/services"
)

// DetectionHandler exposes the maintenance views over stored detections.
type DetectionHandler struct {
	Detections repository.DetectionRepository
	Ingest     *services.IngestService
}

// NewDetectionHandler creates a new DetectionHandler.
func NewDetectionHandler(detections repository.DetectionRepository, ingest *services.IngestService) *DetectionHandler {
	return &DetectionHandler{Detections: detections, Ingest: ingest}
}

// ListDetections handles GET /detections to browse every stored detection.
// @Summary List all detections
// @Description Gets every stored detection for the maintenance grid
// @Tags detections
// @Produce json
// @Success 200 {array} models.Detection "All detections"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /detections [get]
func (h *DetectionHandler) ListDetections(c *fiber.Ctx) error {
	detections, err := h.Detections.StreamAll()
	if err != nil {
		log.Printf("Error listing detections: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	if detections == nil {
		detections = []models.Detection{}
	}
	return c.JSON(detections)
}

// ReassignRequest is the body of POST /detections/reassign.
type ReassignRequest struct {
	FileNames []string `json:"file_names"`
	CameraID  string   `json:"camera_id"`
}

// ReassignDetections handles POST /detections/reassign to move detections to
// another camera. The rows are re-ingested under the new camera id, which
// produces new document ids; the original records remain in place.
// @Summary Re-assign detections to another camera
// @Description Re-ingests the matching detections under a new camera id (data hygiene)
// @Tags detections
// @Accept json
// @Produce json
// @Param request body ReassignRequest true "File names and target camera id"
// @Success 200 {object} map[string]interface{} "Number of reassigned rows"
// @Failure 400 {object} map[string]interface{} "Invalid request or unknown camera"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /detections/reassign [post]
func (h *DetectionHandler) ReassignDetections(c *fiber.Ctx) error {
	var req ReassignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "invalid request body",
		})
	}
	if len(req.FileNames) == 0 || req.CameraID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "file_names and camera_id are required",
		})
	}

	count, err := h.Ingest.Reassign(req.FileNames, req.CameraID)
	if err != nil {
		var unknown *models.UnknownCameraError
		if errors.As(err, &unknown) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": true, "message": unknown.Error(),
			})
		}
		log.Printf("Error reassigning detections: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"reassigned": count})
}
