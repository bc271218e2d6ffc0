package handlers

import (
	"context"
	"crypto/subtle"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/summitsquad321/TrailMap/internal/models"
	"github.com/summitsquad321/TrailMap/internal/services"
)

const InvalidTokenError = "invalid token"

// IngestHandler exposes batch detection ingestion over HTTP for the external
// detection pipeline.
type IngestHandler struct {
	Service *services.IngestService
	// Archive receives a copy of every accepted payload; may be nil.
	Archive *services.ArchiveService
	Token   string
}

// NewIngestHandler creates a new IngestHandler with the given IngestService,
// optional ArchiveService and the shared bearer token.
func NewIngestHandler(service *services.IngestService, archive *services.ArchiveService, token string) *IngestHandler {
	return &IngestHandler{Service: service, Archive: archive, Token: token}
}

// IngestCSV handles POST /ingest to accept a batched classifier export.
// @Summary Ingest detection rows
// @Description Accepts a CSV payload of classified detections and commits it as one atomic batch
// @Tags ingest
// @Accept plain
// @Param Authorization header string true "Bearer token"
// @Success 204 "Batch committed"
// @Failure 400 {object} map[string]interface{} "Malformed CSV or unknown camera ids"
// @Failure 401 {object} map[string]interface{} "Missing or invalid token"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /ingest [post]
func (h *IngestHandler) IngestCSV(c *fiber.Ctx) error {
	// Token check happens before the body is touched.
	auth := c.Get(fiber.HeaderAuthorization)
	if subtle.ConstantTimeCompare([]byte(auth), []byte("Bearer "+h.Token)) != 1 {
		log.Printf("Rejected ingest request from %s: bad token", c.IP())
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": InvalidTokenError,
		})
	}

	body := c.Body()
	rows, err := services.ParseDetectionCSV(body)
	if err != nil {
		log.Printf("Rejected ingest payload from %s: %v", c.IP(), err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}

	if err := h.Service.Ingest(rows); err != nil {
		var unknown *models.UnknownCameraError
		var badTS *models.InvalidTimestampError
		var badRow *models.InvalidRowError
		if errors.As(err, &unknown) || errors.As(err, &badTS) || errors.As(err, &badRow) {
			log.Printf("Rejected ingest batch from %s: %v", c.IP(), err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": true, "message": err.Error(),
			})
		}
		log.Printf("Ingest batch failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}

	// Archive failures are logged but never fail an already-committed batch.
	if h.Archive != nil {
		if key, err := h.Archive.StorePayload(context.Background(), body); err != nil {
			log.Printf("Payload archive failed: %v", err)
		} else {
			log.Printf("Archived ingest payload as %s", key)
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}
