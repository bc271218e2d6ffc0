package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/summitsquad321/TrailMap/internal/models"
	"github.com/summitsquad321/TrailMap/internal/services"
)

const InvalidCoordinateError = "invalid coordinate"

// CameraHandler defines handlers for managing camera registry resources.
type CameraHandler struct {
	Service *services.CameraService
}

// NewCameraHandler creates a new CameraHandler with the given CameraService.
func NewCameraHandler(service *services.CameraService) *CameraHandler {
	return &CameraHandler{Service: service}
}

// ListCameras handles GET /cameras to retrieve every registered camera.
// @Summary List all cameras
// @Description Gets all registered cameras keyed by camera id
// @Tags cameras
// @Produce json
// @Success 200 {object} map[string]models.Camera "Cameras by id"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /cameras [get]
func (h *CameraHandler) ListCameras(c *fiber.Ctx) error {
	cameras, err := h.Service.List()
	if err != nil {
		log.Printf("Error listing cameras: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	return c.JSON(cameras)
}

// CreateCamera handles POST /cameras to register a new camera.
// @Summary Register a new camera
// @Description Creates a camera with a unique, immutable camera_id
// @Tags cameras
// @Accept json
// @Produce json
// @Param camera body models.Camera true "Camera to create (camera_id, nickname, lat, lon)"
// @Success 201 {object} models.Camera "Camera created"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 409 {object} map[string]interface{} "Camera id already exists"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /cameras [post]
func (h *CameraHandler) CreateCamera(c *fiber.Ctx) error {
	var req models.Camera
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "invalid request body",
		})
	}
	if req.CameraID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "camera_id is required",
		})
	}

	camera, err := h.Service.Create(req.CameraID, req.Nickname, req.Lat, req.Lon)
	if err != nil {
		var dup *models.DuplicateCameraError
		if errors.As(err, &dup) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": true, "message": dup.Error(),
			})
		}
		log.Printf("Error creating camera %s: %v", req.CameraID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(camera)
}

// UpdateCamera handles PATCH /cameras/:id to merge mutable fields.
// @Summary Update a camera
// @Description Merges the supplied nickname/lat/lon into an existing camera
// @Tags cameras
// @Accept json
// @Produce json
// @Param id path string true "Camera ID"
// @Param fields body models.CameraUpdate true "Fields to update"
// @Success 200 {object} models.Camera "Updated camera"
// @Failure 400 {object} map[string]interface{} "Invalid request body or non-updatable field"
// @Failure 404 {object} map[string]interface{} "Camera not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /cameras/{id} [patch]
func (h *CameraHandler) UpdateCamera(c *fiber.Ctx) error {
	cameraID := c.Params("id")

	// Only nickname/lat/lon are updatable. camera_id and the server-set
	// timestamps are immutable, so a body naming them is rejected outright
	// rather than silently dropped.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "invalid request body",
		})
	}
	for key := range raw {
		switch key {
		case "nickname", "lat", "lon":
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": true, "message": fmt.Sprintf("field '%s' is not updatable", key),
			})
		}
	}

	var fields models.CameraUpdate
	if err := c.BodyParser(&fields); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "invalid request body",
		})
	}

	camera, err := h.Service.Update(cameraID, fields)
	if err != nil {
		var notFound *models.NotFoundError
		if errors.As(err, &notFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": notFound.Error(),
			})
		}
		log.Printf("Error updating camera %s: %v", cameraID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	return c.JSON(camera)
}

// DeleteCamera handles DELETE /cameras/:id.
// @Summary Delete a camera
// @Description Removes a camera from the registry; its detections are retained
// @Tags cameras
// @Produce json
// @Param id path string true "Camera ID"
// @Success 204 "Camera deleted"
// @Failure 404 {object} map[string]interface{} "Camera not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /cameras/{id} [delete]
func (h *CameraHandler) DeleteCamera(c *fiber.Ctx) error {
	cameraID := c.Params("id")

	if err := h.Service.Delete(cameraID); err != nil {
		var notFound *models.NotFoundError
		if errors.As(err, &notFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": notFound.Error(),
			})
		}
		log.Printf("Error deleting camera %s: %v", cameraID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// NearbyCameras handles GET /cameras/nearby to find cameras around a point.
// @Summary Find cameras near a point
// @Description Returns cameras within the given radius of lat/lon
// @Tags cameras
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Param radius query number false "Radius in meters (default 1000)"
// @Success 200 {array} models.Camera "Nearby cameras"
// @Failure 400 {object} map[string]interface{} "Invalid coordinates"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /cameras/nearby [get]
func (h *CameraHandler) NearbyCameras(c *fiber.Ctx) error {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	if errLat != nil || errLon != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": InvalidCoordinateError,
		})
	}

	radius := 1000.0
	if raw := c.Query("radius"); raw != "" {
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil || val <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": true, "message": "invalid radius",
			})
		}
		radius = val
	}

	cameras, err := h.Service.Nearby(lat, lon, radius)
	if err != nil {
		log.Printf("Error querying nearby cameras: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	if cameras == nil {
		cameras = []models.Camera{}
	}
	return c.JSON(cameras)
}
