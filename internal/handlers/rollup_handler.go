package handlers

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/summitsquad321/TrailMap/internal/models"
	"github.com/summitsquad321/TrailMap/internal/services"
)

const dateLayout = "2006-01-02"

// RollupHandler serves per-camera aggregates for the map and table views.
type RollupHandler struct {
	Rollups *services.RollupService
	Cameras *services.CameraService
}

// NewRollupHandler creates a new RollupHandler with the given services.
func NewRollupHandler(rollups *services.RollupService, cameras *services.CameraService) *RollupHandler {
	return &RollupHandler{Rollups: rollups, Cameras: cameras}
}

// GetRollups handles GET /rollups to compute filtered per-camera aggregates.
// @Summary Aggregate detections per camera
// @Description Computes total, buck/doe percentages, last-seen and predominant heading per camera over the filtered detection slice
// @Tags rollups
// @Produce json
// @Param cameras query string false "Comma-separated camera ids (default: all registered)"
// @Param start_date query string false "Inclusive start date YYYY-MM-DD"
// @Param end_date query string false "Inclusive end date YYYY-MM-DD"
// @Param start_hour query int false "Inclusive start hour of day 0-23 (default 0)"
// @Param end_hour query int false "Inclusive end hour of day 0-23 (default 23)"
// @Success 200 {object} map[string]models.Rollup "Rollups keyed by camera id"
// @Failure 400 {object} map[string]interface{} "Invalid filter parameter"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /rollups [get]
func (h *RollupHandler) GetRollups(c *fiber.Ctx) error {
	filter := models.RollupFilter{StartHour: 0, EndHour: 23}

	if raw := c.Query("cameras"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				filter.Cameras = append(filter.Cameras, id)
			}
		}
	} else {
		ids, err := h.Cameras.ListIDs()
		if err != nil {
			log.Printf("Error listing cameras for rollup: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": true, "message": err.Error(),
			})
		}
		filter.Cameras = ids
	}

	var err error
	if filter.StartDate, err = parseDateParam(c.Query("start_date")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "invalid start_date, expected YYYY-MM-DD",
		})
	}
	if filter.EndDate, err = parseDateParam(c.Query("end_date")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "invalid end_date, expected YYYY-MM-DD",
		})
	}
	if filter.StartHour, err = parseHourParam(c.Query("start_hour"), 0); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "invalid start_hour, expected 0-23",
		})
	}
	if filter.EndHour, err = parseHourParam(c.Query("end_hour"), 23); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "invalid end_hour, expected 0-23",
		})
	}

	rollups, err := h.Rollups.Aggregate(filter)
	if err != nil {
		log.Printf("Error aggregating rollups: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	return c.JSON(rollups)
}

func parseDateParam(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, raw)
}

func parseHourParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	hour, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if hour < 0 || hour > 23 {
		return 0, strconv.ErrRange
	}
	return hour, nil
}
