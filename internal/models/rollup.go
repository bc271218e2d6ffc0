package models

import "time"

// CompassDegrees maps 8-point compass strings to degrees clockwise from north.
var CompassDegrees = map[string]int{
	"N": 0, "NE": 45, "E": 90, "SE": 135,
	"S": 180, "SW": 225, "W": 270, "NW": 315,
}

// Rollup is a computed per-camera aggregate over a filtered detection slice.
// It is never persisted; the map view merges rollups onto the camera list and
// treats absent cameras as zero/blank.
type Rollup struct {
	CameraID string    `json:"camera_id"`
	Total    int       `json:"total"`
	BuckPct  float64   `json:"buck_pct"`
	DoePct   float64   `json:"doe_pct"`
	LastSeen time.Time `json:"last_seen"`
	// Heading is the predominant travel direction in degrees, nil when no
	// detection in the slice carried a recognizable direction.
	Heading *int `json:"heading,omitempty"`
}

// RollupFilter selects the detection slice to aggregate.
type RollupFilter struct {
	// Cameras is the set of camera ids to include.
	Cameras []string
	// StartDate and EndDate bound the calendar date of the detection,
	// inclusive. A zero value leaves that side unbounded.
	StartDate time.Time
	EndDate   time.Time
	// StartHour and EndHour bound the hour of day, inclusive, 0-23.
	StartHour int
	EndHour   int
}
