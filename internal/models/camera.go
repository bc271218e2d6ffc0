package models

import "time"

// Camera represents a registered fixed observation point shown on the map.
type Camera struct {
	CameraID  string    `gorm:"primaryKey;column:camera_id" json:"camera_id"`
	Nickname  string    `json:"nickname"`
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CameraUpdate carries a partial update of a camera's mutable fields.
// Nil pointers mean "leave unchanged". CameraID and CreatedAt are immutable
// and intentionally have no counterpart here.
type CameraUpdate struct {
	Nickname *string  `json:"nickname"`
	Lat      *float64 `json:"lat"`
	Lon      *float64 `json:"lon"`
}
