package models

import (
	"fmt"
	"strings"
)

// DuplicateCameraError is returned when creating a camera whose id is already
// registered.
type DuplicateCameraError struct {
	CameraID string
}

func (e *DuplicateCameraError) Error() string {
	return fmt.Sprintf("camera '%s' already exists", e.CameraID)
}

// NotFoundError is returned when updating or deleting a camera that is not in
// the registry.
type NotFoundError struct {
	CameraID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("camera '%s' not found", e.CameraID)
}

// UnknownCameraError aborts an entire ingestion batch when one or more rows
// reference camera ids absent from the registry snapshot. CameraIDs holds
// every offending id, sorted, so the operator can create all of them before
// retrying the batch.
type UnknownCameraError struct {
	CameraIDs []string
}

func (e *UnknownCameraError) Error() string {
	return fmt.Sprintf("unknown camera_id(s) [%s] - create cameras first", strings.Join(e.CameraIDs, ", "))
}

// InvalidTimestampError aborts an ingestion batch when a row's date_time is
// neither the literal "NOW" nor a parseable timestamp.
type InvalidTimestampError struct {
	Raw string
}

func (e *InvalidTimestampError) Error() string {
	return fmt.Sprintf("unparseable date_time '%s'", e.Raw)
}

// InvalidRowError aborts an ingestion batch on malformed row data, such as a
// negative count or a missing required field.
type InvalidRowError struct {
	Reason string
}

func (e *InvalidRowError) Error() string {
	return "invalid detection row: " + e.Reason
}

// MalformedPayloadError rejects an undecodable or structurally broken CSV
// payload at the endpoint boundary, before validation logic runs.
type MalformedPayloadError struct {
	Detail string
}

func (e *MalformedPayloadError) Error() string {
	return "malformed CSV: " + e.Detail
}
