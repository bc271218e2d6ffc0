package models

import "time"

// DocIDTimeLayout is the second-precision timestamp format embedded in
// detection document ids.
const DocIDTimeLayout = "20060102T150405"

// Detection represents one classified trail-camera image stored in the database.
type Detection struct {
	DocID      string    `gorm:"primaryKey;column:doc_id" json:"doc_id"`
	FileName   string    `gorm:"index" json:"file_name"`
	DateTime   time.Time `json:"date_time"`
	BuckCount  int       `json:"buck_count"`
	DeerCount  int       `json:"deer_count"`
	DoeCount   int       `json:"doe_count"`
	CameraID   string    `gorm:"index;column:camera_id" json:"camera_id"`
	Direction  string    `json:"direction,omitempty"`
	IngestedAt time.Time `json:"ingested_at"`
}

// DetectionRow is one raw row from a classifier export, as received at the
// ingestion boundary before validation.
type DetectionRow struct {
	FileName  string `json:"file_name"`
	DateTime  string `json:"date_time"`
	BuckCount int    `json:"buck_count"`
	DeerCount int    `json:"deer_count"`
	DoeCount  int    `json:"doe_count"`
	CameraID  string `json:"camera_id"`
	Direction string `json:"direction,omitempty"`
}

// DetectionDocID derives the deterministic storage key for a detection.
// Re-ingesting the same (camera, timestamp, file) triple always maps to the
// same key, so repeated uploads overwrite instead of duplicating.
func DetectionDocID(cameraID string, ts time.Time, fileName string) string {
	return cameraID + "_" + ts.Format(DocIDTimeLayout) + "_" + fileName
}
