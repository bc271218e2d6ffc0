package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summitsquad321/TrailMap/internal/models"
)

func TestParseDetectionCSV(t *testing.T) {
	payload := []byte(`file_name,date_time,buck_count,deer_count,doe_count,camera_id,direction
MUD_0276.JPG,2024-09-26 06:42:56,1,0,0,cam-1,NE
MUD_0277.JPG,NOW,0,2,1,cam-2,
`)

	rows, err := ParseDetectionCSV(payload)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "MUD_0276.JPG", rows[0].FileName)
	assert.Equal(t, "2024-09-26 06:42:56", rows[0].DateTime)
	assert.Equal(t, 1, rows[0].BuckCount)
	assert.Equal(t, "NE", rows[0].Direction)

	assert.Equal(t, "NOW", rows[1].DateTime)
	assert.Equal(t, 2, rows[1].DeerCount)
	assert.Empty(t, rows[1].Direction)
}

func TestParseDetectionCSVWithoutDirectionColumn(t *testing.T) {
	payload := []byte(`file_name,date_time,buck_count,deer_count,doe_count,camera_id
a.jpg,2024-09-26 06:42:56,1,0,0,cam-1
`)

	rows, err := ParseDetectionCSV(payload)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].Direction)
}

func TestParseDetectionCSVMissingColumn(t *testing.T) {
	// No buck_count column.
	payload := []byte(`file_name,date_time,deer_count,doe_count,camera_id
a.jpg,2024-09-26 06:42:56,0,0,cam-1
`)

	_, err := ParseDetectionCSV(payload)
	var malformed *models.MalformedPayloadError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, malformed.Detail, "buck_count")
}

func TestParseDetectionCSVBadCounts(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"non-integer count", "a.jpg,2024-09-26 06:42:56,many,0,0,cam-1"},
		{"negative count", "a.jpg,2024-09-26 06:42:56,-1,0,0,cam-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := []byte("file_name,date_time,buck_count,deer_count,doe_count,camera_id\n" + tt.row + "\n")
			_, err := ParseDetectionCSV(payload)
			var malformed *models.MalformedPayloadError
			require.ErrorAs(t, err, &malformed)
		})
	}
}

func TestParseDetectionCSVMissingRequiredField(t *testing.T) {
	payload := []byte(`file_name,date_time,buck_count,deer_count,doe_count,camera_id
,2024-09-26 06:42:56,1,0,0,cam-1
`)

	_, err := ParseDetectionCSV(payload)
	var malformed *models.MalformedPayloadError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, malformed.Detail, "file_name")
}

func TestParseDetectionCSVRaggedRow(t *testing.T) {
	payload := []byte(`file_name,date_time,buck_count,deer_count,doe_count,camera_id
a.jpg,2024-09-26 06:42:56,1,0,0
`)

	_, err := ParseDetectionCSV(payload)
	var malformed *models.MalformedPayloadError
	require.ErrorAs(t, err, &malformed)
}

func TestParseDetectionCSVEmptyBody(t *testing.T) {
	_, err := ParseDetectionCSV(nil)
	var malformed *models.MalformedPayloadError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, malformed.Detail, "empty")
}

func TestParseDetectionCSVInvalidUTF8(t *testing.T) {
	_, err := ParseDetectionCSV([]byte{0xff, 0xfe, 0xfd})
	var malformed *models.MalformedPayloadError
	require.ErrorAs(t, err, &malformed)
}
