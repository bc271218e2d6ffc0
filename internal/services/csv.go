package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/summitsquad321/TrailMap/internal/models"
)

// requiredColumns are the CSV header columns every classifier export must
// carry. The direction column is optional.
var requiredColumns = []string{
	"file_name", "date_time", "buck_count", "deer_count", "doe_count", "camera_id",
}

// ParseDetectionCSV decodes a raw classifier export into detection rows.
// Structural problems (undecodable bytes, missing columns, ragged records,
// non-integer or negative counts, empty required fields) fail the whole
// payload with MalformedPayloadError before any validation logic runs.
func ParseDetectionCSV(payload []byte) ([]models.DetectionRow, error) {
	if !utf8.Valid(payload) {
		return nil, &models.MalformedPayloadError{Detail: "body is not valid UTF-8"}
	}

	reader := csv.NewReader(bytes.NewReader(payload))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &models.MalformedPayloadError{Detail: "empty body"}
	}
	if err != nil {
		return nil, &models.MalformedPayloadError{Detail: err.Error()}
	}

	colIndex := make(map[string]int, len(header))
	for i, col := range header {
		colIndex[strings.TrimSpace(strings.ToLower(col))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := colIndex[col]; !ok {
			return nil, &models.MalformedPayloadError{Detail: fmt.Sprintf("missing required column '%s'", col)}
		}
	}
	directionIdx, hasDirection := colIndex["direction"]

	var rows []models.DetectionRow
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, &models.MalformedPayloadError{Detail: fmt.Sprintf("row %d: %v", line, err)}
		}

		row := models.DetectionRow{
			FileName: strings.TrimSpace(record[colIndex["file_name"]]),
			DateTime: strings.TrimSpace(record[colIndex["date_time"]]),
			CameraID: strings.TrimSpace(record[colIndex["camera_id"]]),
		}
		if row.FileName == "" {
			return nil, &models.MalformedPayloadError{Detail: fmt.Sprintf("row %d: missing file_name", line)}
		}
		if row.DateTime == "" {
			return nil, &models.MalformedPayloadError{Detail: fmt.Sprintf("row %d: missing date_time", line)}
		}
		if row.CameraID == "" {
			return nil, &models.MalformedPayloadError{Detail: fmt.Sprintf("row %d: missing camera_id", line)}
		}

		if row.BuckCount, err = parseCount(record[colIndex["buck_count"]], "buck_count", line); err != nil {
			return nil, err
		}
		if row.DeerCount, err = parseCount(record[colIndex["deer_count"]], "deer_count", line); err != nil {
			return nil, err
		}
		if row.DoeCount, err = parseCount(record[colIndex["doe_count"]], "doe_count", line); err != nil {
			return nil, err
		}
		if hasDirection {
			row.Direction = strings.TrimSpace(record[directionIdx])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseCount(raw, column string, line int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &models.MalformedPayloadError{Detail: fmt.Sprintf("row %d: %s '%s' is not an integer", line, column, strings.TrimSpace(raw))}
	}
	if n < 0 {
		return 0, &models.MalformedPayloadError{Detail: fmt.Sprintf("row %d: %s must be non-negative", line, column)}
	}
	return n, nil
}
