package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	// Same point.
	assert.InDelta(t, 0, HaversineDistance(41.7048, -79.1453, 41.7048, -79.1453), 0.001)

	// One degree of latitude is roughly 111 km.
	d := HaversineDistance(41.0, -79.0, 42.0, -79.0)
	assert.InDelta(t, 111195, d, 500)
}

func TestCalculateBoundingBox(t *testing.T) {
	minLat, maxLat, minLon, maxLon := CalculateBoundingBox(41.7048, -79.1453, 1000)

	assert.Less(t, minLat, 41.7048)
	assert.Greater(t, maxLat, 41.7048)
	assert.Less(t, minLon, -79.1453)
	assert.Greater(t, maxLon, -79.1453)

	// The box must contain a point 500 m north of the center.
	north := 41.7048 + 500.0/111320.0
	assert.GreaterOrEqual(t, maxLat, north)
}
