package utils

import "math"

// HaversineDistance calculates the great-circle distance in meters between two
// coordinate pairs.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371.0

	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180.0)*math.Cos(lat2*math.Pi/180.0)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c * 1000 // meters
}

// CalculateBoundingBox returns a rough lat/lon box around a point, used to
// narrow candidates before the exact distance check.
func CalculateBoundingBox(lat, lon, radiusMeters float64) (minLat, maxLat, minLon, maxLon float64) {
	latDegreePerMeter := 1.0 / 111320.0
	lonDegreePerMeter := 1.0 / (111320.0 * math.Cos(lat*math.Pi/180.0))

	deltaLat := radiusMeters * latDegreePerMeter
	deltaLon := radiusMeters * lonDegreePerMeter

	return lat - deltaLat, lat + deltaLat, lon - deltaLon, lon + deltaLon
}
