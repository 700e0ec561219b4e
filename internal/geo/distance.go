// Package geo provides the single great-circle distance implementation
// shared by every caller that compares coordinates.
package geo

import "math"

// earthRadiusMeters is the mean Earth radius used by the haversine formula.
const earthRadiusMeters = 6371000.0

// DistanceMeters returns the haversine distance in meters between two
// coordinates given in decimal degrees. It is symmetric, returns 0 for
// identical points, and stays finite for any lat in [-90,90] and lng in
// [-180,180], antipodal pairs included.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	// Floating point rounding can push a marginally above 1 for antipodal
	// points, which would make Sqrt(1-a) NaN.
	if a > 1 {
		a = 1
	}

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
