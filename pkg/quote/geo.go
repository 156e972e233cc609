package quote

import (
	"math"
)

// earthRadiusKM is the mean radius of the Earth.
const earthRadiusKM = 6371.0

// Distance returns the great-circle distance in kilometres between two
// locations using the haversine formula. It is symmetric, never negative,
// and zero for identical points. Coordinates are assumed to be within
// valid latitude/longitude ranges; range validation belongs to the data
// entry layer.
func Distance(a, b Location) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKM * c
}
