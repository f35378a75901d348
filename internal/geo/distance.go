// Package geo provides great-circle distance computation between
// coordinate pairs.
package geo

import "math"

// EarthRadiusKM is the spherical-earth radius used by Distance.
const EarthRadiusKM = 6371.0

// Distance returns the great-circle distance in kilometers between two
// latitude/longitude pairs given in degrees, using the haversine formula
// on a spherical earth.
//
// Coordinates are not validated here; callers are responsible for keeping
// latitudes in [-90,90] and longitudes in [-180,180].
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := degreesToRadians(lat1)
	lat2Rad := degreesToRadians(lat2)
	deltaLat := degreesToRadians(lat2 - lat1)
	deltaLon := degreesToRadians(lon2 - lon1)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKM * c
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
