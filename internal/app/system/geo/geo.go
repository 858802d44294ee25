// Package geo provides coordinate validation and great-circle distance
// on a spherical-earth model. The proximity query itself runs on the
// 2dsphere index in MongoDB; this package exists so input validation and
// tests don't depend on the database.
package geo

import (
	"fmt"
	"math"
)

// EarthRadiusMeters is the mean earth radius used for the spherical model.
const EarthRadiusMeters = 6371000.0

// Longitude/latitude bounds in WGS-84 degrees.
const (
	MinLongitude = -180.0
	MaxLongitude = 180.0
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
)

// ValidateCoordinates checks that a longitude/latitude pair lies within
// valid WGS-84 ranges. The returned error names the offending component.
func ValidateCoordinates(lng, lat float64) error {
	if math.IsNaN(lng) || lng < MinLongitude || lng > MaxLongitude {
		return fmt.Errorf("longitude %v out of range [%v, %v]", lng, MinLongitude, MaxLongitude)
	}
	if math.IsNaN(lat) || lat < MinLatitude || lat > MaxLatitude {
		return fmt.Errorf("latitude %v out of range [%v, %v]", lat, MinLatitude, MaxLatitude)
	}
	return nil
}

// Distance returns the great-circle distance in meters between two
// longitude/latitude pairs, using the haversine formula.
func Distance(lng1, lat1, lng2, lat2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}
