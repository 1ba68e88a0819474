package util

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

const earthRadiusMeters = 6371000.0

// HaversineDistance returns the great-circle distance in meters between two
// points given as decimal degrees.
func HaversineDistance(lat1, lng1, lat2, lng2 float64) float64 {
	point1 := s2.PointFromLatLng(s2.LatLngFromDegrees(lat1, lng1))
	point2 := s2.PointFromLatLng(s2.LatLngFromDegrees(lat2, lng2))

	angle := s1.Angle(s2.ChordAngleBetweenPoints(point1, point2).Angle())

	return angle.Radians() * earthRadiusMeters
}

// DestinationPoint returns the point reached by travelling distance meters
// from (lat, lng) along the given bearing (degrees, 0=north, 90=east).
// Returns [lat, lng] in degrees.
func DestinationPoint(lat, lng, bearing, distance float64) [2]float64 {
	latRad := lat * math.Pi / 180
	lngRad := lng * math.Pi / 180
	bearingRad := bearing * math.Pi / 180
	angular := distance / earthRadiusMeters

	newLatRad := math.Asin(math.Sin(latRad)*math.Cos(angular) +
		math.Cos(latRad)*math.Sin(angular)*math.Cos(bearingRad))
	newLngRad := lngRad + math.Atan2(
		math.Sin(bearingRad)*math.Sin(angular)*math.Cos(latRad),
		math.Cos(angular)-math.Sin(latRad)*math.Sin(newLatRad))

	return [2]float64{
		newLatRad * 180 / math.Pi,
		newLngRad * 180 / math.Pi,
	}
}
