package utils

import "math"

// MetersPerDegree is the flat-earth scale used for duplicate detection.
const MetersPerDegree = 111000

// PlanarDistance approximates the distance in meters between two points by
// scaling the Euclidean distance of their degree differences.
func PlanarDistance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := math.Abs(lat1 - lat2)
	dLng := math.Abs(lng1 - lng2)
	return math.Sqrt(dLat*dLat+dLng*dLng) * MetersPerDegree
}
