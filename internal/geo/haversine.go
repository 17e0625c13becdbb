// Package geo computes great-circle distances between coordinates.
package geo

import "math"

// EarthRadiusMiles is the mean Earth radius used for all distances
const EarthRadiusMiles = 3958.8

// Point is a latitude/longitude pair in decimal degrees
type Point struct {
	Lat float64
	Lon float64
}

// Valid reports whether the point is a finite coordinate on the globe
func (p Point) Valid() bool {
	return ValidLatitude(p.Lat) && ValidLongitude(p.Lon)
}

func ValidLatitude(v float64) bool {
	return finite(v) && v >= -90 && v <= 90
}

func ValidLongitude(v float64) bool {
	return finite(v) && v >= -180 && v <= 180
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// DistanceMiles returns the haversine distance between a and b
func DistanceMiles(a, b Point) float64 {
	phi1 := radians(a.Lat)
	phi2 := radians(b.Lat)
	dPhi := radians(b.Lat - a.Lat)
	dLambda := radians(b.Lon - a.Lon)

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)
	// rounding can push h just above 1 for antipodal points
	h := math.Min(1, sinPhi*sinPhi+math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda)

	return 2 * EarthRadiusMiles * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
