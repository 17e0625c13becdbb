package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceMiles(t *testing.T) {
	sf := Point{Lat: 37.77, Lon: -122.42}

	tests := []struct {
		name string
		to   Point
		want float64
		tol  float64
	}{
		{"same point", sf, 0, 1e-9},
		{"nearby block", Point{Lat: 37.78, Lon: -122.41}, 0.88, 0.05},
		{"los angeles", Point{Lat: 34.05, Lon: -118.24}, 348, 3},
		{"antipode", Point{Lat: -37.77, Lon: 57.58}, math.Pi * EarthRadiusMiles, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DistanceMiles(sf, tt.to), tt.tol)
		})
	}
}

func TestDistanceSymmetric(t *testing.T) {
	a := Point{Lat: 40.71, Lon: -74.0}
	b := Point{Lat: 51.5, Lon: -0.12}
	assert.InDelta(t, DistanceMiles(a, b), DistanceMiles(b, a), 1e-9)
}

func TestShortDistance(t *testing.T) {
	a := Point{Lat: 37.77, Lon: -122.42}
	b := Point{Lat: 37.78, Lon: -122.41}
	d := DistanceMiles(a, b)

	assert.Greater(t, d, 0.5)
	assert.Less(t, d, 5.0)
}

func TestValid(t *testing.T) {
	assert.True(t, Point{Lat: 90, Lon: -180}.Valid())
	assert.False(t, Point{Lat: 91, Lon: 0}.Valid())
	assert.False(t, Point{Lat: 0, Lon: 180.5}.Valid())
	assert.False(t, Point{Lat: math.NaN(), Lon: 0}.Valid())
	assert.False(t, Point{Lat: 0, Lon: math.Inf(1)}.Valid())
}
