package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKm_Zero(t *testing.T) {
	assert.Equal(t, 0.0, HaversineKm(12.9716, 77.5946, 12.9716, 77.5946))
}

func TestHaversineKm_Symmetric(t *testing.T) {
	pairs := [][4]float64{
		{12.9716, 77.5946, 13.0827, 80.2707},
		{-33.8688, 151.2093, 51.5074, -0.1278},
		{0, 179.9, 0, -179.9},
	}
	for _, p := range pairs {
		ab := HaversineKm(p[0], p[1], p[2], p[3])
		ba := HaversineKm(p[2], p[3], p[0], p[1])
		assert.InDelta(t, ab, ba, 1e-9)
	}
}

func TestHaversineKm_KnownDistances(t *testing.T) {
	oneDegree := EarthRadiusKm * math.Pi / 180
	assert.InDelta(t, oneDegree, HaversineKm(0, 0, 1, 0), 1e-9)
	assert.InDelta(t, oneDegree, HaversineKm(0, 0, 0, 1), 1e-9)

	// Across the antimeridian the short way round is 0.2 degrees.
	assert.InDelta(t, 0.2*oneDegree, HaversineKm(0, 179.9, 0, -179.9), 1e-6)

	// Antipodes.
	assert.InDelta(t, math.Pi*EarthRadiusKm, HaversineKm(0, 0, 0, 180), 1e-6)
}
