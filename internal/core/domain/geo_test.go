package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistanceKm_SamePoint(t *testing.T) {
	assert.Equal(t, 0.0, HaversineDistanceKm(19.0760, 72.8777, 19.0760, 72.8777))
}

func TestHaversineDistanceKm_KnownDistances(t *testing.T) {
	// Мумбаи - Пуна, около 120 км по прямой
	d := HaversineDistanceKm(19.0760, 72.8777, 18.5204, 73.8567)
	assert.InDelta(t, 120, d, 5)

	// Точки на экваторе с разницей в 1 градус долготы: ~111.19 км
	d = HaversineDistanceKm(0, 0, 0, 1)
	assert.InDelta(t, 111.19, d, 0.1)
}

func TestHaversineDistanceKm_Symmetric(t *testing.T) {
	d1 := HaversineDistanceKm(19.0760, 72.8777, 28.6139, 77.2090)
	d2 := HaversineDistanceKm(28.6139, 77.2090, 19.0760, 72.8777)
	assert.InDelta(t, d1, d2, 1e-9)
}

func TestHasCoordinates(t *testing.T) {
	withCoords := &PropertyRecord{Address: Address{Coordinates: &Coordinates{Lat: 19.07, Lng: 72.87}}}
	assert.True(t, withCoords.HasCoordinates())

	noCoords := &PropertyRecord{}
	assert.False(t, noCoords.HasCoordinates())
}
