package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"discovery-service/internal/core/domain"
)

func TestFindNearby_RadiusScenario(t *testing.T) {
	// Центр - точка в Мумбаи
	center := domain.Coordinates{Lat: 19.0760, Lng: 72.8777}

	catalog := &fakeCatalog{records: []domain.PropertyRecord{
		// ~0.5 км к северу
		makeRecord("near", "Residential", "Apartment", withCoords(19.0805, 72.8777)),
		// ~5 км, вне радиуса 2 км
		makeRecord("mid", "Residential", "Apartment", withCoords(19.1210, 72.8777)),
		// Пуна, далеко за радиусом
		makeRecord("far", "Residential", "Villa", withCoords(18.5204, 73.8567)),
		// Без координат - молча исключается
		makeRecord("nogeo", "Residential", "Apartment"),
	}}

	uc := NewFindNearbyUseCase(catalog)
	result, err := uc.Execute(context.Background(), center, 2.0)
	require.NoError(t, err)

	require.Len(t, result.Results, 1)
	assert.Equal(t, "near", result.Results[0].ID)
	assert.InDelta(t, 0.5, result.Results[0].DistanceKm, 0.05)

	assert.Equal(t, 4, result.CatalogSize)
	assert.Equal(t, 3, result.GeocodedSize)
}

func TestFindNearby_SortedByDistance(t *testing.T) {
	center := domain.Coordinates{Lat: 19.0760, Lng: 72.8777}

	catalog := &fakeCatalog{records: []domain.PropertyRecord{
		makeRecord("b", "Residential", "Apartment", withCoords(19.0850, 72.8777)),
		makeRecord("c", "Residential", "Apartment", withCoords(19.0900, 72.8777)),
		makeRecord("a", "Residential", "Apartment", withCoords(19.0760, 72.8777)),
	}}

	uc := NewFindNearbyUseCase(catalog)
	result, err := uc.Execute(context.Background(), center, 5.0)
	require.NoError(t, err)

	require.Len(t, result.Results, 3)
	assert.Equal(t, "a", result.Results[0].ID)
	assert.Equal(t, "b", result.Results[1].ID)
	assert.Equal(t, "c", result.Results[2].ID)
	assert.Equal(t, 0.0, result.Results[0].DistanceKm)
}

func TestFindNearby_EmptyCatalog(t *testing.T) {
	uc := NewFindNearbyUseCase(&fakeCatalog{})

	result, err := uc.Execute(context.Background(), domain.Coordinates{Lat: 19, Lng: 72}, 2.0)
	require.NoError(t, err)

	assert.Empty(t, result.Results)
	assert.Equal(t, 0, result.CatalogSize)
	assert.Equal(t, 0, result.GeocodedSize)
}

func TestFindNearby_BoundaryInclusive(t *testing.T) {
	center := domain.Coordinates{Lat: 0, Lng: 0}
	// Ровно на границе радиуса запись включается
	edgeLat := 2.0 / 111.19494
	catalog := &fakeCatalog{records: []domain.PropertyRecord{
		makeRecord("edge", "Residential", "Apartment", withCoords(edgeLat, 0)),
	}}

	uc := NewFindNearbyUseCase(catalog)
	result, err := uc.Execute(context.Background(), center, 2.0)
	require.NoError(t, err)

	assert.Len(t, result.Results, 1)
}

func TestBoundingBoxDeltas_PolarLongitudeDegenerates(t *testing.T) {
	_, lngDelta := boundingBoxDeltas(89.9, 10)
	assert.Equal(t, 360.0, lngDelta, "longitude prefilter disabled near the poles")

	latDelta, lngDelta := boundingBoxDeltas(0, 111)
	assert.InDelta(t, 1.2, latDelta, 0.01)
	assert.InDelta(t, 1.2, lngDelta, 0.01)
}
