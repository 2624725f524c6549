package usecase

import (
	"context"
	"math"
	"sort"

	"discovery-service/internal/contextkeys"
	"discovery-service/internal/core/domain"
	"discovery-service/internal/core/port"
)

// Километров в одном градусе широты; для прямоугольного префильтра
// берется с запасом 1.2, точную отсечку делает гаверсинус.
const kmPerDegreeLat = 111.0

// FindNearbyUseCase - радиусный поиск вокруг брошенной на карту точки.
type FindNearbyUseCase struct {
	catalog port.CatalogPort
}

func NewFindNearbyUseCase(catalog port.CatalogPort) *FindNearbyUseCase {
	return &FindNearbyUseCase{catalog: catalog}
}

func (uc *FindNearbyUseCase) Execute(ctx context.Context, center domain.Coordinates, radiusKm float64) (*domain.NearbyResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":  "FindNearby",
		"lat":       center.Lat,
		"lng":       center.Lng,
		"radius_km": radiusKm,
	})

	ucLogger.Info("Use case started", nil)

	snapshot := uc.catalog.Snapshot()

	latDelta, lngDelta := boundingBoxDeltas(center.Lat, radiusKm)

	geocoded := 0
	results := make([]domain.NearbyProperty, 0)
	for i := range snapshot {
		rec := &snapshot[i]
		// Записи без координат молча исключаются - это не ошибка,
		// их доля видна через счетчики в результате.
		if !rec.HasCoordinates() {
			continue
		}
		geocoded++

		coords := rec.Address.Coordinates
		if math.Abs(coords.Lat-center.Lat) > latDelta || math.Abs(coords.Lng-center.Lng) > lngDelta {
			continue
		}

		distance := domain.HaversineDistanceKm(center.Lat, center.Lng, coords.Lat, coords.Lng)
		if distance <= radiusKm {
			results = append(results, domain.NearbyProperty{
				PropertyRecord: snapshot[i],
				DistanceKm:     distance,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DistanceKm < results[j].DistanceKm
	})

	ucLogger.Info("Use case finished successfully", port.Fields{
		"catalog_size":  len(snapshot),
		"geocoded_size": geocoded,
		"results_count": len(results),
	})

	return &domain.NearbyResult{
		Results:      results,
		CatalogSize:  len(snapshot),
		GeocodedSize: geocoded,
	}, nil
}

// boundingBoxDeltas - грубый прямоугольник вокруг центра, чтобы не считать
// гаверсинус для всего каталога. Вблизи полюсов долготная ширина вырождается,
// тогда префильтр по долготе отключается.
func boundingBoxDeltas(centerLat, radiusKm float64) (latDelta, lngDelta float64) {
	if radiusKm < 0 {
		return 0, 0
	}
	latDelta = radiusKm / kmPerDegreeLat * 1.2

	cosLat := math.Cos(centerLat * math.Pi / 180)
	if cosLat < 0.01 {
		return latDelta, 360
	}
	lngDelta = radiusKm / (kmPerDegreeLat * cosLat) * 1.2
	return latDelta, lngDelta
}
