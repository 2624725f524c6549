package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"discovery-service/internal/adapters/catalog"
	"discovery-service/internal/contextkeys"
	"discovery-service/internal/core/domain"
	"discovery-service/internal/core/port"
)

// CatalogRepository - read-only адаптер загрузки каталога из PostgreSQL.
// Сервис не владеет таблицей listings: запись в нее делает внешний
// контур, мы только вычитываем активный срез на старте.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// LoadCatalog вычитывает активные объявления и прогоняет их через ту же
// нормализацию, что и HTTP-источник, чтобы дальше по ядру шла одна
// каноническая форма записи.
func (r *CatalogRepository) LoadCatalog(ctx context.Context) ([]domain.PropertyRecord, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresCatalogRepository",
		"method":    "LoadCatalog",
	})

	query := `SELECT id, title, category, property_type, property_type_id, listing_type,
                     price, price_unit, bhk, bedrooms, bathrooms,
                     built_up_area_sqft, carpet_area_sqft, super_built_up_area_sqft, plot_area_sqft,
                     city, state, locality, landmark, latitude, longitude,
                     amenities, status, created_at
              FROM listings
              WHERE status = 'active'
              ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		repoLogger.Error("Failed to query active listings", err, nil)
		return nil, fmt.Errorf("CatalogRepository: failed to query active listings: %w", err)
	}
	defer rows.Close()

	var records []domain.PropertyRecord
	for rows.Next() {
		var raw catalog.RawListing
		var (
			title, category, propertyType, propertyTypeID, listingType *string
			priceUnit, bhk, status, createdAt                          *string
			city, state, locality, landmark                            *string
			price                                                      *float64
			builtUp, carpet, superBuiltUp, plotArea                    *float64
		)

		err := rows.Scan(
			&raw.ID, &title, &category, &propertyType, &propertyTypeID, &listingType,
			&price, &priceUnit, &bhk, &raw.Bedrooms, &raw.Bathrooms,
			&builtUp, &carpet, &superBuiltUp, &plotArea,
			&city, &state, &locality, &landmark, &raw.Latitude, &raw.Longitude,
			&raw.Amenities, &status, &createdAt,
		)
		if err != nil {
			repoLogger.Error("Failed to scan listing row", err, nil)
			return nil, fmt.Errorf("CatalogRepository: failed to scan listing: %w", err)
		}

		raw.Title = derefString(title)
		raw.Category = derefString(category)
		raw.PropertyType = derefString(propertyType)
		raw.PropertyTypeID = derefString(propertyTypeID)
		raw.ListingType = derefString(listingType)
		raw.Price = catalog.FlexFloat(derefFloat(price))
		raw.PriceUnit = derefString(priceUnit)
		raw.BHK = derefString(bhk)
		raw.BuiltUpAreaSqft = catalog.FlexFloat(derefFloat(builtUp))
		raw.CarpetAreaSqft = catalog.FlexFloat(derefFloat(carpet))
		raw.SuperBuiltUpAreaSqft = catalog.FlexFloat(derefFloat(superBuiltUp))
		raw.PlotAreaSqft = catalog.FlexFloat(derefFloat(plotArea))
		raw.City = derefString(city)
		raw.State = derefString(state)
		raw.Locality = derefString(locality)
		raw.Landmark = derefString(landmark)
		raw.Status = derefString(status)
		raw.CreatedAt = derefString(createdAt)

		records = append(records, catalog.MapRawListing(raw))
	}

	if err = rows.Err(); err != nil {
		repoLogger.Error("Error during listings rows iteration", err, nil)
		return nil, fmt.Errorf("CatalogRepository: error during listings iteration: %w", err)
	}

	repoLogger.Info("Successfully loaded catalog from database", port.Fields{
		"objects_count": len(records),
	})
	return records, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
