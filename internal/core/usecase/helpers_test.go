package usecase

import (
	"discovery-service/internal/core/domain"
)

// fakeCatalog - минимальная in-memory реализация CatalogPort для тестов.
type fakeCatalog struct {
	records []domain.PropertyRecord
}

func (f *fakeCatalog) Snapshot() []domain.PropertyRecord {
	out := make([]domain.PropertyRecord, len(f.records))
	copy(out, f.records)
	return out
}

func (f *fakeCatalog) Get(id string) (*domain.PropertyRecord, bool) {
	for i := range f.records {
		if f.records[i].ID == id {
			rec := f.records[i]
			return &rec, true
		}
	}
	return nil, false
}

func (f *fakeCatalog) Stats() domain.CatalogStats {
	stats := domain.CatalogStats{Total: len(f.records)}
	for i := range f.records {
		if f.records[i].HasCoordinates() {
			stats.Geocoded++
		}
	}
	return stats
}

// fakeTaxonomy отдает заранее заданные имена корзин по id типа.
type fakeTaxonomy struct {
	buckets map[string]string
}

func (f *fakeTaxonomy) BucketName(propertyTypeID string) string {
	return f.buckets[propertyTypeID]
}

func defaultTaxonomy() *fakeTaxonomy {
	return &fakeTaxonomy{buckets: map[string]string{
		"pt-res":  "Residential",
		"pt-com":  "Commercial",
		"pt-plot": "Plot & Land",
	}}
}

type recordOption func(*domain.PropertyRecord)

func withCity(city string) recordOption {
	return func(r *domain.PropertyRecord) { r.Address.City = city }
}

func withCoords(lat, lng float64) recordOption {
	return func(r *domain.PropertyRecord) {
		r.Address.Coordinates = &domain.Coordinates{Lat: lat, Lng: lng}
	}
}

func withPrice(price float64, unit string) recordOption {
	return func(r *domain.PropertyRecord) {
		r.Price = price
		r.PriceUnit = unit
	}
}

func withBedrooms(n int) recordOption {
	return func(r *domain.PropertyRecord) { r.Bedrooms = n }
}

func withListing(lt domain.ListingType) recordOption {
	return func(r *domain.PropertyRecord) { r.ListingType = lt }
}

func withTitle(title string) recordOption {
	return func(r *domain.PropertyRecord) { r.Title = title }
}

func makeRecord(id, category, typeName string, opts ...recordOption) domain.PropertyRecord {
	rec := domain.PropertyRecord{
		ID:               id,
		Title:            typeName + " " + id,
		CategoryRaw:      category,
		PropertyTypeName: typeName,
		ListingType:      domain.ListingTypeSell,
		Status:           domain.StatusActive,
		Address:          domain.Address{City: "Mumbai"},
	}
	for _, opt := range opts {
		opt(&rec)
	}
	return rec
}

// mixedCatalog - каталог с жилыми, коммерческими записями и участками
// в двух городах; общая опора для сценарных тестов поиска.
func mixedCatalog() *fakeCatalog {
	return &fakeCatalog{records: []domain.PropertyRecord{
		makeRecord("r1", "Residential", "Apartment", withBedrooms(2), withPrice(45, "Lac")),
		makeRecord("r2", "Residential", "Apartment", withBedrooms(3), withPrice(1.2, "Crore")),
		makeRecord("r3", "Residential", "Villa", withCity("Pune"), withBedrooms(4), withPrice(2.5, "Crore")),
		makeRecord("r4", "Residential", "Independent House", withCity("Pune"), withBedrooms(3), withPrice(95, "Lac")),
		makeRecord("r5", "Residential", "Studio", withListing(domain.ListingTypeRent), withBedrooms(1), withPrice(25000, "")),
		makeRecord("c1", "Commercial", "Office Space", withPrice(3, "Crore")),
		makeRecord("c2", "Commercial", "Shop", withCity("Pune"), withPrice(80, "Lac")),
		makeRecord("c3", "Commercial", "Warehouse", withListing(domain.ListingTypeRent), withPrice(120000, "")),
		makeRecord("p1", "Residential", "Residential Plot", withCity("Pune"), withPrice(40, "Lac")),
		makeRecord("p2", "Commercial", "Commercial Plot", withPrice(1.8, "Crore")),
	}}
}
