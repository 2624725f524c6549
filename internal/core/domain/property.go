package domain

import (
	"math"
	"strings"
	"time"
)

type ListingType string

const (
	ListingTypeRent ListingType = "Rent"
	ListingTypeSell ListingType = "Sell"
)

type PropertyStatus string

const (
	StatusActive   PropertyStatus = "active"
	StatusArchived PropertyStatus = "archived"
)

type Coordinates struct {
	Lat float64
	Lng float64
}

type Address struct {
	City        string
	State       string
	Locality    string
	Landmark    string
	Coordinates *Coordinates
}

// PropertyRecord - каноническая форма записи каталога. Все расхождения
// входных форматов устраняются маппером на границе (adapters/catalog),
// ядро видит только эту форму.
type PropertyRecord struct {
	ID               string
	Title            string
	CategoryRaw      string
	PropertyTypeName string
	PropertyTypeID   string
	ListingType      ListingType

	Price     float64
	PriceUnit string

	BHK       string
	Bedrooms  int
	Bathrooms int

	BuiltUpAreaSqft      float64
	CarpetAreaSqft       float64
	SuperBuiltUpAreaSqft float64
	PlotAreaSqft         float64

	Address   Address
	Amenities []string
	Status    PropertyStatus

	// LocationHash - отпечаток местоположения и ключевых параметров
	// объекта, нужен для отсева дублей из разных фидов.
	LocationHash string

	CreatedAt time.Time
}

// HasCoordinates проверяет, что у записи есть пригодная пара lat/lng.
func (p *PropertyRecord) HasCoordinates() bool {
	c := p.Address.Coordinates
	if c == nil {
		return false
	}
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) {
		return false
	}
	if math.IsNaN(c.Lng) || math.IsInf(c.Lng, 0) {
		return false
	}
	return true
}

// NormalizedPrice возвращает цену в базовых единицах валюты.
func (p *PropertyRecord) NormalizedPrice() float64 {
	return NormalizePrice(p.Price, p.PriceUnit)
}

// TypeLabel - метка типа объекта, по которой группируется сравнение.
func (p *PropertyRecord) TypeLabel() string {
	if name := strings.TrimSpace(p.PropertyTypeName); name != "" {
		return name
	}
	return Classify(p).NormalizedTypeName
}

// CatalogStats - размер каталога против его геокодированной части.
type CatalogStats struct {
	Total    int
	Geocoded int
}

// SearchResult - результат поиска: отфильтрованный набор плюс
// "похожие объекты", когда совпадений мало.
type SearchResult struct {
	Matched []PropertyRecord
	Related []PropertyRecord
}

// NearbyProperty - запись каталога, обогащенная расстоянием до центра поиска.
type NearbyProperty struct {
	PropertyRecord
	DistanceKm float64
}

// NearbyResult - результат радиусного поиска вокруг точки на карте.
type NearbyResult struct {
	Results      []NearbyProperty
	CatalogSize  int
	GeocodedSize int
}
