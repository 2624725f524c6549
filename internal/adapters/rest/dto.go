package rest

import (
	"time"

	"discovery-service/internal/core/domain"
)

// SearchRequest - тело POST /search.
type SearchRequest struct {
	SearchText     string `json:"search_text"`
	PropertyTypeID string `json:"property_type_id"`
	City           string `json:"city"`
	PriceRange     string `json:"price_range"`
	ListingType    string `json:"listing_type"`

	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// PropertyResponse - карточка объекта в выдаче.
type PropertyResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Category        string    `json:"category"`
	PropertyType    string    `json:"property_type"`
	ListingType     string    `json:"listing_type"`
	Price           float64   `json:"price"`
	PriceUnit       string    `json:"price_unit"`
	BHK             string    `json:"bhk,omitempty"`
	Bedrooms        int       `json:"bedrooms,omitempty"`
	Bathrooms       int       `json:"bathrooms,omitempty"`
	BuiltUpAreaSqft float64   `json:"built_up_area_sqft,omitempty"`
	City            string    `json:"city"`
	State           string    `json:"state,omitempty"`
	Locality        string    `json:"locality,omitempty"`
	Landmark        string    `json:"landmark,omitempty"`
	Amenities       []string  `json:"amenities,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// SearchResponse - ответ POST /search: страница совпадений плюс
// "похожие объекты" при скудной выдаче.
type SearchResponse struct {
	Objects []PropertyResponse `json:"objects"`
	Related []PropertyResponse `json:"related"`
	Total   int                `json:"total"`
	Limit   int                `json:"limit"`
	Offset  int                `json:"offset"`
}

// NearbyRequest - тело POST /nearby.
type NearbyRequest struct {
	Center struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"center"`
	RadiusKm float64 `json:"radius_km"`
}

// NearbyPropertyResponse - карточка с расстоянием до центра поиска.
type NearbyPropertyResponse struct {
	PropertyResponse
	DistanceKm float64 `json:"distance_km"`
}

type NearbyResponse struct {
	Results      []NearbyPropertyResponse `json:"results"`
	CatalogSize  int                      `json:"catalog_size"`
	GeocodedSize int                      `json:"geocoded_size"`
}

type SuggestionResponse struct {
	Type     string  `json:"type"`
	Value    string  `json:"value"`
	Subtitle string  `json:"subtitle,omitempty"`
	Score    float64 `json:"score"`
}

type SuggestionsResponse struct {
	Suggestions []SuggestionResponse `json:"suggestions"`
}

type CompareToggleRequest struct {
	PropertyID string `json:"property_id"`
}

type CompareGroupResponse struct {
	MemberIDs     []string `json:"member_ids"`
	BaseTypeLabel string   `json:"base_type_label,omitempty"`
}

type CatalogStatsResponse struct {
	Total    int `json:"total"`
	Geocoded int `json:"geocoded"`
}

func toPropertyResponse(rec *domain.PropertyRecord) PropertyResponse {
	return PropertyResponse{
		ID:              rec.ID,
		Title:           rec.Title,
		Category:        rec.CategoryRaw,
		PropertyType:    rec.PropertyTypeName,
		ListingType:     string(rec.ListingType),
		Price:           rec.Price,
		PriceUnit:       rec.PriceUnit,
		BHK:             rec.BHK,
		Bedrooms:        rec.Bedrooms,
		Bathrooms:       rec.Bathrooms,
		BuiltUpAreaSqft: rec.BuiltUpAreaSqft,
		City:            rec.Address.City,
		State:           rec.Address.State,
		Locality:        rec.Address.Locality,
		Landmark:        rec.Address.Landmark,
		Amenities:       rec.Amenities,
		CreatedAt:       rec.CreatedAt,
	}
}

func toPropertyResponses(records []domain.PropertyRecord) []PropertyResponse {
	out := make([]PropertyResponse, len(records))
	for i := range records {
		out[i] = toPropertyResponse(&records[i])
	}
	return out
}
