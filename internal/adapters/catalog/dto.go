package catalog

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// RawAddress - вложенная форма адреса; часть источников шлет адрес
// плоскими полями на верхнем уровне.
type RawAddress struct {
	City      string   `json:"city"`
	State     string   `json:"state"`
	Locality  string   `json:"locality"`
	Landmark  string   `json:"landmark"`
	Latitude  *float64 `json:"lat"`
	Longitude *float64 `json:"lng"`
}

// FlexFloat принимает число, строку с числом, null и пустую строку.
// Любой мусор деградирует в 0 - граница каталога никогда не падает
// из-за кривого числа.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = 0
			return nil
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexFloat(parsed)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*f = 0
		return nil
	}
	*f = FlexFloat(v)
	return nil
}

// RawListing - входная форма объявления, терпимая к расхождениям
// источников: город может прийти и плоским полем, и внутри address,
// спальни - и числом bedrooms, и текстом bhk, цена - числом или строкой.
type RawListing struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Category       string `json:"category"`
	PropertyType   string `json:"property_type"`
	PropertyTypeID string `json:"property_type_id"`
	ListingType    string `json:"listing_type"`

	Price     FlexFloat `json:"price"`
	PriceUnit string    `json:"price_unit"`

	BHK       string `json:"bhk"`
	Bedrooms  *int   `json:"bedrooms"`
	Bathrooms *int   `json:"bathrooms"`

	BuiltUpAreaSqft      FlexFloat `json:"built_up_area_sqft"`
	CarpetAreaSqft       FlexFloat `json:"carpet_area_sqft"`
	SuperBuiltUpAreaSqft FlexFloat `json:"super_built_up_area_sqft"`
	PlotAreaSqft         FlexFloat `json:"plot_area_sqft"`

	// Плоская форма адреса
	City      string   `json:"city"`
	State     string   `json:"state"`
	Locality  string   `json:"locality"`
	Landmark  string   `json:"landmark"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	// Вложенная форма адреса имеет приоритет над плоской
	Address *RawAddress `json:"address"`

	Amenities []string `json:"amenities"`
	Status    string   `json:"status"`
	CreatedAt string   `json:"created_at"`
}
