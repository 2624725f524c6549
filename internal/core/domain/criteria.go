package domain

import "strings"

// PriceRange - ценовая корзина с фиксированными границами.
type PriceRange string

const (
	PriceRangeNone PriceRange = ""
	PriceRangeLow  PriceRange = "low"
	PriceRangeMid  PriceRange = "mid"
	PriceRangeHigh PriceRange = "high"
)

// FilterCriteria - временный объект запроса. Не персистится,
// создается заново на каждый поиск.
type FilterCriteria struct {
	SearchText     string
	PropertyTypeID string
	City           string
	PriceRange     PriceRange
	ListingType    string
}

// IsEmpty - критерий "пустой", если не задано ни одно из полей.
func (c FilterCriteria) IsEmpty() bool {
	return strings.TrimSpace(c.SearchText) == "" &&
		c.PropertyTypeID == "" &&
		c.City == "" &&
		c.PriceRange == PriceRangeNone &&
		c.ListingType == ""
}
