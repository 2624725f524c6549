package usecase

import (
	"strings"

	"discovery-service/internal/core/domain"
)

// matchesCriteria - предикат одной записи: логическое И независимых
// подпредикатов, каждый из которых пропускает запись, если его критерий
// не задан. Порядок проверок выбран от дешевых к дорогим, но корректность
// не зависит от порядка.
func matchesCriteria(rec *domain.PropertyRecord, c domain.FilterCriteria, bucket string) bool {
	if !matchesCity(rec, c.City) {
		return false
	}
	if !matchesListingType(rec, c.ListingType) {
		return false
	}
	if !matchesPriceRange(rec, c.PriceRange) {
		return false
	}
	if !matchesType(rec, c.PropertyTypeID, bucket) {
		return false
	}
	return matchesText(rec, c.SearchText)
}

// matchesText - подстрочное совпадение поисковой строки с любым из
// текстовых полей записи, без учета регистра.
func matchesText(rec *domain.PropertyRecord, searchText string) bool {
	q := strings.ToLower(strings.TrimSpace(searchText))
	if q == "" {
		return true
	}

	haystacks := []string{
		rec.Title,
		rec.Address.City,
		rec.Address.State,
		rec.Address.Locality,
		rec.Address.Landmark,
		rec.PropertyTypeName,
		rec.BHK,
	}
	for _, h := range haystacks {
		if h != "" && strings.Contains(strings.ToLower(h), q) {
			return true
		}
	}
	return false
}

// matchesType сопоставляет запись с семантической корзиной, которую
// обозначает criteria.PropertyTypeID. Если имя корзины неизвестно,
// откатываемся к строгому сравнению id типа.
func matchesType(rec *domain.PropertyRecord, propertyTypeID, bucket string) bool {
	if propertyTypeID == "" {
		return true
	}

	b := strings.ToLower(bucket)
	switch {
	case b == "":
		return rec.PropertyTypeID == propertyTypeID
	// Участки проверяются раньше коммерческой ветки: корзина
	// "Commercial Plot" должна идти по правилу участков.
	case strings.Contains(b, "plot") || strings.Contains(b, "land"):
		return isPlotRecord(rec)
	case strings.Contains(b, "residen"):
		return domain.Classify(rec).IsResidential
	case strings.Contains(b, "commercial"):
		return domain.Classify(rec).IsCommercial
	}
	return rec.PropertyTypeID == propertyTypeID
}

// isPlotRecord: в тексте типа есть plot/land, либо у записи указана площадь
// участка, но нет ни одного из "строительных" метражей.
func isPlotRecord(rec *domain.PropertyRecord) bool {
	typeText := strings.ToLower(rec.CategoryRaw + " " + rec.PropertyTypeName)
	if strings.Contains(typeText, "plot") || strings.Contains(typeText, "land") {
		return true
	}
	return rec.PlotAreaSqft > 0 &&
		rec.BuiltUpAreaSqft == 0 &&
		rec.CarpetAreaSqft == 0 &&
		rec.SuperBuiltUpAreaSqft == 0
}

func matchesCity(rec *domain.PropertyRecord, city string) bool {
	if city == "" {
		return true
	}
	return strings.EqualFold(rec.Address.City, city)
}

func matchesListingType(rec *domain.PropertyRecord, listingType string) bool {
	if listingType == "" {
		return true
	}
	return strings.EqualFold(string(rec.ListingType), listingType)
}

func matchesPriceRange(rec *domain.PropertyRecord, priceRange domain.PriceRange) bool {
	if priceRange == domain.PriceRangeNone {
		return true
	}
	return domain.PriceBucketOf(rec.NormalizedPrice()) == priceRange
}
