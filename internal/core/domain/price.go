package domain

import (
	"math"
	"strings"
)

// Границы ценовых корзин в базовых единицах валюты.
const (
	priceLowUpperBound = 5_000_000
	priceMidUpperBound = 15_000_000
)

// NormalizePrice приводит цену к базовым единицам валюты по тексту единицы
// измерения: "Crore" = 1e7, "Lac"/"Lakh" = 1e5, все остальное как есть.
// Нечисловые значения (NaN, Inf) приводятся к нулю, ошибок не бывает.
func NormalizePrice(price float64, unit string) float64 {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		price = 0
	}

	u := strings.ToLower(unit)
	switch {
	case strings.Contains(u, "crore"):
		return price * 10_000_000
	case strings.Contains(u, "lac"), strings.Contains(u, "lakh"):
		return price * 100_000
	}
	return price
}

// PriceBucketOf раскладывает нормализованную цену по корзинам:
// low - строго ниже 5 млн, mid - от 5 до 15 млн включительно, high - выше.
func PriceBucketOf(normalized float64) PriceRange {
	switch {
	case normalized < priceLowUpperBound:
		return PriceRangeLow
	case normalized <= priceMidUpperBound:
		return PriceRangeMid
	}
	return PriceRangeHigh
}

// BucketsAdjacent - соседние ли корзины (low-mid, mid-high).
func BucketsAdjacent(a, b PriceRange) bool {
	if a == b {
		return false
	}
	switch {
	case a == PriceRangeLow && b == PriceRangeMid, a == PriceRangeMid && b == PriceRangeLow:
		return true
	case a == PriceRangeMid && b == PriceRangeHigh, a == PriceRangeHigh && b == PriceRangeMid:
		return true
	}
	return false
}
