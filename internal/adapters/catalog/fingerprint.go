package catalog

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/mmcloughlin/geohash"

	"discovery-service/internal/core/domain"
)

// Точность geohash ~ ±2.4 км: достаточно, чтобы одинаковые объявления
// из разных фидов попадали в одну ячейку.
const geohashPrecision = 5

const areaBucketSqft = 50.0

// buildLocationHash создает стабильный отпечаток объявления из ячейки
// местоположения и ключевых параметров. Один и тот же объект, пришедший
// из двух фидов под разными id, дает одинаковый отпечаток.
func buildLocationHash(rec *domain.PropertyRecord) string {
	var cell string
	if rec.HasCoordinates() {
		coords := rec.Address.Coordinates
		cell = geohash.Encode(coords.Lat, coords.Lng)[:geohashPrecision]
	} else {
		// Без координат опускаемся до адресной ячейки.
		cell = "nogeo:" + strings.ToLower(rec.Address.City+"/"+rec.Address.Locality)
	}

	parts := []string{
		cell,
		strings.ToLower(rec.CategoryRaw),
		strings.ToLower(rec.PropertyTypeName),
		string(rec.ListingType),
		areaBucket(primaryArea(rec)),
		fmt.Sprintf("%d", rec.Bedrooms),
	}

	if !rec.HasCoordinates() {
		// Адресная ячейка слишком грубая: два разных объявления одного
		// района с одинаковыми параметрами склеились бы. Заголовок и
		// ценовая корзина их разводят, а один объект из двух фидов
		// по-прежнему совпадает.
		parts = append(parts,
			normalizeTitle(rec.Title),
			string(domain.PriceBucketOf(rec.NormalizedPrice())),
		)
	}

	payload := strings.Join(parts, "|")
	return fmt.Sprintf("%x", sha256.Sum256([]byte(payload)))
}

// normalizeTitle гасит расхождения регистра и пробелов между фидами.
func normalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}

func primaryArea(rec *domain.PropertyRecord) float64 {
	switch {
	case rec.BuiltUpAreaSqft > 0:
		return rec.BuiltUpAreaSqft
	case rec.CarpetAreaSqft > 0:
		return rec.CarpetAreaSqft
	case rec.SuperBuiltUpAreaSqft > 0:
		return rec.SuperBuiltUpAreaSqft
	}
	return rec.PlotAreaSqft
}

// areaBucket гасит мелкие расхождения метража между фидами.
func areaBucket(area float64) string {
	if area <= 0 {
		return "null"
	}
	return fmt.Sprintf("%d", int(area/areaBucketSqft))
}
