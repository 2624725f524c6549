package catalog

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"discovery-service/internal/core/domain"
)

var displayCaser = cases.Title(language.English)

var leadingDigits = regexp.MustCompile(`^\s*(\d+)`)

// MapRawListing приводит сырое объявление к канонической форме записи.
// Вся терпимость к кривым входным данным сосредоточена здесь: дальше по
// конвейеру ядро видит только каноническую форму. Отсутствующие числа
// деградируют в 0, отсутствующие координаты - в nil, исключений нет.
func MapRawListing(raw RawListing) domain.PropertyRecord {
	rec := domain.PropertyRecord{
		ID:               strings.TrimSpace(raw.ID),
		Title:            strings.TrimSpace(raw.Title),
		CategoryRaw:      strings.TrimSpace(raw.Category),
		PropertyTypeName: strings.TrimSpace(raw.PropertyType),
		PropertyTypeID:   strings.TrimSpace(raw.PropertyTypeID),
		ListingType:      mapListingType(raw.ListingType),

		Price:     sanitizeFloat(float64(raw.Price)),
		PriceUnit: strings.TrimSpace(raw.PriceUnit),

		BHK:       strings.TrimSpace(raw.BHK),
		Bathrooms: derefInt(raw.Bathrooms),

		BuiltUpAreaSqft:      sanitizeFloat(float64(raw.BuiltUpAreaSqft)),
		CarpetAreaSqft:       sanitizeFloat(float64(raw.CarpetAreaSqft)),
		SuperBuiltUpAreaSqft: sanitizeFloat(float64(raw.SuperBuiltUpAreaSqft)),
		PlotAreaSqft:         sanitizeFloat(float64(raw.PlotAreaSqft)),

		Amenities: normalizeAmenities(raw.Amenities),
		Status:    mapStatus(raw.Status),
		CreatedAt: parseTimestamp(raw.CreatedAt),
	}

	rec.Address = mapAddress(raw)
	rec.Bedrooms = mapBedrooms(raw)
	rec.LocationHash = buildLocationHash(&rec)

	return rec
}

// mapAddress: вложенная форма выигрывает у плоской, поле за полем.
func mapAddress(raw RawListing) domain.Address {
	city, state, locality, landmark := raw.City, raw.State, raw.Locality, raw.Landmark
	lat, lng := raw.Latitude, raw.Longitude

	if raw.Address != nil {
		if raw.Address.City != "" {
			city = raw.Address.City
		}
		if raw.Address.State != "" {
			state = raw.Address.State
		}
		if raw.Address.Locality != "" {
			locality = raw.Address.Locality
		}
		if raw.Address.Landmark != "" {
			landmark = raw.Address.Landmark
		}
		if raw.Address.Latitude != nil {
			lat = raw.Address.Latitude
		}
		if raw.Address.Longitude != nil {
			lng = raw.Address.Longitude
		}
	}

	addr := domain.Address{
		City:     normalizeDisplayValue(city),
		State:    normalizeDisplayValue(state),
		Locality: normalizeDisplayValue(locality),
		Landmark: strings.TrimSpace(landmark),
	}

	if lat != nil && lng != nil && isFinite(*lat) && isFinite(*lng) {
		addr.Coordinates = &domain.Coordinates{Lat: *lat, Lng: *lng}
	}
	return addr
}

// normalizeDisplayValue стандартизирует значение для фильтров: один и тот же
// город должен сравниваться одинаково независимо от регистра в источнике.
func normalizeDisplayValue(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	return displayCaser.String(strings.ToLower(trimmed))
}

func mapBedrooms(raw RawListing) int {
	if raw.Bedrooms != nil && *raw.Bedrooms > 0 {
		return *raw.Bedrooms
	}
	// "3 BHK" -> 3
	if m := leadingDigits.FindStringSubmatch(raw.BHK); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return n
		}
	}
	return 0
}

func mapListingType(s string) domain.ListingType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rent", "rental", "lease", "monthly":
		return domain.ListingTypeRent
	case "sell", "sale", "buy", "resale":
		return domain.ListingTypeSell
	}
	return domain.ListingType(strings.TrimSpace(s))
}

func mapStatus(s string) domain.PropertyStatus {
	status := strings.ToLower(strings.TrimSpace(s))
	if status == "" {
		return domain.StatusActive
	}
	return domain.PropertyStatus(status)
}

func normalizeAmenities(amenities []string) []string {
	if len(amenities) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(amenities))
	out := make([]string, 0, len(amenities))
	for _, a := range amenities {
		trimmed := strings.TrimSpace(a)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

func parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func sanitizeFloat(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
