package catalog

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"discovery-service/internal/core/domain"
)

func TestMapRawListing_FlatAddress(t *testing.T) {
	lat, lng := 19.076, 72.8777
	raw := RawListing{
		ID:        "p1",
		Title:     "  2 BHK near station  ",
		Category:  "Residential",
		City:      "mumbai",
		Locality:  "andheri west",
		Latitude:  &lat,
		Longitude: &lng,
	}

	rec := MapRawListing(raw)

	assert.Equal(t, "p1", rec.ID)
	assert.Equal(t, "2 BHK near station", rec.Title)
	assert.Equal(t, "Mumbai", rec.Address.City, "city is normalized for case-insensitive filters")
	assert.Equal(t, "Andheri West", rec.Address.Locality)
	require.NotNil(t, rec.Address.Coordinates)
	assert.Equal(t, 19.076, rec.Address.Coordinates.Lat)
	assert.NotEmpty(t, rec.LocationHash)
}

func TestMapRawListing_NestedAddressWins(t *testing.T) {
	nestedLat, nestedLng := 18.52, 73.85
	raw := RawListing{
		ID:   "p1",
		City: "Mumbai",
		Address: &RawAddress{
			City:      "Pune",
			Latitude:  &nestedLat,
			Longitude: &nestedLng,
		},
	}

	rec := MapRawListing(raw)

	assert.Equal(t, "Pune", rec.Address.City)
	require.NotNil(t, rec.Address.Coordinates)
	assert.Equal(t, 18.52, rec.Address.Coordinates.Lat)
}

func TestMapRawListing_MissingCoordinates(t *testing.T) {
	lat := 19.0
	rec := MapRawListing(RawListing{ID: "p1", Latitude: &lat}) // без долготы

	assert.Nil(t, rec.Address.Coordinates)
	assert.False(t, rec.HasCoordinates())
}

func TestMapRawListing_BedroomsFromBHK(t *testing.T) {
	rec := MapRawListing(RawListing{ID: "p1", BHK: "3 BHK"})
	assert.Equal(t, 3, rec.Bedrooms)

	three := 4
	rec = MapRawListing(RawListing{ID: "p1", BHK: "3 BHK", Bedrooms: &three})
	assert.Equal(t, 4, rec.Bedrooms, "explicit bedrooms wins over BHK text")

	rec = MapRawListing(RawListing{ID: "p1", BHK: "Studio"})
	assert.Equal(t, 0, rec.Bedrooms)
}

func TestMapRawListing_ListingTypeSynonyms(t *testing.T) {
	for _, s := range []string{"rent", "Rental", "LEASE", "monthly"} {
		assert.Equal(t, domain.ListingTypeRent, MapRawListing(RawListing{ID: "x", ListingType: s}).ListingType, s)
	}
	for _, s := range []string{"sell", "Sale", "buy", "resale"} {
		assert.Equal(t, domain.ListingTypeSell, MapRawListing(RawListing{ID: "x", ListingType: s}).ListingType, s)
	}
}

func TestMapRawListing_StatusDefaultsToActive(t *testing.T) {
	assert.Equal(t, domain.StatusActive, MapRawListing(RawListing{ID: "x"}).Status)
	assert.Equal(t, domain.StatusArchived, MapRawListing(RawListing{ID: "x", Status: "Archived"}).Status)
}

func TestMapRawListing_AmenitiesDeduplicated(t *testing.T) {
	rec := MapRawListing(RawListing{
		ID:        "x",
		Amenities: []string{"Lift", " lift ", "", "Parking", "LIFT"},
	})
	assert.Equal(t, []string{"Lift", "Parking"}, rec.Amenities)
}

func TestMapRawListing_Timestamps(t *testing.T) {
	rec := MapRawListing(RawListing{ID: "x", CreatedAt: "2026-03-01T10:30:00Z"})
	assert.Equal(t, time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC), rec.CreatedAt)

	rec = MapRawListing(RawListing{ID: "x", CreatedAt: "garbage"})
	assert.True(t, rec.CreatedAt.IsZero())
}

func TestFlexFloat_TolerantDecoding(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected float64
	}{
		{"number", `{"price": 4500000}`, 4500000},
		{"quoted number", `{"price": "4500000"}`, 4500000},
		{"quoted with spaces", `{"price": " 85.5 "}`, 85.5},
		{"null", `{"price": null}`, 0},
		{"empty string", `{"price": ""}`, 0},
		{"garbage string", `{"price": "N/A"}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw RawListing
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &raw))
			assert.Equal(t, tt.expected, float64(raw.Price))
		})
	}
}

func TestBuildLocationHash_DuplicateDetection(t *testing.T) {
	lat, lng := 19.076, 72.8777
	base := RawListing{
		ID:           "feed-a-1",
		Category:     "Residential",
		PropertyType: "Apartment",
		ListingType:  "sell",
		Latitude:     &lat,
		Longitude:    &lng,
	}

	other := base
	other.ID = "feed-b-7"
	// Небольшой сдвиг координат внутри той же geohash-ячейки
	lat2, lng2 := 19.0761, 72.8778
	other.Latitude, other.Longitude = &lat2, &lng2

	assert.Equal(t, MapRawListing(base).LocationHash, MapRawListing(other).LocationHash,
		"same unit from two feeds fingerprints identically")

	different := base
	different.ID = "feed-a-2"
	different.PropertyType = "Villa"
	assert.NotEqual(t, MapRawListing(base).LocationHash, MapRawListing(different).LocationHash)
}

func TestBuildLocationHash_NoGeoFallback(t *testing.T) {
	base := RawListing{
		ID:        "a",
		Title:     "Sunrise Heights",
		City:      "Mumbai",
		Locality:  "Andheri",
		Price:     85,
		PriceUnit: "Lac",

		PropertyType: "Apartment",
	}

	// Один объект из двух фидов: заголовок совпадает с точностью
	// до регистра и пробелов - отпечатки равны
	twin := base
	twin.ID = "b"
	twin.Title = "  sunrise   HEIGHTS "
	assert.Equal(t, MapRawListing(base).LocationHash, MapRawListing(twin).LocationHash)

	// Другой заголовок - другое объявление того же района
	otherTitle := base
	otherTitle.ID = "c"
	otherTitle.Title = "Lake View Residency"
	assert.NotEqual(t, MapRawListing(base).LocationHash, MapRawListing(otherTitle).LocationHash)

	// Другая ценовая корзина при совпадающем остальном
	otherPrice := base
	otherPrice.ID = "d"
	otherPrice.Price = 2.5
	otherPrice.PriceUnit = "Crore"
	assert.NotEqual(t, MapRawListing(base).LocationHash, MapRawListing(otherPrice).LocationHash)

	// Другой район
	otherLocality := base
	otherLocality.ID = "e"
	otherLocality.Locality = "Bandra"
	assert.NotEqual(t, MapRawListing(base).LocationHash, MapRawListing(otherLocality).LocationHash)
}
