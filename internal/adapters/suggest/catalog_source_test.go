package suggest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"discovery-service/internal/contextkeys"
	"discovery-service/internal/core/domain"
)

type staticCatalog struct {
	records []domain.PropertyRecord
}

func (c *staticCatalog) Snapshot() []domain.PropertyRecord {
	out := make([]domain.PropertyRecord, len(c.records))
	copy(out, c.records)
	return out
}

func (c *staticCatalog) Get(id string) (*domain.PropertyRecord, bool) { return nil, false }
func (c *staticCatalog) Stats() domain.CatalogStats                  { return domain.CatalogStats{} }

func listing(title, city, locality string) domain.PropertyRecord {
	return domain.PropertyRecord{
		ID:    title,
		Title: title,
		Address: domain.Address{
			City:     city,
			State:    "Maharashtra",
			Locality: locality,
		},
	}
}

func newTestSource(records ...domain.PropertyRecord) *CatalogScanSource {
	logger := contextkeys.LoggerFromContext(context.Background())
	return NewCatalogScanSource(&staticCatalog{records: records}, logger, 0)
}

func TestCatalogScanSource_PrefixMatches(t *testing.T) {
	source := newTestSource(
		listing("Green Heights", "Bangalore", "Whitefield"),
		listing("Sky Towers", "Bangalore", "Indiranagar"),
		listing("Sea View", "Mumbai", "Bandra"),
	)

	suggestions, err := source.Fetch(context.Background(), "ban")
	require.NoError(t, err)
	require.Len(t, suggestions, 2)

	// Оба префиксных попадания набирают 90, при равном счете
	// порядок алфавитный
	assert.Equal(t, "Bandra", suggestions[0].Value)
	assert.Equal(t, domain.SuggestionTypeLocality, suggestions[0].Type)
	assert.Equal(t, "Bangalore", suggestions[1].Value)
	assert.Equal(t, domain.SuggestionTypeCity, suggestions[1].Type)
}

func TestCatalogScanSource_SubstringFallback(t *testing.T) {
	source := newTestSource(listing("Green Heights", "Bangalore", "Whitefield"))

	// "galo" не префикс - добирается полным сканом как подстрока
	suggestions, err := source.Fetch(context.Background(), "galo")
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Bangalore", suggestions[0].Value)
	assert.Equal(t, 70.0, suggestions[0].Score)
}

func TestCatalogScanSource_DeduplicatesAcrossRecords(t *testing.T) {
	source := newTestSource(
		listing("A", "Pune", "Baner"),
		listing("B", "Pune", "Baner"),
		listing("C", "Pune", "Wakad"),
	)

	suggestions, err := source.Fetch(context.Background(), "pune")
	require.NoError(t, err)

	count := 0
	for _, s := range suggestions {
		if s.Type == domain.SuggestionTypeCity && s.Value == "Pune" {
			count++
		}
	}
	assert.Equal(t, 1, count, "a city seen in many records appears once")
}

func TestCatalogScanSource_LimitApplied(t *testing.T) {
	records := make([]domain.PropertyRecord, 0, 20)
	for _, city := range []string{
		"Pa", "Pb", "Pc", "Pd", "Pe", "Pf", "Pg", "Ph", "Pi", "Pj", "Pk", "Pl",
	} {
		records = append(records, listing("T "+city, city, ""))
	}
	source := newTestSource(records...)

	suggestions, err := source.Fetch(context.Background(), "p")
	require.NoError(t, err)
	assert.Len(t, suggestions, 10)
}

func TestCatalogScanSource_EmptyQuery(t *testing.T) {
	source := newTestSource(listing("A", "Pune", "Baner"))

	suggestions, err := source.Fetch(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestCatalogScanSource_CancelledContext(t *testing.T) {
	source := newTestSource(listing("A", "Pune", "Baner"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := source.Fetch(ctx, "pune")
	assert.Error(t, err)
}

func TestCatalogScanSource_RebuildPicksUpCatalogChanges(t *testing.T) {
	catalog := &staticCatalog{records: []domain.PropertyRecord{listing("A", "Pune", "")}}
	logger := contextkeys.LoggerFromContext(context.Background())
	source := NewCatalogScanSource(catalog, logger, 0)

	suggestions, err := source.Fetch(context.Background(), "delhi")
	require.NoError(t, err)
	assert.Empty(t, suggestions)

	catalog.records = append(catalog.records, listing("B", "Delhi", ""))
	source.Rebuild()

	suggestions, err = source.Fetch(context.Background(), "delhi")
	require.NoError(t, err)
	require.NotEmpty(t, suggestions)
	assert.Equal(t, "Delhi", suggestions[0].Value)
}
