package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"discovery-service/internal/core/domain"
)

func recordIDs(records []domain.PropertyRecord) []string {
	ids := make([]string, len(records))
	for i := range records {
		ids[i] = records[i].ID
	}
	return ids
}

func TestSearchObjects_EmptyCriteriaReturnsWholeCatalog(t *testing.T) {
	uc := NewSearchObjectsUseCase(mixedCatalog(), defaultTaxonomy())

	result, err := uc.Execute(context.Background(), domain.FilterCriteria{})
	require.NoError(t, err)

	assert.Len(t, result.Matched, 10)
	assert.Empty(t, result.Related, "related never fires on an empty criteria")
	// Порядок каталога сохраняется
	assert.Equal(t, "r1", result.Matched[0].ID)
	assert.Equal(t, "p2", result.Matched[9].ID)
}

func TestSearchObjects_CityFilter(t *testing.T) {
	uc := NewSearchObjectsUseCase(mixedCatalog(), defaultTaxonomy())

	result, err := uc.Execute(context.Background(), domain.FilterCriteria{City: "pune"})
	require.NoError(t, err)

	assert.Equal(t, []string{"r3", "r4", "c2", "p1"}, recordIDs(result.Matched))
}

func TestSearchObjects_ListingTypeFilter(t *testing.T) {
	uc := NewSearchObjectsUseCase(mixedCatalog(), defaultTaxonomy())

	result, err := uc.Execute(context.Background(), domain.FilterCriteria{ListingType: "Rent"})
	require.NoError(t, err)

	assert.Equal(t, []string{"r5", "c3"}, recordIDs(result.Matched))
}

func TestSearchObjects_PriceRangeFilter(t *testing.T) {
	uc := NewSearchObjectsUseCase(mixedCatalog(), defaultTaxonomy())

	// low: строго ниже 5 млн
	result, err := uc.Execute(context.Background(), domain.FilterCriteria{PriceRange: domain.PriceRangeLow})
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r5", "c3", "p1"}, recordIDs(result.Matched))

	// mid: 5-15 млн включительно
	result, err = uc.Execute(context.Background(), domain.FilterCriteria{PriceRange: domain.PriceRangeMid})
	require.NoError(t, err)
	assert.Equal(t, []string{"r2", "r4", "c2"}, recordIDs(result.Matched))
}

func TestSearchObjects_SemanticTypeBuckets(t *testing.T) {
	uc := NewSearchObjectsUseCase(mixedCatalog(), defaultTaxonomy())

	residential, err := uc.Execute(context.Background(), domain.FilterCriteria{PropertyTypeID: "pt-res"})
	require.NoError(t, err)
	// Участок "Residential Plot" тоже классифицируется как жилой
	assert.Equal(t, []string{"r1", "r2", "r3", "r4", "r5", "p1"}, recordIDs(residential.Matched))

	commercial, err := uc.Execute(context.Background(), domain.FilterCriteria{PropertyTypeID: "pt-com"})
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c2", "c3", "p2"}, recordIDs(commercial.Matched))

	plots, err := uc.Execute(context.Background(), domain.FilterCriteria{PropertyTypeID: "pt-plot"})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, recordIDs(plots.Matched))
}

func TestSearchObjects_UnknownBucketFallsBackToExactID(t *testing.T) {
	catalog := mixedCatalog()
	catalog.records[0].PropertyTypeID = "pt-42"
	uc := NewSearchObjectsUseCase(catalog, defaultTaxonomy())

	result, err := uc.Execute(context.Background(), domain.FilterCriteria{PropertyTypeID: "pt-42"})
	require.NoError(t, err)

	assert.Equal(t, []string{"r1"}, recordIDs(result.Matched))
}

func TestSearchObjects_TextSearch(t *testing.T) {
	uc := NewSearchObjectsUseCase(mixedCatalog(), defaultTaxonomy())

	result, err := uc.Execute(context.Background(), domain.FilterCriteria{SearchText: "villa"})
	require.NoError(t, err)
	require.NotEmpty(t, result.Matched)
	assert.Equal(t, "r3", result.Matched[0].ID)
}

func TestSearchObjects_CombinedCriteriaAreConjunctive(t *testing.T) {
	uc := NewSearchObjectsUseCase(mixedCatalog(), defaultTaxonomy())

	result, err := uc.Execute(context.Background(), domain.FilterCriteria{
		City:           "Pune",
		PropertyTypeID: "pt-res",
		PriceRange:     domain.PriceRangeMid,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"r4"}, recordIDs(result.Matched))
}

func TestSearchObjects_Idempotent(t *testing.T) {
	uc := NewSearchObjectsUseCase(mixedCatalog(), defaultTaxonomy())
	criteria := domain.FilterCriteria{City: "Mumbai", PropertyTypeID: "pt-res"}

	first, err := uc.Execute(context.Background(), criteria)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), criteria)
	require.NoError(t, err)

	assert.Equal(t, recordIDs(first.Matched), recordIDs(second.Matched))
	assert.Equal(t, recordIDs(first.Related), recordIDs(second.Related))
}

func TestSearchObjects_RelatedTriggeredOnSparseResults(t *testing.T) {
	uc := NewSearchObjectsUseCase(mixedCatalog(), defaultTaxonomy())

	// Один точный результат (< 6) при непустом критерии включает рекомендации
	result, err := uc.Execute(context.Background(), domain.FilterCriteria{SearchText: "villa"})
	require.NoError(t, err)

	require.Len(t, result.Matched, 1)
	assert.NotEmpty(t, result.Related)
	assert.LessOrEqual(t, len(result.Related), 6)

	// Совпавшие записи никогда не дублируются в похожих
	for _, rel := range result.Related {
		assert.NotContains(t, recordIDs(result.Matched), rel.ID)
	}
}

func TestSearchObjects_RelatedSkippedOnRichResults(t *testing.T) {
	uc := NewSearchObjectsUseCase(mixedCatalog(), defaultTaxonomy())

	// 6 жилых записей - достаточно, рекомендации не включаются
	result, err := uc.Execute(context.Background(), domain.FilterCriteria{PropertyTypeID: "pt-res"})
	require.NoError(t, err)

	assert.Len(t, result.Matched, 6)
	assert.Empty(t, result.Related)
}
