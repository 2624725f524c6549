package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"discovery-service/internal/core/domain"
)

func compareCatalog() *fakeCatalog {
	return &fakeCatalog{records: []domain.PropertyRecord{
		makeRecord("v1", "Residential", "Villa"),
		makeRecord("v2", "Residential", "Villa"),
		makeRecord("v3", "Residential", "Villa"),
		makeRecord("v4", "Residential", "Villa"),
		makeRecord("o1", "Commercial", "Office Space"),
	}}
}

func TestToggleCompare_UnknownPropertyRejected(t *testing.T) {
	uc := NewToggleCompareUseCase(compareCatalog(), 3)

	_, err := uc.Toggle(context.Background(), "s1", "ghost")
	assert.ErrorIs(t, err, domain.ErrPropertyNotFound)
}

func TestToggleCompare_AddRemoveRoundTrip(t *testing.T) {
	uc := NewToggleCompareUseCase(compareCatalog(), 3)

	group, err := uc.Toggle(context.Background(), "s1", "v1")
	require.NoError(t, err)
	assert.Equal(t, []string{"v1"}, group.MemberIDs)
	assert.Equal(t, "Villa", group.BaseTypeLabel)

	group, err = uc.Toggle(context.Background(), "s1", "v1")
	require.NoError(t, err)
	assert.Empty(t, group.MemberIDs)
	assert.Empty(t, group.BaseTypeLabel)
}

func TestToggleCompare_LimitAndMismatchLeaveGroupIntact(t *testing.T) {
	uc := NewToggleCompareUseCase(compareCatalog(), 3)
	ctx := context.Background()

	for _, id := range []string{"v1", "v2", "v3"} {
		_, err := uc.Toggle(ctx, "s1", id)
		require.NoError(t, err)
	}

	group, err := uc.Toggle(ctx, "s1", "v4")
	assert.ErrorIs(t, err, domain.ErrCompareLimitReached)
	assert.Equal(t, []string{"v1", "v2", "v3"}, group.MemberIDs)

	// Несовпадение типа в свежей сессии
	_, err = uc.Toggle(ctx, "s2", "v1")
	require.NoError(t, err)
	group, err = uc.Toggle(ctx, "s2", "o1")
	assert.ErrorIs(t, err, domain.ErrCompareTypeMismatch)
	assert.Equal(t, []string{"v1"}, group.MemberIDs)
}

func TestToggleCompare_SessionsIsolated(t *testing.T) {
	uc := NewToggleCompareUseCase(compareCatalog(), 3)
	ctx := context.Background()

	_, err := uc.Toggle(ctx, "s1", "v1")
	require.NoError(t, err)

	assert.Empty(t, uc.Get(ctx, "s2").MemberIDs)
	assert.Equal(t, []string{"v1"}, uc.Get(ctx, "s1").MemberIDs)
}

func TestToggleCompare_ClearForgetsSession(t *testing.T) {
	uc := NewToggleCompareUseCase(compareCatalog(), 3)
	ctx := context.Background()

	_, err := uc.Toggle(ctx, "s1", "v1")
	require.NoError(t, err)

	uc.Clear(ctx, "s1")
	assert.Empty(t, uc.Get(ctx, "s1").MemberIDs)

	// После сброса группа снова принимает любой тип
	group, err := uc.Toggle(ctx, "s1", "o1")
	require.NoError(t, err)
	assert.Equal(t, "Office Space", group.BaseTypeLabel)
}

func TestToggleCompare_ReturnedGroupIsACopy(t *testing.T) {
	uc := NewToggleCompareUseCase(compareCatalog(), 3)
	ctx := context.Background()

	group, err := uc.Toggle(ctx, "s1", "v1")
	require.NoError(t, err)
	group.MemberIDs[0] = "mutated"

	assert.Equal(t, []string{"v1"}, uc.Get(ctx, "s1").MemberIDs)
}

func TestToggleCompare_DefaultMaxSize(t *testing.T) {
	uc := NewToggleCompareUseCase(compareCatalog(), 0)
	ctx := context.Background()

	for _, id := range []string{"v1", "v2", "v3"} {
		_, err := uc.Toggle(ctx, "s1", id)
		require.NoError(t, err)
	}
	_, err := uc.Toggle(ctx, "s1", "v4")
	assert.ErrorIs(t, err, domain.ErrCompareLimitReached)
}
