package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func villaRecord(id string) *PropertyRecord {
	return &PropertyRecord{ID: id, PropertyTypeName: "Villa"}
}

func TestCompareGroup_ToggleAddAndRemove(t *testing.T) {
	group := &CompareGroup{}

	require.NoError(t, group.Toggle(villaRecord("p1"), 3))
	assert.Equal(t, []string{"p1"}, group.MemberIDs)
	assert.Equal(t, "Villa", group.BaseTypeLabel)

	// Повторный toggle того же id убирает его из группы
	require.NoError(t, group.Toggle(villaRecord("p1"), 3))
	assert.Empty(t, group.MemberIDs)
	assert.Empty(t, group.BaseTypeLabel, "label resets when the group empties")
}

func TestCompareGroup_LimitReached(t *testing.T) {
	group := &CompareGroup{}
	require.NoError(t, group.Toggle(villaRecord("p1"), 3))
	require.NoError(t, group.Toggle(villaRecord("p2"), 3))
	require.NoError(t, group.Toggle(villaRecord("p3"), 3))

	err := group.Toggle(villaRecord("p4"), 3)
	assert.ErrorIs(t, err, ErrCompareLimitReached)
	assert.Len(t, group.MemberIDs, 3, "failed toggle must not mutate the group")

	// Убрать участника при полной группе по-прежнему можно
	require.NoError(t, group.Toggle(villaRecord("p2"), 3))
	assert.Equal(t, []string{"p1", "p3"}, group.MemberIDs)
}

func TestCompareGroup_TypeMismatch(t *testing.T) {
	group := &CompareGroup{}
	require.NoError(t, group.Toggle(villaRecord("p1"), 3))

	office := &PropertyRecord{ID: "p2", PropertyTypeName: "Office Space"}
	err := group.Toggle(office, 3)

	assert.ErrorIs(t, err, ErrCompareTypeMismatch)
	assert.Equal(t, []string{"p1"}, group.MemberIDs)
	assert.Equal(t, "Villa", group.BaseTypeLabel)
}

func TestCompareGroup_TypeAdoptedAfterEmptying(t *testing.T) {
	group := &CompareGroup{}
	require.NoError(t, group.Toggle(villaRecord("p1"), 3))
	require.NoError(t, group.Toggle(villaRecord("p1"), 3)) // опустела

	office := &PropertyRecord{ID: "p2", PropertyTypeName: "Office Space"}
	require.NoError(t, group.Toggle(office, 3))
	assert.Equal(t, "Office Space", group.BaseTypeLabel)
}

func TestCompareGroup_Clear(t *testing.T) {
	group := &CompareGroup{}
	require.NoError(t, group.Toggle(villaRecord("p1"), 3))
	require.NoError(t, group.Toggle(villaRecord("p2"), 3))

	group.Clear()

	assert.Empty(t, group.MemberIDs)
	assert.Empty(t, group.BaseTypeLabel)
}

func TestCompareGroup_Contains(t *testing.T) {
	group := &CompareGroup{MemberIDs: []string{"a", "b"}}
	assert.True(t, group.Contains("a"))
	assert.False(t, group.Contains("c"))
}
