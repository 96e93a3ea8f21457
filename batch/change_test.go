package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridwell/listbind/view"
)

func path(section, item int) *view.IndexPath {
	return &view.IndexPath{Section: section, Item: item}
}

func TestClassifySection_InsertDelete(t *testing.T) {
	ch, ok := ClassifySection(2, ChangeInsert)
	require.True(t, ok)
	assert.Equal(t, ScopeSection, ch.Scope)
	assert.Equal(t, ChangeInsert, ch.Kind)
	assert.Equal(t, 2, ch.SectionIndex)

	ch, ok = ClassifySection(0, ChangeDelete)
	require.True(t, ok)
	assert.Equal(t, ChangeDelete, ch.Kind)
}

func TestClassifySection_UpdateMoveIgnored(t *testing.T) {
	_, ok := ClassifySection(1, ChangeUpdate)
	assert.False(t, ok, "section update must be ignored, not queued")

	_, ok = ClassifySection(1, ChangeMove)
	assert.False(t, ok, "section move must be ignored, not queued")
}

func TestClassifySection_UnknownKindPanics(t *testing.T) {
	assert.Panics(t, func() {
		ClassifySection(0, ChangeKind(99))
	})
}

func TestClassifyObject_Insert(t *testing.T) {
	ch, ok := ClassifyObject("item", nil, ChangeInsert, path(0, 2))
	require.True(t, ok)
	assert.Equal(t, ScopeObject, ch.Scope)
	assert.Equal(t, ChangeInsert, ch.Kind)
	assert.Equal(t, "item", ch.Item)
	require.NotNil(t, ch.NewPath)
	assert.Equal(t, view.IndexPath{Section: 0, Item: 2}, *ch.NewPath)
}

func TestClassifyObject_MissingPathsDropped(t *testing.T) {
	_, ok := ClassifyObject("item", nil, ChangeInsert, nil)
	assert.False(t, ok, "insert without new path must be dropped")

	_, ok = ClassifyObject("item", nil, ChangeDelete, nil)
	assert.False(t, ok, "delete without old path must be dropped")

	_, ok = ClassifyObject("item", nil, ChangeUpdate, nil)
	assert.False(t, ok, "update without path must be dropped")

	_, ok = ClassifyObject("item", path(0, 0), ChangeMove, nil)
	assert.False(t, ok, "move without new path must be dropped")

	_, ok = ClassifyObject("item", nil, ChangeMove, path(0, 1))
	assert.False(t, ok, "move without old path must be dropped")
}

func TestClassifyObject_Move(t *testing.T) {
	ch, ok := ClassifyObject("item", path(0, 0), ChangeMove, path(1, 3))
	require.True(t, ok)
	assert.Equal(t, ChangeMove, ch.Kind)
	require.NotNil(t, ch.OldPath)
	require.NotNil(t, ch.NewPath)
	assert.Equal(t, view.IndexPath{Section: 0, Item: 0}, *ch.OldPath)
	assert.Equal(t, view.IndexPath{Section: 1, Item: 3}, *ch.NewPath)
}

func TestClassifyObject_UnknownKindPanics(t *testing.T) {
	assert.Panics(t, func() {
		ClassifyObject("item", path(0, 0), ChangeKind(42), path(0, 1))
	})
}

func TestChangeKind_String(t *testing.T) {
	assert.Equal(t, "insert", ChangeInsert.String())
	assert.Equal(t, "delete", ChangeDelete.String())
	assert.Equal(t, "update", ChangeUpdate.String())
	assert.Equal(t, "move", ChangeMove.String())
	assert.Equal(t, "ChangeKind(7)", ChangeKind(7).String())
}
