package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexPath_String(t *testing.T) {
	assert.Equal(t, "(0,2)", IndexPath{Section: 0, Item: 2}.String())
}

func TestHandle_ResolveAndInvalidate(t *testing.T) {
	tv := NewTranscript()
	h := NewHandle(tv)

	v, ok := h.Resolve()
	require.True(t, ok)
	assert.Same(t, any(tv), any(v))

	h.Invalidate()

	v, ok = h.Resolve()
	assert.False(t, ok)
	assert.Nil(t, v)

	// Idempotent.
	assert.NotPanics(t, h.Invalidate)
}

func TestTranscript_RecordsCallsInOrder(t *testing.T) {
	tv := NewTranscript()

	tv.PerformBatch(func() {
		tv.InsertItems([]IndexPath{{Section: 0, Item: 1}})
		tv.DeleteSections([]int{2})
	}, func() {})
	tv.ReloadSupplementary()

	assert.Equal(t, []string{
		"begin batch",
		"insert items [(0,1)]",
		"delete sections [2]",
		"end batch",
		"reload supplementary",
	}, tv.Lines())
}

func TestTranscript_FlagsMutationsOutsideBatch(t *testing.T) {
	tv := NewTranscript()
	tv.InsertItems([]IndexPath{{Section: 0, Item: 0}})

	lines := tv.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "insert items [(0,0)] [outside batch]", lines[0])
}

func TestTranscript_ScriptedCells(t *testing.T) {
	tv := NewTranscript()
	p := IndexPath{Section: 1, Item: 0}

	assert.Nil(t, tv.CellAt(p))

	tv.SetCell(p, "cell")
	assert.Equal(t, "cell", tv.CellAt(p))

	tv.SetCell(p, nil)
	assert.Nil(t, tv.CellAt(p))
}

func TestTranscript_Moveable(t *testing.T) {
	tv := NewTranscript()
	assert.False(t, tv.SupportsMove())
	tv.SetMoveable(true)
	assert.True(t, tv.SupportsMove())
}

func TestTranscript_CompletionRunsAfterUpdates(t *testing.T) {
	tv := NewTranscript()

	var order []string
	tv.PerformBatch(
		func() { order = append(order, "updates") },
		func() { order = append(order, "completion") },
	)

	assert.Equal(t, []string{"updates", "completion"}, order)
}
