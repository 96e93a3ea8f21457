package listbind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridwell/listbind/batch"
	"github.com/gridwell/listbind/view"
)

func newTestProvider(t *testing.T) (*Provider, *view.Transcript) {
	t.Helper()
	tv := view.NewTranscript()
	p := New(Config{View: view.NewHandle(tv)})
	return p, tv
}

func path(section, item int) *view.IndexPath {
	return &view.IndexPath{Section: section, Item: item}
}

func TestNew_RequiresView(t *testing.T) {
	assert.Panics(t, func() { New(Config{}) })
}

func TestProvider_BracketReplaysInOneTransaction(t *testing.T) {
	p, tv := newTestProvider(t)
	d := p.Delegate()

	d.WillChangeContent()
	d.DidChangeObject("a", nil, batch.ChangeInsert, path(0, 2))
	d.DidChangeObject("b", path(0, 0), batch.ChangeDelete, nil)
	d.DidChangeSection(1, batch.ChangeInsert)
	d.DidChangeContent()

	assert.Equal(t, []string{
		"begin batch",
		"insert items [(0,2)]",
		"delete items [(0,0)]",
		"insert sections [1]",
		"end batch",
		"reload supplementary",
	}, tv.Lines())
}

func TestProvider_DroppedNotificationsEnqueueNothing(t *testing.T) {
	p, tv := newTestProvider(t)
	d := p.Delegate()

	d.WillChangeContent()
	d.DidChangeObject("a", nil, batch.ChangeInsert, nil)      // missing new path
	d.DidChangeObject("b", nil, batch.ChangeDelete, nil)      // missing old path
	d.DidChangeSection(0, batch.ChangeUpdate)                 // ignored at section level
	d.DidChangeSection(0, batch.ChangeMove)                   // ignored at section level
	d.DidChangeContent()

	// The drain still runs, but it has nothing to apply.
	assert.Equal(t, []string{
		"begin batch",
		"end batch",
	}, tv.Lines())
}

func TestProvider_PauseResumeCoalescesBrackets(t *testing.T) {
	p, tv := newTestProvider(t)
	d := p.Delegate()

	p.Pause()
	assert.Equal(t, batch.StatePaused, p.State())

	for i := 0; i < 3; i++ {
		d.WillChangeContent()
		d.DidChangeObject("x", nil, batch.ChangeInsert, path(0, i))
		d.DidChangeContent()
	}
	assert.Empty(t, tv.Lines(), "paused provider must not drain")

	p.Resume()
	assert.Equal(t, batch.StateIdle, p.State())

	assert.Equal(t, []string{
		"begin batch",
		"insert items [(0,0)]",
		"insert items [(0,1)]",
		"insert items [(0,2)]",
		"end batch",
	}, tv.Lines())
}

func TestProvider_DelegateIsStable(t *testing.T) {
	p, _ := newTestProvider(t)
	assert.Same(t, p.Delegate(), p.Delegate())
}

func TestProvider_UpdateOperationDrivesDrain(t *testing.T) {
	tv := view.NewTranscript()
	p := New(Config{View: view.NewHandle(tv)})
	d := p.Delegate()

	p.Pause()
	d.WillChangeContent()
	d.DidChangeObject("a", nil, batch.ChangeInsert, path(0, 0))
	d.DidChangeContent()

	// Resume without flushing through the gate: clear the pause state
	// first, then let the scheduler-driven operation perform the drain.
	p.Resume()
	require.NotEmpty(t, tv.Lines())

	op := p.NewUpdateOperation()
	op.Start()
	select {
	case <-op.Done():
	default:
		t.Fatal("operation completion must be signalled synchronously here")
	}
}

func TestProvider_ConfigureReceivesUpdates(t *testing.T) {
	tv := view.NewTranscript()
	tv.SetCell(view.IndexPath{Section: 0, Item: 0}, "cell")

	var configured bool
	p := New(Config{
		View: view.NewHandle(tv),
		Configure: func(cell view.Cell, item batch.Item, path view.IndexPath) bool {
			configured = true
			assert.Equal(t, "cell", cell)
			assert.Equal(t, "item-a", item)
			return true
		},
	})
	d := p.Delegate()

	d.WillChangeContent()
	d.DidChangeObject("item-a", path(0, 0), batch.ChangeUpdate, nil)
	d.DidChangeContent()

	assert.True(t, configured)
}
