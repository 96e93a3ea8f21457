// Package listbind binds a persistent store's change notifications to a
// sectioned list/grid view. It translates fine-grained object and section
// mutations, delivered in willChange/didChange brackets, into batched
// atomic view transactions.
//
// The caller supplies a non-owning handle to the view and a cell
// configurator; the store side drives the Delegate returned by
// Provider.Delegate. Everything between the bracket calls is buffered in
// ordering-preserving queues and replayed in one transaction per
// didChangeContent, object mutations before section mutations.
package listbind

import (
	"log/slog"

	"github.com/gridwell/listbind/batch"
	"github.com/gridwell/listbind/view"
)

// Delegate is the callback contract a notification source drives, once
// per refresh cycle: WillChangeContent, then any number of
// DidChangeObject/DidChangeSection calls in any order, then
// DidChangeContent.
type Delegate interface {
	WillChangeContent()
	DidChangeObject(item batch.Item, oldPath *view.IndexPath, kind batch.ChangeKind, newPath *view.IndexPath)
	DidChangeSection(index int, kind batch.ChangeKind)
	DidChangeContent()
}

// Config configures a Provider.
type Config struct {
	// View is the non-owning handle to the target widget. Required.
	View *view.Handle

	// Configure refreshes an on-screen cell for an updated item. Optional;
	// when nil, update notifications only verify cell presence.
	Configure batch.ConfigureFunc
}

// Provider is the public surface of the binder: it owns the coordinator
// and the delegate handed to the notification source. One provider per
// bound view.
type Provider struct {
	coord    *batch.Coordinator
	delegate *sourceDelegate
}

// New constructs a provider from cfg. Panics when cfg.View is nil: a
// binder without a view target is a programming error, not a runtime
// condition.
func New(cfg Config) *Provider {
	if cfg.View == nil {
		panic("listbind: Config.View is required")
	}
	coord := batch.NewCoordinator(cfg.View, cfg.Configure)
	return &Provider{
		coord:    coord,
		delegate: &sourceDelegate{coord: coord},
	}
}

// Delegate returns the object satisfying the notification source's
// callback contract. The same instance is returned every call.
func (p *Provider) Delegate() Delegate {
	return p.delegate
}

// Pause suspends transaction replay, e.g. across a bulk external
// mutation. Notifications keep accumulating while paused.
func (p *Provider) Pause() {
	p.coord.Pause()
}

// Resume flushes everything accumulated since Pause in one synchronous
// transaction, then clears the pause. Harmless when not paused.
func (p *Provider) Resume() {
	p.coord.Resume()
}

// State reports the coordinator's current drain state.
func (p *Provider) State() batch.State {
	return p.coord.State()
}

// NewUpdateOperation wraps the next drain as a cancellable operation for
// an external scheduler.
func (p *Provider) NewUpdateOperation() *batch.UpdateOperation {
	return batch.NewUpdateOperation(p.coord)
}

// sourceDelegate adapts the notification callbacks onto the coordinator's
// queues. Classification failures (ignored section kinds, missing paths)
// enqueue nothing; see the batch package for the drop policy.
type sourceDelegate struct {
	coord *batch.Coordinator
}

func (d *sourceDelegate) WillChangeContent() {
	slog.Debug("change bracket opened")
}

func (d *sourceDelegate) DidChangeObject(item batch.Item, oldPath *view.IndexPath, kind batch.ChangeKind, newPath *view.IndexPath) {
	if ch, ok := batch.ClassifyObject(item, oldPath, kind, newPath); ok {
		d.coord.Enqueue(ch)
	}
}

func (d *sourceDelegate) DidChangeSection(index int, kind batch.ChangeKind) {
	if ch, ok := batch.ClassifySection(index, kind); ok {
		d.coord.Enqueue(ch)
	}
}

func (d *sourceDelegate) DidChangeContent() {
	slog.Debug("change bracket closed")
	d.coord.ContentChanged()
}
