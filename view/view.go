// Package view defines the sectioned list/grid widget contract that the
// binder drives, plus the non-owning handle used to reach the widget.
//
// The contract is deliberately small: one atomic batched transaction,
// structural insert/delete at the item and section level, cell lookup for
// in-place updates, and a supplementary refresh for header/footer state
// that the batched transaction does not cover.
//
// There is intentionally no native "move item" primitive on the contract.
// Moves are always expressed by the binder as delete-at-old followed by
// insert-at-new, even when the concrete widget reports move support via
// SupportsMove.
package view

import (
	"fmt"
	"sync"
)

// IndexPath locates an item within a sectioned list: section index first,
// then position within that section.
type IndexPath struct {
	Section int
	Item    int
}

func (p IndexPath) String() string {
	return fmt.Sprintf("(%d,%d)", p.Section, p.Item)
}

// Cell is an on-screen cell produced by the widget. The binder never
// inspects cells itself; it hands them to the caller's configurator, which
// performs its own concrete-type assertion.
type Cell any

// ListView is the widget surface the binder mutates.
//
// PerformBatch applies all mutations issued by updates as one atomic
// transaction. completion runs after the transaction has been applied;
// it is always invoked, even when updates issued no mutations. Both
// callbacks run synchronously on the caller's goroutine: the binder is
// only ever driven from the rendering context.
type ListView interface {
	PerformBatch(updates func(), completion func())

	InsertItems(paths []IndexPath)
	DeleteItems(paths []IndexPath)

	InsertSections(indices []int)
	DeleteSections(indices []int)

	// CellAt returns the on-screen cell at path, or nil when the item is
	// not currently materialized (scrolled out, already recycled).
	CellAt(path IndexPath) Cell

	// ReloadSupplementary refreshes header/footer views whose cached state
	// a batched section insert/delete invalidates.
	ReloadSupplementary()

	// SupportsMove reports whether the widget has a native move primitive.
	// The binder ignores this and always applies moves as delete+insert;
	// the probe exists for callers that drive the widget directly.
	SupportsMove() bool
}

// Handle is a non-owning reference to a ListView. The binder holds a Handle
// rather than the view itself so that it never extends the widget's
// lifetime; once the owner calls Invalidate, every pending mutation
// resolves to nothing and no-ops.
//
// Handle is safe for concurrent Resolve/Invalidate.
type Handle struct {
	mu sync.Mutex
	v  ListView
}

// NewHandle returns a handle resolving to v until Invalidate is called.
func NewHandle(v ListView) *Handle {
	return &Handle{v: v}
}

// Resolve returns the view and true while the handle is live, or nil and
// false after Invalidate.
func (h *Handle) Resolve() (ListView, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.v == nil {
		return nil, false
	}
	return h.v, true
}

// Invalidate detaches the handle from its view. Idempotent.
func (h *Handle) Invalidate() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.v = nil
}
