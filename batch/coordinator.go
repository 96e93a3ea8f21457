package batch

import (
	"log/slog"
	"sync"

	"github.com/gridwell/listbind/view"
)

// ConfigureFunc refreshes an on-screen cell from its item, in place. It is
// invoked synchronously from inside an update thunk and must not block or
// do async work. It returns false when the cell is not of the expected
// concrete type, in which case the update is skipped.
type ConfigureFunc func(cell view.Cell, item Item, path view.IndexPath) bool

// State is the coordinator's drain state.
type State int

const (
	StateIdle State = iota + 1
	StatePaused
	StateDraining
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePaused:
		return "paused"
	case StateDraining:
		return "draining"
	default:
		return "unknown"
	}
}

// Coordinator owns the two mutation queues and replays them inside one
// atomic view transaction per content-changed signal.
//
// The drain order is fixed: the object queue completely, then the section
// queue completely, FIFO each. See the package documentation for why.
//
// Thread-safety model:
//   - Enqueue: safe from any goroutine (delegates to MutationQueue)
//   - ContentChanged / PerformUpdates / Pause / Resume: rendering context
//   - a second content-changed signal during a drain is absorbed (no-op)
type Coordinator struct {
	handle    *view.Handle
	configure ConfigureFunc

	objects  *MutationQueue
	sections *MutationQueue

	// mu guards paused and draining.
	mu       sync.Mutex
	paused   bool
	draining bool
}

// NewCoordinator creates a coordinator driving the view behind handle.
// configure may be nil, in which case update changes only verify cell
// presence.
func NewCoordinator(handle *view.Handle, configure ConfigureFunc) *Coordinator {
	return &Coordinator{
		handle:    handle,
		configure: configure,
		objects:   NewMutationQueue(),
		sections:  NewMutationQueue(),
	}
}

// State reports the current drain state. Draining wins over Paused, which
// only overlap during the synchronous flush inside Resume.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.draining:
		return StateDraining
	case c.paused:
		return StatePaused
	default:
		return StateIdle
	}
}

// QueueLens returns the current object and section queue lengths.
// Useful for monitoring and testing.
func (c *Coordinator) QueueLens() (objects, sections int) {
	return c.objects.Len(), c.sections.Len()
}

// Enqueue converts a classified change into its deferred thunk(s) on the
// appropriate queue. A move enqueues exactly two object thunks:
// delete-at-old, then insert-at-new, in that order.
func (c *Coordinator) Enqueue(ch ScopedChange) {
	switch ch.Scope {
	case ScopeSection:
		c.sections.Enqueue(c.sectionThunk(ch))
	case ScopeObject:
		if ch.Kind == ChangeMove {
			oldPath, newPath := *ch.OldPath, *ch.NewPath
			c.objects.Enqueue(func() {
				if v, ok := c.handle.Resolve(); ok {
					v.DeleteItems([]view.IndexPath{oldPath})
				}
			})
			c.objects.Enqueue(func() {
				if v, ok := c.handle.Resolve(); ok {
					v.InsertItems([]view.IndexPath{newPath})
				}
			})
			return
		}
		c.objects.Enqueue(c.objectThunk(ch))
	default:
		panic("batch: scoped change with no scope")
	}
}

func (c *Coordinator) sectionThunk(ch ScopedChange) Thunk {
	index := ch.SectionIndex
	switch ch.Kind {
	case ChangeInsert:
		return func() {
			if v, ok := c.handle.Resolve(); ok {
				v.InsertSections([]int{index})
			}
		}
	case ChangeDelete:
		return func() {
			if v, ok := c.handle.Resolve(); ok {
				v.DeleteSections([]int{index})
			}
		}
	default:
		// ClassifySection never produces other kinds.
		panic("batch: section thunk for non-structural change")
	}
}

func (c *Coordinator) objectThunk(ch ScopedChange) Thunk {
	switch ch.Kind {
	case ChangeInsert:
		newPath := *ch.NewPath
		return func() {
			if v, ok := c.handle.Resolve(); ok {
				v.InsertItems([]view.IndexPath{newPath})
			}
		}
	case ChangeDelete:
		oldPath := *ch.OldPath
		return func() {
			if v, ok := c.handle.Resolve(); ok {
				v.DeleteItems([]view.IndexPath{oldPath})
			}
		}
	case ChangeUpdate:
		oldPath := *ch.OldPath
		item := ch.Item
		return func() {
			v, ok := c.handle.Resolve()
			if !ok {
				return
			}
			// Cell presence and type are checked at apply time, not at
			// classification time: the item may have scrolled off screen
			// between the two. The eventual full refresh catches up.
			cell := v.CellAt(oldPath)
			if cell == nil {
				slog.Debug("skipping update for off-screen cell", "path", oldPath)
				return
			}
			if c.configure != nil && !c.configure(cell, item, oldPath) {
				slog.Debug("skipping update for unexpected cell type", "path", oldPath)
			}
		}
	default:
		panic("batch: object thunk for move change")
	}
}

// ContentChanged is the bracket-close signal from the notification source.
// While paused it is a no-op; the queues keep accumulating until Resume.
func (c *Coordinator) ContentChanged() {
	c.mu.Lock()
	paused := c.paused
	c.mu.Unlock()
	if paused {
		slog.Debug("content changed while paused, deferring drain")
		return
	}
	c.performUpdates(nil)
}

// PerformUpdates drains both queues inside one atomic view transaction.
// No-ops when a drain is already in flight.
func (c *Coordinator) PerformUpdates() {
	c.performUpdates(nil)
}

// performUpdates runs one drain. done, when non-nil, is invoked exactly
// once after the transaction's completion callback has run, on every path
// including the degenerate ones (drain already in flight, view released).
func (c *Coordinator) performUpdates(done func()) {
	c.mu.Lock()
	if c.draining {
		c.mu.Unlock()
		if done != nil {
			done()
		}
		return
	}
	c.draining = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.draining = false
		c.mu.Unlock()
	}()

	v, ok := c.handle.Resolve()
	if !ok {
		// View torn down: run the thunks anyway so the queues empty out.
		// Each one resolves the handle itself and no-ops.
		drain(c.objects)
		drain(c.sections)
		if done != nil {
			done()
		}
		return
	}

	sectionCount := 0
	v.PerformBatch(
		func() {
			drain(c.objects)
			sectionCount = drain(c.sections)
		},
		func() {
			// A section insert/delete invalidates cached header/footer
			// state that the batched transaction does not itself refresh.
			if sectionCount > 0 {
				v.ReloadSupplementary()
			}
			if done != nil {
				done()
			}
		},
	)
}

// Pause suspends drains. Notifications keep classifying and enqueueing;
// ContentChanged signals are deferred until Resume.
func (c *Coordinator) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = true
}

// Resume clears the pause and synchronously performs exactly one drain,
// flushing everything accumulated since Pause. Calling Resume while not
// paused is harmless: the drain of two empty queues is a no-op.
func (c *Coordinator) Resume() {
	c.mu.Lock()
	c.paused = false
	c.mu.Unlock()
	c.performUpdates(nil)
}

// drain applies queued thunks in FIFO order until the queue is empty,
// returning the number applied.
func drain(q *MutationQueue) int {
	n := 0
	for {
		t, ok := q.TryDequeue()
		if !ok {
			return n
		}
		t()
		n++
	}
}
