package batch

import "sync"

// UpdateOperation wraps one coordinator drain as a cancellable,
// once-completing unit of work for an external operation scheduler.
//
// Lifecycle:
//   - Cancel before Start: Start completes immediately without draining.
//   - Cancel after Start: ignored; an in-flight transaction is not safely
//     abortable, so it runs to completion and the operation reports
//     completion anyway.
//   - The view disappearing mid-flight is not an error: the drain no-ops
//     and the operation still completes.
//
// Done is closed exactly once, after the transaction's completion
// callback has fired, on the goroutine that called Start.
type UpdateOperation struct {
	coord *Coordinator

	mu        sync.Mutex
	started   bool
	cancelled bool

	once sync.Once
	done chan struct{}
}

// NewUpdateOperation creates an operation bound to coord. The operation is
// single-use: construct a new one for each drain.
func NewUpdateOperation(coord *Coordinator) *UpdateOperation {
	return &UpdateOperation{
		coord: coord,
		done:  make(chan struct{}),
	}
}

// Cancel requests cancellation. Effective only before Start.
func (op *UpdateOperation) Cancel() {
	op.mu.Lock()
	defer op.mu.Unlock()
	if op.started {
		return
	}
	op.cancelled = true
}

// Cancelled reports whether Cancel took effect.
func (op *UpdateOperation) Cancelled() bool {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.cancelled
}

// Start performs the drain. Calling Start more than once is a no-op after
// the first call.
func (op *UpdateOperation) Start() {
	op.mu.Lock()
	if op.started {
		op.mu.Unlock()
		return
	}
	op.started = true
	cancelled := op.cancelled
	op.mu.Unlock()

	if cancelled {
		op.finish()
		return
	}
	op.coord.performUpdates(op.finish)
}

// Done returns a channel closed when the operation has completed.
func (op *UpdateOperation) Done() <-chan struct{} {
	return op.done
}

func (op *UpdateOperation) finish() {
	op.once.Do(func() {
		close(op.done)
	})
}
