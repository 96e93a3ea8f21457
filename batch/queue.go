package batch

import "sync"

// Thunk is a deferred zero-argument action representing one queued
// mutation's effect on the target view.
type Thunk func()

// MutationQueue is a thread-safe FIFO of thunks.
//
// The notification source may deliver from a background goroutine while
// the rendering context drains, so enqueue and dequeue are guarded by one
// mutex. Strict FIFO is required within a queue; no ordering is guaranteed
// across different queues.
type MutationQueue struct {
	mu     sync.Mutex
	thunks []Thunk
}

// NewMutationQueue creates an empty queue.
func NewMutationQueue() *MutationQueue {
	return &MutationQueue{
		thunks: make([]Thunk, 0, 16),
	}
}

// Enqueue appends a thunk to the back of the queue.
// Safe from any goroutine.
func (q *MutationQueue) Enqueue(t Thunk) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.thunks = append(q.thunks, t)
}

// TryDequeue removes and returns the front thunk without blocking.
// Returns (nil, false) when the queue is empty.
func (q *MutationQueue) TryDequeue() (Thunk, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.thunks) == 0 {
		return nil, false
	}

	t := q.thunks[0]

	// Nil out the slot so the captured closure state is collectable even
	// while the backing array is retained.
	q.thunks[0] = nil
	if len(q.thunks) == 1 {
		q.thunks = q.thunks[:0]
	} else {
		q.thunks = q.thunks[1:]
	}

	return t, true
}

// IsEmpty reports whether the queue currently holds no thunks.
func (q *MutationQueue) IsEmpty() bool {
	return q.Len() == 0
}

// Len returns the current queue length.
func (q *MutationQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.thunks)
}
