package batch

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutationQueue_FIFO(t *testing.T) {
	q := NewMutationQueue()

	var applied []int
	for i := 1; i <= 3; i++ {
		i := i
		q.Enqueue(func() { applied = append(applied, i) })
	}

	for {
		thunk, ok := q.TryDequeue()
		if !ok {
			break
		}
		thunk()
	}

	assert.Equal(t, []int{1, 2, 3}, applied)
}

func TestMutationQueue_TryDequeue_Empty(t *testing.T) {
	q := NewMutationQueue()

	thunk, ok := q.TryDequeue()
	assert.False(t, ok, "dequeue from empty queue should return false")
	assert.Nil(t, thunk)
}

func TestMutationQueue_IsEmpty(t *testing.T) {
	q := NewMutationQueue()
	assert.True(t, q.IsEmpty())

	q.Enqueue(func() {})
	assert.False(t, q.IsEmpty())
	assert.Equal(t, 1, q.Len())

	_, ok := q.TryDequeue()
	require.True(t, ok)
	assert.True(t, q.IsEmpty())
}

// Interleaved concurrent enqueues from several goroutines, single-threaded
// drain: every thunk arrives exactly once, and each producer's thunks come
// out in that producer's enqueue order.
func TestMutationQueue_ConcurrentEnqueue_PreservesPerProducerOrder(t *testing.T) {
	const producers = 4
	const perProducer = 250

	q := NewMutationQueue()

	var mu sync.Mutex
	var drained []string

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		p := p
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				tag := fmt.Sprintf("%d-%d", p, i)
				q.Enqueue(func() {
					mu.Lock()
					drained = append(drained, tag)
					mu.Unlock()
				})
			}
		}()
	}
	wg.Wait()

	for {
		thunk, ok := q.TryDequeue()
		if !ok {
			break
		}
		thunk()
	}

	require.Len(t, drained, producers*perProducer)

	next := make([]int, producers)
	for _, tag := range drained {
		var p, i int
		_, err := fmt.Sscanf(tag, "%d-%d", &p, &i)
		require.NoError(t, err)
		assert.Equal(t, next[p], i, "producer %d out of order", p)
		next[p]++
	}
	for p := 0; p < producers; p++ {
		assert.Equal(t, perProducer, next[p])
	}
}
