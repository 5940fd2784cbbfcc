// Package queue provides a minimal unbounded FIFO used as the pending
// operation buffer of the write-back map.
package queue

import "sync"

// Queue is an unbounded, mutex-guarded FIFO. The zero value is ready
// to use.
//
// Concurrency notes:
//   - Enqueue never blocks beyond the mutex and never fails.
//   - TryDequeue is non-blocking; (zero, false) means "empty right now",
//     not "closed" — the queue has no terminal state.
//   - FIFO order is preserved per queue; callers that need cross-queue
//     ordering must arrange it themselves.
type Queue[T any] struct {
	mu    sync.Mutex
	items []T
	head  int // index of the oldest element in items
}

// Enqueue appends v at the tail.
func (q *Queue[T]) Enqueue(v T) {
	q.mu.Lock()
	q.items = append(q.items, v)
	q.mu.Unlock()
}

// TryDequeue removes and returns the oldest element, or (zero, false)
// if the queue is currently empty.
func (q *Queue[T]) TryDequeue() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head >= len(q.items) {
		var zero T
		return zero, false
	}
	v := q.items[q.head]
	var zero T
	q.items[q.head] = zero // drop the reference so GC can collect early
	q.head++

	// Amortized compaction: once the dead prefix dominates, shift the
	// live tail down and let the backing array shrink over time.
	if q.head > 32 && q.head*2 >= len(q.items) {
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
	return v, true
}

// Len returns the number of elements currently buffered.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}
