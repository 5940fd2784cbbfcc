package writeback

import "iter"

// Map is a concurrent key/value map whose mutations are applied
// asynchronously by background drain loops. All methods are safe for
// concurrent use by multiple goroutines.
//
// Reads (Get/Contains/Len/Keys/Snapshot/All) observe only the
// committed state; a Set or Remove becomes visible once its queue has
// been drained, typically within the queue's backoff window.
type Map[K comparable, V any] interface {
	// Set enqueues an insert-or-update of k→v and returns immediately.
	// The write becomes visible after the add queue drains. There is no
	// ordering guarantee relative to Remove calls for the same key
	// beyond "whichever drains last wins".
	Set(k K, v V)

	// Remove enqueues deletion of k if k is currently committed and
	// reports whether it did. The presence check reads committed state
	// only, so it may miss a Set for the same key that is still
	// sitting in the add queue.
	Remove(k K) bool

	// Get returns the committed value for k and a presence flag.
	Get(k K) (V, bool)

	// Contains reports whether k is committed.
	Contains(k K) bool

	// Len returns the number of committed entries across all shards.
	Len() int

	// Keys returns a copy of the committed key set, in no particular
	// order.
	Keys() []K

	// Snapshot returns a copy of the committed state.
	Snapshot() map[K]V

	// All returns an iterator over a snapshot of the committed state.
	// Mutating the map while ranging is safe.
	All() iter.Seq2[K, V]

	// Clear snapshots the committed keys and enqueues a removal for
	// each. Not atomic: entries committed by concurrent Sets during the
	// drain may survive.
	Clear()

	// Pending returns the number of not-yet-applied operations buffered
	// on the add and remove queues.
	Pending() (adds, removes int)

	// Stats returns cumulative operation counters.
	Stats() Stats

	// Close stops both drain loops and waits for them to exit.
	// Operations still buffered at that point are discarded. Close is
	// idempotent; calls after the first are no-ops.
	Close() error
}

// Stats are cumulative counters maintained by a Map since creation.
type Stats struct {
	Hits           uint64 // Get calls that found a committed entry
	Misses         uint64 // Get calls that did not
	DrainedAdds    uint64 // add operations applied to committed state
	DrainedRemoves uint64 // remove operations applied to committed state
}
