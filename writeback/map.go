package writeback

import (
	"context"
	"iter"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/Unknown6656-Megacorp/generics/internal/queue"
	"github.com/Unknown6656-Megacorp/generics/internal/util"
)

// addOp is one buffered insert/update.
type addOp[K comparable, V any] struct {
	key K
	val V
}

// wmap is the sharded write-back map. Committed state lives in shards,
// each guarded by its own RWMutex; pending mutations live in two
// unbounded FIFO queues drained by background goroutines.
type wmap[K comparable, V any] struct {
	shards []*shard[K, V]
	hash   func(K) uint64
	closed atomic.Bool

	adds    queue.Queue[addOp[K, V]]
	removes queue.Queue[K]

	// Drain-loop lifetime: cancel wakes both loops, g.Wait blocks until
	// they have exited. Owned exclusively by this map; no finalizers.
	cancel context.CancelFunc
	g      *errgroup.Group

	opt Options[K, V]

	// ---- hot counters (separate cache lines to avoid false sharing) ----
	hits       util.PaddedAtomicUint64
	misses     util.PaddedAtomicUint64
	drainedAdd util.PaddedAtomicUint64
	drainedRem util.PaddedAtomicUint64
}

// shard is an independent partition of the committed state.
type shard[K comparable, V any] struct {
	mu sync.RWMutex
	m  map[K]V
}

// New constructs a write-back map with the provided Options and starts
// its two drain loops. The caller must Close the map when done;
// leaking it leaks two goroutines.
func New[K comparable, V any](opt Options[K, V]) Map[K, V] {
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	opt.AddBackoff = opt.AddBackoff.withDefaults(DefaultAddBackoff)
	opt.RemoveBackoff = opt.RemoveBackoff.withDefaults(DefaultRemoveBackoff)

	// number of shards -> power of two (mask-based shard selection)
	sh := opt.Shards
	if sh <= 0 {
		sh = util.ReasonableShardCount()
	} else {
		sh = int(util.NextPow2(uint64(sh)))
	}

	m := &wmap[K, V]{
		shards: make([]*shard[K, V], sh),
		hash:   util.Fnv64a[K],
		opt:    opt,
	}
	for i := range m.shards {
		m.shards[i] = &shard[K, V]{m: make(map[K]V)}
	}
	for k, v := range opt.Seed {
		s := m.getShard(k)
		s.m[k] = v // no lock needed: loops have not started yet
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.g = &errgroup.Group{}
	m.g.Go(func() error { return m.drainLoop(ctx, QueueAdd) })
	m.g.Go(func() error { return m.drainLoop(ctx, QueueRemove) })
	return m
}

// ---- Map[K,V] implementation ----

// Set enqueues an insert-or-update of k→v. Fire-and-forget: the call
// never blocks beyond the queue mutex and never fails.
func (m *wmap[K, V]) Set(k K, v V) {
	if m.closed.Load() {
		return
	}
	m.adds.Enqueue(addOp[K, V]{key: k, val: v})
	m.opt.Metrics.Enqueued(QueueAdd)
	m.opt.Metrics.Depth(QueueAdd, m.adds.Len())
}

// Remove enqueues deletion of k if k is committed.
//
// The presence check is eventually consistent: a Set(k, …) still in
// the add queue is invisible here, so Remove may report false for a
// key that is "logically" present.
func (m *wmap[K, V]) Remove(k K) bool {
	if m.closed.Load() {
		return false
	}
	if !m.Contains(k) {
		return false
	}
	m.removes.Enqueue(k)
	m.opt.Metrics.Enqueued(QueueRemove)
	m.opt.Metrics.Depth(QueueRemove, m.removes.Len())
	return true
}

// Get returns the committed value for k and a presence flag.
func (m *wmap[K, V]) Get(k K) (V, bool) {
	if m.closed.Load() {
		var zero V
		return zero, false
	}
	s := m.getShard(k)
	s.mu.RLock()
	v, ok := s.m[k]
	s.mu.RUnlock()

	if ok {
		m.hits.Add(1)
		m.opt.Metrics.Hit()
	} else {
		m.misses.Add(1)
		m.opt.Metrics.Miss()
	}
	return v, ok
}

// Contains reports whether k is committed.
func (m *wmap[K, V]) Contains(k K) bool {
	s := m.getShard(k)
	s.mu.RLock()
	_, ok := s.m[k]
	s.mu.RUnlock()
	return ok
}

// Len returns the number of committed entries across all shards.
func (m *wmap[K, V]) Len() int {
	total := 0
	for _, s := range m.shards {
		s.mu.RLock()
		total += len(s.m)
		s.mu.RUnlock()
	}
	return total
}

// Keys returns a copy of the committed key set.
// Shards are visited one at a time, so the result is a per-shard
// consistent union, not a point-in-time snapshot of the whole map.
func (m *wmap[K, V]) Keys() []K {
	out := make([]K, 0, m.Len())
	for _, s := range m.shards {
		s.mu.RLock()
		for k := range s.m {
			out = append(out, k)
		}
		s.mu.RUnlock()
	}
	return out
}

// Snapshot returns a copy of the committed state, with the same
// per-shard consistency as Keys.
func (m *wmap[K, V]) Snapshot() map[K]V {
	out := make(map[K]V, m.Len())
	for _, s := range m.shards {
		s.mu.RLock()
		for k, v := range s.m {
			out[k] = v
		}
		s.mu.RUnlock()
	}
	return out
}

// All returns an iterator over a Snapshot of the committed state.
func (m *wmap[K, V]) All() iter.Seq2[K, V] {
	snap := m.Snapshot()
	return func(yield func(K, V) bool) {
		for k, v := range snap {
			if !yield(k, v) {
				return
			}
		}
	}
}

// Clear enqueues a removal for every currently committed key.
// Not atomic: adds drained while the removals are pending may survive.
func (m *wmap[K, V]) Clear() {
	if m.closed.Load() {
		return
	}
	for _, k := range m.Keys() {
		m.removes.Enqueue(k)
		m.opt.Metrics.Enqueued(QueueRemove)
	}
	m.opt.Metrics.Depth(QueueRemove, m.removes.Len())
}

// Pending returns the current lengths of the two operation queues.
func (m *wmap[K, V]) Pending() (adds, removes int) {
	return m.adds.Len(), m.removes.Len()
}

// Stats returns cumulative counters since creation.
func (m *wmap[K, V]) Stats() Stats {
	return Stats{
		Hits:           m.hits.Load(),
		Misses:         m.misses.Load(),
		DrainedAdds:    m.drainedAdd.Load(),
		DrainedRemoves: m.drainedRem.Load(),
	}
}

// Close stops both drain loops and waits for them to exit. Operations
// still queued are discarded. Idempotent; later calls return nil
// without waiting.
func (m *wmap[K, V]) Close() error {
	if !m.closed.CompareAndSwap(false, true) {
		return nil
	}
	m.cancel()
	return m.g.Wait()
}

// getShard picks a shard by hashing the key and masking with len-1.
// len(m.shards) is guaranteed to be a power of two.
func (m *wmap[K, V]) getShard(k K) *shard[K, V] {
	h := m.hash(k)
	return m.shards[int(h)&(len(m.shards)-1)]
}
