// Package writeback provides a generic concurrent key/value map that
// decouples callers from the cost of individual mutations: Set and
// Remove enqueue onto unbounded FIFO queues and return immediately,
// while two background drain loops apply the buffered operations to a
// sharded committed state with adaptive idle backoff.
//
// # Design
//
//   - Committed state: a sharded map, each shard guarded by an RWMutex.
//     The default shard count is a power of two chosen from CPU
//     parallelism, so shard selection is a hash plus a mask. Reads are
//     plain map lookups under a read lock.
//
//   - Queues: one add queue (insert/update) and one remove queue
//     (delete), each an unbounded mutex-guarded FIFO. Enqueueing never
//     blocks beyond the queue mutex and never fails.
//
//   - Drain loops: one goroutine per queue. On wake, a loop empties
//     its queue fully, then sleeps. A productive burst resets the
//     sleep to the queue's Min; every empty wake-up multiplies it by
//     Factor, clamped to Max. Bursts of writes are therefore applied
//     promptly while a quiet map costs two cheap wake-ups per Max
//     interval.
//
//   - Consistency: reads observe committed state only. A write becomes
//     visible once its queue drains — eventually, not immediately. The
//     two queues race independently: a Remove enqueued before a later
//     Set of the same key may drain after it and resurrect nothing or,
//     in the inverse order, delete the fresher value. Whichever
//     operation drains last wins. Callers that need per-key ordering
//     across Set and Remove should not interleave them faster than the
//     drain windows.
//
//   - Lifecycle: New starts the loops; Close cancels their shared
//     context, wakes any mid-sleep loop promptly, and waits for both
//     to exit. Operations still queued at Close are discarded. There
//     is no finalizer; forgetting Close leaks two goroutines.
//
//   - Metrics: Options.Metrics receives enqueue/drain/depth/interval
//     and size signals; NoopMetrics is the default. A Prometheus
//     adapter lives in metrics/prom. Options.Logger (slog) additionally
//     emits Debug records from the drain loops.
//
// # Basic usage
//
//	m := writeback.New[string, int](writeback.Options[string, int]{})
//	defer m.Close()
//
//	m.Set("a", 1)              // returns immediately
//	_, ok := m.Get("a")        // may still miss: write not yet drained
//	time.Sleep(5 * time.Millisecond)
//	v, ok := m.Get("a")        // v == 1, ok == true
//
// # Tuning
//
//	m := writeback.New[string, []byte](writeback.Options[string, []byte]{
//	    Shards:     64,
//	    AddBackoff: writeback.Backoff{Min: time.Millisecond, Max: 100 * time.Millisecond, Factor: 2},
//	    OnCommit:   func(k string, v []byte) { /* index, notify, ... */ },
//	})
//
// The defaults (add 1ms→500ms, remove 10ms→1s, factor 2) make the add
// path noticeably more eager than the remove path; deletions are
// rarely latency-sensitive.
package writeback
