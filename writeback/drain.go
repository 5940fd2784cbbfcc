package writeback

import (
	"context"
	"time"
)

// drainLoop runs one queue's wake/drain/sleep cycle until ctx is
// cancelled. The first wake happens immediately, so operations
// enqueued right after construction are applied without waiting a
// full interval.
func (m *wmap[K, V]) drainLoop(ctx context.Context, q Queue) error {
	var bo *backoff
	if q == QueueAdd {
		bo = newBackoff(m.opt.AddBackoff)
	} else {
		bo = newBackoff(m.opt.RemoveBackoff)
	}

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			// Cooperative stop. Anything still queued is discarded;
			// Close documents this.
			return nil
		case <-timer.C:
		}

		n := m.drainOnce(q)
		if n > 0 {
			m.opt.Metrics.Drained(q, n)
			m.opt.Metrics.Size(m.Len())
		}
		m.opt.Metrics.Depth(q, m.queueLen(q))

		d := bo.next(n)
		m.opt.Metrics.Interval(q, d)
		if m.opt.Logger != nil && n > 0 {
			m.opt.Logger.Debug("writeback: drained",
				"queue", q.String(), "ops", n, "next", d)
		}
		timer.Reset(d)
	}
}

// drainOnce empties queue q into committed state and returns the
// number of operations applied. Items enqueued while the burst is in
// progress are picked up too; FIFO order within the queue is
// preserved.
func (m *wmap[K, V]) drainOnce(q Queue) int {
	n := 0
	switch q {
	case QueueAdd:
		for {
			op, ok := m.adds.TryDequeue()
			if !ok {
				break
			}
			s := m.getShard(op.key)
			s.mu.Lock()
			s.m[op.key] = op.val
			s.mu.Unlock()
			m.drainedAdd.Add(1)
			if cb := m.opt.OnCommit; cb != nil {
				cb(op.key, op.val)
			}
			n++
		}
	case QueueRemove:
		for {
			k, ok := m.removes.TryDequeue()
			if !ok {
				break
			}
			s := m.getShard(k)
			s.mu.Lock()
			delete(s.m, k)
			s.mu.Unlock()
			m.drainedRem.Add(1)
			if cb := m.opt.OnDelete; cb != nil {
				cb(k)
			}
			n++
		}
	}
	return n
}

func (m *wmap[K, V]) queueLen(q Queue) int {
	if q == QueueRemove {
		return m.removes.Len()
	}
	return m.adds.Len()
}
