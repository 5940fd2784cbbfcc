package writeback

import "time"

// Queue identifies one of the two pending-operation queues.
type Queue int

const (
	// QueueAdd buffers pending inserts/updates.
	QueueAdd Queue = iota
	// QueueRemove buffers pending deletions.
	QueueRemove
)

// String returns a stable label value ("add" / "remove").
func (q Queue) String() string {
	if q == QueueRemove {
		return "remove"
	}
	return "add"
}

// Metrics exposes map-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
//
// Enqueued/Depth fire on caller threads; Drained/Interval/Size fire on
// the drain goroutines. Implementations must be goroutine-safe.
type Metrics interface {
	Hit()
	Miss()
	// Enqueued is called for every operation accepted onto a queue.
	Enqueued(q Queue)
	// Drained is called after a drain burst that applied n > 0 operations.
	Drained(q Queue, n int)
	// Depth reports the queue length after an enqueue or a drain burst.
	Depth(q Queue, n int)
	// Interval reports the sleep the drain loop chose for its next wait.
	Interval(q Queue, d time.Duration)
	// Size reports the committed entry count after a productive drain.
	Size(entries int)
}

// NoopMetrics is a drop-in Metrics implementation that does nothing.
// It is safe for concurrent use and intended as the default when no
// observability backend is configured.
type NoopMetrics struct{}

func (NoopMetrics) Hit()                          {}
func (NoopMetrics) Miss()                         {}
func (NoopMetrics) Enqueued(Queue)                {}
func (NoopMetrics) Drained(Queue, int)            {}
func (NoopMetrics) Depth(Queue, int)              {}
func (NoopMetrics) Interval(Queue, time.Duration) {}
func (NoopMetrics) Size(int)                      {}

// Ensure NoopMetrics implements the Metrics interface at compile time.
var _ Metrics = NoopMetrics{}
