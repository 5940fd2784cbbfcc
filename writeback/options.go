package writeback

import (
	"log/slog"
	"time"
)

// Backoff parameterizes a drain loop's adaptive idle timer. The loop
// sleeps Min after any productive drain, multiplies the interval by
// Factor after each empty wake-up, and never sleeps longer than Max.
type Backoff struct {
	Min    time.Duration
	Max    time.Duration
	Factor float64
}

// Default tunings. The remove path is deliberately lazier than the add
// path: deletions are rarely latency-sensitive, so its loop wakes less
// often at idle.
var (
	DefaultAddBackoff    = Backoff{Min: time.Millisecond, Max: 500 * time.Millisecond, Factor: 2}
	DefaultRemoveBackoff = Backoff{Min: 10 * time.Millisecond, Max: time.Second, Factor: 2}
)

// withDefaults fills zero fields from def and repairs nonsensical
// values (Max < Min, Factor < 1).
func (b Backoff) withDefaults(def Backoff) Backoff {
	if b.Min <= 0 {
		b.Min = def.Min
	}
	if b.Max <= 0 {
		b.Max = def.Max
	}
	if b.Max < b.Min {
		b.Max = b.Min
	}
	if b.Factor < 1 {
		b.Factor = def.Factor
	}
	return b
}

// Options configures the map. Zero values are safe; sane defaults are
// applied in New():
//   - nil Metrics      => NoopMetrics
//   - Shards <= 0      => auto (rounded up to power of two)
//   - zero Backoffs    => DefaultAddBackoff / DefaultRemoveBackoff
type Options[K comparable, V any] struct {
	// Shards defines the number of committed-state shards. If 0, an
	// automatic value is chosen (≈ 2*GOMAXPROCS) and rounded to the
	// next power of two.
	Shards int

	// AddBackoff and RemoveBackoff tune the two drain loops
	// independently. Zero fields fall back to the package defaults.
	AddBackoff    Backoff
	RemoveBackoff Backoff

	// Seed pre-populates the committed state before the drain loops
	// start. The map copies it; the caller keeps ownership of the
	// original.
	Seed map[K]V

	// OnCommit is called by the add drain loop after k→v has been
	// committed; OnDelete by the remove drain loop after k has been
	// deleted. Both run on the drain goroutine outside the shard lock.
	// Keep callbacks lightweight and panic-free: a panic on the drain
	// path kills that loop.
	OnCommit func(k K, v V)
	OnDelete func(k K)

	// Observability
	Metrics Metrics

	// Logger, if set, receives Debug records from the drain loops
	// (queue name, operations applied, next interval). Nil disables
	// logging entirely.
	Logger *slog.Logger
}
