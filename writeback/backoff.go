package writeback

import (
	"math"
	"time"
)

// backoff tracks one drain loop's adaptive sleep interval. It is pure
// state with no timers attached, so the growth/reset policy can be
// unit-tested without sleeping.
//
// Not goroutine-safe; each drain loop owns exactly one instance.
type backoff struct {
	cfg Backoff
	cur time.Duration
}

func newBackoff(cfg Backoff) *backoff {
	return &backoff{cfg: cfg, cur: cfg.Min}
}

// next returns the sleep interval to use after a drain burst that
// applied n operations: reset to Min when the burst did useful work,
// otherwise grow geometrically up to Max.
func (b *backoff) next(n int) time.Duration {
	if n > 0 {
		b.cur = b.cfg.Min
		return b.cur
	}
	d := time.Duration(math.Round(float64(b.cur) * b.cfg.Factor))
	if d > b.cfg.Max {
		d = b.cfg.Max
	}
	b.cur = d
	return d
}
