package util

import "runtime"

// NextPow2 returns the smallest power of two >= x (1 for x <= 1).
// If the exact next power would overflow 64 bits the result is
// clamped to 1<<63.
func NextPow2(x uint64) uint64 {
	if x <= 1 {
		return 1
	}
	x--
	x |= x >> 1
	x |= x >> 2
	x |= x >> 4
	x |= x >> 8
	x |= x >> 16
	x |= x >> 32
	x++
	if x == 0 {
		return 1 << 63
	}
	return x
}

// ReasonableShardCount picks a practical default shard count based on
// CPU parallelism: nextPow2(2*GOMAXPROCS), clamped to [1..256].
// Enough to keep lock contention low without bloating memory overhead.
func ReasonableShardCount() int {
	p := runtime.GOMAXPROCS(0)
	if p < 1 {
		p = 1
	}
	n := int(NextPow2(uint64(p * 2)))
	if n > 256 {
		n = 256
	}
	return n
}
