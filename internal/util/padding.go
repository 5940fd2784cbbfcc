package util

import (
	"sync/atomic"
	"unsafe"
)

// CacheLineSize is a reasonable default for most modern CPUs.
const CacheLineSize = 64

// PaddedAtomicUint64 is an atomic uint64 padded to exactly one cache
// line. Use when several goroutines bump different counters to avoid
// false sharing (drain loops and callers each own their own counter).
type PaddedAtomicUint64 struct {
	atomic.Uint64
	_ [CacheLineSize - 8]byte
}

// PaddedAtomicInt64 is the int64 counterpart padded to one cache line.
type PaddedAtomicInt64 struct {
	atomic.Int64
	_ [CacheLineSize - 8]byte
}

// Compile-time size checks (must be exactly one cache line).
var (
	_ [CacheLineSize - int(unsafe.Sizeof(PaddedAtomicUint64{}))]byte
	_ [CacheLineSize - int(unsafe.Sizeof(PaddedAtomicInt64{}))]byte
)
