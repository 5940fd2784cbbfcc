// Package history provides a browsable timeline with a movable cursor,
// in the style of a browser history: adding an entry after navigating
// back discards the abandoned "future", and enumeration only ever
// exposes the prefix up to the cursor.
//
// All methods are safe for concurrent use; the structure is guarded by
// a single coarse mutex, which is plenty for a low-contention buffer.
package history

import (
	"errors"
	"iter"
	"sync"
)

// ErrOutOfRange is returned by Current, At, and Slice when an index
// falls outside the buffer. Navigation methods never return it; they
// clamp instead.
var ErrOutOfRange = errors.New("history: index out of range")

// Origin selects how At and Slice resolve indices.
type Origin int

const (
	// FromStart resolves indices from the oldest entry.
	// Negative indices count from the end (-1 = newest).
	FromStart Origin = iota
	// FromCursor resolves indices as offsets from the cursor
	// (0 = current, negative = older, positive = newer).
	FromCursor
)

// History is a bounded-by-usage, cursor-based undo/redo buffer.
// The cursor is -1 exactly when the buffer is empty and otherwise
// always points at a valid entry.
type History[T any] struct {
	mu     sync.Mutex
	items  []T
	cursor int // -1 iff items is empty; invariant: cursor < len(items)
	eq     func(a, b T) bool
}

// New constructs a history over a comparable element type, optionally
// seeded with an ordered list of entries (oldest first). A seeded
// history starts with its cursor on the newest entry.
func New[T comparable](items ...T) *History[T] {
	return NewFunc(func(a, b T) bool { return a == b }, items...)
}

// NewFunc is like New but takes an explicit equality function, for
// element types that are not comparable or need looser matching
// (TryNavigateTo and NavigateOrAdd search with eq).
func NewFunc[T any](eq func(a, b T) bool, items ...T) *History[T] {
	if eq == nil {
		panic("history: nil equality function")
	}
	h := &History[T]{
		items:  append([]T(nil), items...), // own the backing storage
		cursor: len(items) - 1,
		eq:     eq,
	}
	return h
}

// Len returns the total number of entries, including unvisited future
// entries beyond the cursor.
func (h *History[T]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.items)
}

// Index returns the cursor position, or -1 if the history is empty.
func (h *History[T]) Index() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor
}

// Current returns the entry under the cursor.
// Returns ErrOutOfRange if the history is empty.
func (h *History[T]) Current() (T, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cursor < 0 {
		var zero T
		return zero, ErrOutOfRange
	}
	return h.items[h.cursor], nil
}

// CanNavigateBack reports whether the cursor has at least one older
// entry behind it.
func (h *History[T]) CanNavigateBack() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor > 0
}

// CanNavigateForward reports whether the cursor has at least one newer
// entry ahead of it.
func (h *History[T]) CanNavigateForward() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor >= 0 && h.cursor < len(h.items)-1
}

// Add places item directly after the cursor and moves the cursor onto
// it. Any entries beyond the old cursor position are discarded, like a
// browser visiting a new page after going back. Add always succeeds.
func (h *History[T]) Add(item T) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.addLocked(item)
}

func (h *History[T]) addLocked(item T) {
	h.cursor++
	if h.cursor == len(h.items) {
		h.items = append(h.items, item)
		return
	}
	h.items[h.cursor] = item
	clear(h.items[h.cursor+1:]) // drop references in the truncated tail
	h.items = h.items[:h.cursor+1]
}

// NavigateBack moves the cursor up to n steps toward the oldest entry
// and returns the number of steps actually taken (0 when already at
// the oldest entry or empty). A negative n delegates to
// NavigateForward.
func (h *History[T]) NavigateBack(n int) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	if n < 0 {
		return h.forwardLocked(-n)
	}
	return h.backLocked(n)
}

// NavigateForward moves the cursor up to n steps toward the newest
// entry and returns the number of steps actually taken. A negative n
// delegates to NavigateBack.
func (h *History[T]) NavigateForward(n int) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	if n < 0 {
		return h.backLocked(-n)
	}
	return h.forwardLocked(n)
}

func (h *History[T]) backLocked(n int) int {
	if h.cursor <= 0 {
		return 0
	}
	if n > h.cursor {
		n = h.cursor
	}
	h.cursor -= n
	return n
}

func (h *History[T]) forwardLocked(n int) int {
	if h.cursor < 0 {
		return 0
	}
	if room := len(h.items) - 1 - h.cursor; n > room {
		n = room
	}
	h.cursor += n
	return n
}

// NavigateToNewest jumps the cursor to the newest entry.
// Returns true iff the cursor actually moved.
func (h *History[T]) NavigateToNewest() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.forwardLocked(len(h.items)) > 0
}

// NavigateToOldest jumps the cursor to the oldest entry.
// Returns true iff the cursor actually moved.
func (h *History[T]) NavigateToOldest() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.backLocked(len(h.items)) > 0
}

// TryNavigateTo searches the buffer newest-first for an entry equal to
// target. On the first match the cursor jumps there and TryNavigateTo
// returns the resolved index and true; otherwise (-1, false) and the
// cursor is left untouched.
func (h *History[T]) TryNavigateTo(target T) (int, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.findLocked(target)
}

func (h *History[T]) findLocked(target T) (int, bool) {
	for i := len(h.items) - 1; i >= 0; i-- {
		if h.eq(h.items[i], target) {
			h.cursor = i
			return i, true
		}
	}
	return -1, false
}

// NavigateOrAdd navigates to the newest entry equal to target if one
// exists, and otherwise adds target as a new entry.
func (h *History[T]) NavigateOrAdd(target T) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.findLocked(target); !ok {
		h.addLocked(target)
	}
}

// At returns the entry at index, resolved against origin.
// Returns ErrOutOfRange if the resolved index falls outside the
// buffer. Unlike navigation, lookups fail fast rather than clamp.
func (h *History[T]) At(index int, origin Origin) (T, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	i := h.resolveLocked(index, origin)
	if i < 0 || i >= len(h.items) {
		var zero T
		return zero, ErrOutOfRange
	}
	return h.items[i], nil
}

// resolveLocked maps a caller-supplied index to an absolute position.
func (h *History[T]) resolveLocked(index int, origin Origin) int {
	if origin == FromCursor {
		return h.cursor + index
	}
	if index < 0 {
		return len(h.items) + index
	}
	return index
}

// Slice returns a new, independent history holding a copy of the
// entries in [start, end), resolved against origin. The copy does not
// alias the parent's storage and starts with its cursor on its newest
// entry. Returns ErrOutOfRange for bounds outside the buffer.
func (h *History[T]) Slice(start, end int, origin Origin) (*History[T], error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	lo := h.resolveLocked(start, origin)
	hi := h.resolveLocked(end, origin)
	if lo < 0 || hi < lo || hi > len(h.items) {
		return nil, ErrOutOfRange
	}
	return NewFunc(h.eq, h.items[lo:hi]...), nil
}

// Items returns a copy of the visible prefix: every entry from the
// oldest up to and including the cursor, oldest first. Future entries
// beyond the cursor are not part of the logical history until
// navigated to.
func (h *History[T]) Items() []T {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]T, h.cursor+1)
	copy(out, h.items[:h.cursor+1])
	return out
}

// Future returns a copy of the entries beyond the cursor, oldest
// first. Empty unless the cursor has been navigated back.
func (h *History[T]) Future() []T {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]T, len(h.items)-h.cursor-1)
	copy(out, h.items[h.cursor+1:])
	return out
}

// All returns an iterator over the visible prefix, yielding
// (index, entry) pairs from oldest to current. The iteration runs over
// a snapshot taken when All is called, so mutating the history while
// ranging is safe.
func (h *History[T]) All() iter.Seq2[int, T] {
	snap := h.Items()
	return func(yield func(int, T) bool) {
		for i, v := range snap {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Clear removes every entry and resets the cursor to -1.
func (h *History[T]) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.items = nil
	h.cursor = -1
}
