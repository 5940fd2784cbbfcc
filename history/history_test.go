package history

import (
	"errors"
	"slices"
	"testing"
)

// The canonical add/back/add flow: adding after a back-navigation
// discards the abandoned future and leaves the cursor on the new item.
func TestHistory_AddNavigateTruncate(t *testing.T) {
	t.Parallel()

	h := New[int]()
	h.Add(1)
	h.Add(2)
	h.Add(3)

	if v, err := h.Current(); err != nil || v != 3 {
		t.Fatalf("Current = %v, %v; want 3", v, err)
	}
	if got := h.Index(); got != 2 {
		t.Fatalf("Index = %d, want 2", got)
	}

	if n := h.NavigateBack(1); n != 1 {
		t.Fatalf("NavigateBack(1) = %d, want 1", n)
	}
	if v, _ := h.Current(); v != 2 {
		t.Fatalf("Current after back = %v, want 2", v)
	}

	h.Add(9) // overwrites slot 2, discards 3
	if v, _ := h.Current(); v != 9 {
		t.Fatalf("Current after Add(9) = %v, want 9", v)
	}
	if got := h.Len(); got != 3 {
		t.Fatalf("Len = %d, want 3", got)
	}
	if fut := h.Future(); len(fut) != 0 {
		t.Fatalf("Future = %v, want empty", fut)
	}
	if v, err := h.At(2, FromStart); err != nil || v != 9 {
		t.Fatalf("At(2) = %v, %v; want 9", v, err)
	}
}

func TestHistory_EmptyAndClear(t *testing.T) {
	t.Parallel()

	h := New[string]()
	if _, err := h.Current(); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Current on empty: err = %v, want ErrOutOfRange", err)
	}
	if h.Index() != -1 || h.Len() != 0 {
		t.Fatalf("empty history: Index=%d Len=%d", h.Index(), h.Len())
	}
	if h.CanNavigateBack() || h.CanNavigateForward() {
		t.Fatal("empty history must not be navigable")
	}
	if h.NavigateBack(3) != 0 || h.NavigateForward(3) != 0 {
		t.Fatal("navigation on empty must take 0 steps")
	}

	h.Add("a")
	h.Add("b")
	h.Clear()
	if h.Len() != 0 || h.Index() != -1 {
		t.Fatalf("after Clear: Len=%d Index=%d", h.Len(), h.Index())
	}
}

func TestHistory_Seeded(t *testing.T) {
	t.Parallel()

	h := New(10, 20, 30)
	if h.Len() != 3 {
		t.Fatalf("Len = %d, want 3", h.Len())
	}
	if v, _ := h.Current(); v != 30 {
		t.Fatalf("seeded cursor must be on newest, got %v", v)
	}
}

// Navigation clamps to bounds and reports the steps actually taken;
// it never fails and never over-reports.
func TestHistory_NavigationClamping(t *testing.T) {
	t.Parallel()

	h := New(1, 2, 3, 4, 5)
	if n := h.NavigateBack(100); n != 4 {
		t.Fatalf("NavigateBack(100) = %d, want 4", n)
	}
	if h.Index() != 0 {
		t.Fatalf("Index after clamped back = %d, want 0", h.Index())
	}
	if n := h.NavigateBack(1); n != 0 {
		t.Fatalf("NavigateBack at oldest = %d, want 0", n)
	}
	if n := h.NavigateForward(100); n != 4 {
		t.Fatalf("NavigateForward(100) = %d, want 4", n)
	}
	if n := h.NavigateForward(1); n != 0 {
		t.Fatalf("NavigateForward at newest = %d, want 0", n)
	}
}

// Negative step counts delegate to the opposite direction.
func TestHistory_NegativeDelegation(t *testing.T) {
	t.Parallel()

	h := New(1, 2, 3)
	if n := h.NavigateBack(-2); n != 0 { // already at newest
		t.Fatalf("NavigateBack(-2) at newest = %d, want 0", n)
	}
	h.NavigateBack(2)
	if n := h.NavigateBack(-1); n != 1 {
		t.Fatalf("NavigateBack(-1) = %d, want 1", n)
	}
	if v, _ := h.Current(); v != 2 {
		t.Fatalf("Current = %v, want 2", v)
	}
	if n := h.NavigateForward(-1); n != 1 {
		t.Fatalf("NavigateForward(-1) = %d, want 1", n)
	}
	if v, _ := h.Current(); v != 1 {
		t.Fatalf("Current = %v, want 1", v)
	}
}

// NavigateToNewest/NavigateToOldest report whether the cursor moved.
func TestHistory_JumpSemantics(t *testing.T) {
	t.Parallel()

	h := New[int]()
	if h.NavigateToNewest() || h.NavigateToOldest() {
		t.Fatal("jumps on empty history must report no movement")
	}

	h.Add(1)
	h.Add(2)
	h.Add(3)
	if h.NavigateToNewest() {
		t.Fatal("already at newest: must report no movement")
	}
	if !h.NavigateToOldest() {
		t.Fatal("jump to oldest must report movement")
	}
	if h.Index() != 0 {
		t.Fatalf("Index = %d, want 0", h.Index())
	}
	if h.NavigateToOldest() {
		t.Fatal("already at oldest: must report no movement")
	}
	if !h.NavigateToNewest() {
		t.Fatal("jump to newest must report movement")
	}
}

// TryNavigateTo searches newest-first, so duplicates resolve to the
// most recent occurrence.
func TestHistory_TryNavigateTo(t *testing.T) {
	t.Parallel()

	h := New("a", "b", "a", "c")
	idx, ok := h.TryNavigateTo("a")
	if !ok || idx != 2 {
		t.Fatalf("TryNavigateTo(a) = (%d, %v), want (2, true)", idx, ok)
	}
	if v, _ := h.Current(); v != "a" {
		t.Fatalf("Current = %v, want a", v)
	}

	before := h.Index()
	if idx, ok := h.TryNavigateTo("zzz"); ok || idx != -1 {
		t.Fatalf("TryNavigateTo(zzz) = (%d, %v), want (-1, false)", idx, ok)
	}
	if h.Index() != before {
		t.Fatal("failed search must not move the cursor")
	}
}

func TestHistory_NavigateOrAdd(t *testing.T) {
	t.Parallel()

	h := New("a", "b", "c")
	h.NavigateOrAdd("b") // present: navigate
	if h.Index() != 1 || h.Len() != 3 {
		t.Fatalf("after NavigateOrAdd(b): Index=%d Len=%d", h.Index(), h.Len())
	}

	h.NavigateOrAdd("x") // absent: add after cursor, truncating "c"
	if v, _ := h.Current(); v != "x" {
		t.Fatalf("Current = %v, want x", v)
	}
	if h.Len() != 3 {
		t.Fatalf("Len = %d, want 3", h.Len())
	}
	if _, ok := h.TryNavigateTo("c"); ok {
		t.Fatal("c must have been truncated")
	}
}

func TestHistory_At(t *testing.T) {
	t.Parallel()

	h := New(10, 20, 30, 40)
	h.NavigateBack(1) // cursor on 30

	cases := []struct {
		index  int
		origin Origin
		want   int
		ok     bool
	}{
		{0, FromStart, 10, true},
		{3, FromStart, 40, true},
		{-1, FromStart, 40, true}, // from-end
		{-4, FromStart, 10, true},
		{0, FromCursor, 30, true},
		{-2, FromCursor, 10, true},
		{1, FromCursor, 40, true},
		{4, FromStart, 0, false},
		{-5, FromStart, 0, false},
		{2, FromCursor, 0, false},
	}
	for _, tc := range cases {
		v, err := h.At(tc.index, tc.origin)
		if tc.ok {
			if err != nil || v != tc.want {
				t.Errorf("At(%d, %v) = %v, %v; want %v", tc.index, tc.origin, v, err, tc.want)
			}
		} else if !errors.Is(err, ErrOutOfRange) {
			t.Errorf("At(%d, %v): err = %v, want ErrOutOfRange", tc.index, tc.origin, err)
		}
	}
}

// Slices are independent copies: mutating the parent must not leak
// into the slice, and vice versa.
func TestHistory_SliceCopySemantics(t *testing.T) {
	t.Parallel()

	h := New(1, 2, 3, 4, 5)
	s, err := h.Slice(1, 4, FromStart)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Len(); got != 3 {
		t.Fatalf("slice Len = %d, want 3", got)
	}
	if v, _ := s.Current(); v != 4 {
		t.Fatalf("slice cursor must be on its newest entry, got %v", v)
	}

	h.NavigateBack(3)
	h.Add(99) // truncates the parent
	if got := s.Items(); !slices.Equal(got, []int{2, 3, 4}) {
		t.Fatalf("slice mutated through parent: %v", got)
	}

	s.Add(77)
	if _, ok := h.TryNavigateTo(77); ok {
		t.Fatal("parent mutated through slice")
	}

	if _, err := h.Slice(0, 100, FromStart); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("out-of-range Slice: err = %v", err)
	}
}

func TestHistory_SliceFromCursor(t *testing.T) {
	t.Parallel()

	h := New(1, 2, 3, 4, 5)
	h.NavigateBack(2) // cursor on 3

	s, err := h.Slice(-1, 1, FromCursor) // entries 2, 3
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Items(); !slices.Equal(got, []int{2, 3}) {
		t.Fatalf("Slice(-1, 1, FromCursor) = %v, want [2 3]", got)
	}
}

// Enumeration exposes exactly the prefix [0..cursor]; future entries
// stay invisible until navigated to.
func TestHistory_PrefixEnumeration(t *testing.T) {
	t.Parallel()

	h := New(1, 2, 3, 4, 5)
	h.NavigateBack(2)

	if got := h.Items(); !slices.Equal(got, []int{1, 2, 3}) {
		t.Fatalf("Items = %v, want [1 2 3]", got)
	}
	if got := h.Future(); !slices.Equal(got, []int{4, 5}) {
		t.Fatalf("Future = %v, want [4 5]", got)
	}
	if got := len(h.Items()); got != h.Index()+1 {
		t.Fatalf("Items length = %d, want Index+1 = %d", got, h.Index()+1)
	}

	var seen []int
	for i, v := range h.All() {
		if v != i+1 {
			t.Fatalf("All yielded (%d, %v)", i, v)
		}
		seen = append(seen, v)
	}
	if !slices.Equal(seen, []int{1, 2, 3}) {
		t.Fatalf("All = %v, want [1 2 3]", seen)
	}

	// Early break must not panic or overrun.
	for _, v := range h.All() {
		_ = v
		break
	}
}

// NewFunc lets non-comparable types (or loose matching) drive the
// search operations.
func TestHistory_CustomEquality(t *testing.T) {
	t.Parallel()

	type page struct{ url string }
	h := NewFunc(func(a, b page) bool { return a.url == b.url })
	h.Add(page{"one"})
	h.Add(page{"two"})

	if idx, ok := h.TryNavigateTo(page{"one"}); !ok || idx != 0 {
		t.Fatalf("TryNavigateTo = (%d, %v), want (0, true)", idx, ok)
	}
}
