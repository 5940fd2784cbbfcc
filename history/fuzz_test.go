package history

import "testing"

// Fuzz an arbitrary operation sequence and check the structural
// invariants after every step: the cursor stays inside the buffer,
// is -1 exactly when empty, and enumeration yields exactly the
// prefix up to the cursor.
func FuzzHistory_Ops(f *testing.F) {
	f.Add([]byte{0, 0, 0, 1, 2, 0, 3})
	f.Add([]byte{0, 1, 0, 1, 0, 1})
	f.Add([]byte{4, 5, 6, 7})

	f.Fuzz(func(t *testing.T, ops []byte) {
		// Cap the sequence to keep fuzzing fast.
		if len(ops) > 256 {
			ops = ops[:256]
		}

		h := New[int]()
		for i, op := range ops {
			switch op % 8 {
			case 0:
				h.Add(i)
			case 1:
				h.NavigateBack(int(op) / 8)
			case 2:
				h.NavigateForward(int(op) / 8)
			case 3:
				h.NavigateToNewest()
			case 4:
				h.NavigateToOldest()
			case 5:
				h.NavigateOrAdd(i % 16)
			case 6:
				_, _ = h.TryNavigateTo(i % 16)
			case 7:
				if int(op) == 63 { // rare: full reset
					h.Clear()
				}
			}

			idx, n := h.Index(), h.Len()
			if idx >= n {
				t.Fatalf("op %d: cursor %d beyond len %d", i, idx, n)
			}
			if (idx == -1) != (n == 0) {
				t.Fatalf("op %d: cursor/empty mismatch: Index=%d Len=%d", i, idx, n)
			}
			if got := len(h.Items()); got != idx+1 {
				t.Fatalf("op %d: Items length %d, want %d", i, got, idx+1)
			}
			if got := len(h.Future()); got != n-idx-1 {
				t.Fatalf("op %d: Future length %d, want %d", i, got, n-idx-1)
			}
		}
	})
}
