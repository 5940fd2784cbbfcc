package history

import "testing"

// Append-heavy workload: the common case for a history buffer.
func BenchmarkHistory_Add(b *testing.B) {
	h := New[int]()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Add(i)
	}
}

// Back/forward ping-pong over a warm buffer; cursor-only mutation,
// so this measures pure lock + bounds-check overhead.
func BenchmarkHistory_Navigate(b *testing.B) {
	h := New[int]()
	for i := 0; i < 1024; i++ {
		h.Add(i)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if i%2 == 0 {
			h.NavigateBack(3)
		} else {
			h.NavigateForward(3)
		}
	}
}

func BenchmarkHistory_Items(b *testing.B) {
	h := New[int]()
	for i := 0; i < 256; i++ {
		h.Add(i)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = h.Items()
	}
}
