package writeback

import (
	"math/rand"
	"runtime"
	"strconv"
	"sync"
	"testing"
	"time"
)

// A mixed workload of concurrent Set/Get/Remove/snapshot operations
// racing against both drain loops. Should pass under `-race` without
// detector reports.
func TestRace_Mixed(t *testing.T) {
	m := New[string, []byte](Options[string, []byte]{
		Shards:        32,
		AddBackoff:    Backoff{Min: time.Millisecond, Max: 10 * time.Millisecond, Factor: 2},
		RemoveBackoff: Backoff{Min: time.Millisecond, Max: 10 * time.Millisecond, Factor: 2},
	})
	t.Cleanup(func() { _ = m.Close() })

	workers := 4 * runtime.GOMAXPROCS(0)
	keyspace := 10_000
	deadline := time.Now().Add(2 * time.Second)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(id)*9973))
			for time.Now().Before(deadline) {
				k := "k:" + strconv.Itoa(r.Intn(keyspace))
				switch r.Intn(100) {
				case 0: // ~1% — Clear
					m.Clear()
				case 1, 2, 3, 4, 5: // ~5% — Remove
					m.Remove(k)
				case 6, 7: // ~2% — snapshots
					_ = m.Snapshot()
					_ = m.Keys()
				case 8: // ~1% — counters
					_ = m.Len()
					_, _ = m.Pending()
					_ = m.Stats()
				case 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19: // ~11% — Set
					m.Set(k, []byte("x"))
				default: // ~80% — Get
					m.Get(k)
				}
			}
		}(w)
	}
	wg.Wait()
}

// Closing while writers are still enqueueing must not race or deadlock.
func TestRace_CloseUnderLoad(t *testing.T) {
	m := New[int, int](Options[int, int]{
		AddBackoff:    Backoff{Min: time.Millisecond, Max: 10 * time.Millisecond, Factor: 2},
		RemoveBackoff: Backoff{Min: time.Millisecond, Max: 10 * time.Millisecond, Factor: 2},
	})

	stop := make(chan struct{})
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; ; i++ {
				select {
				case <-stop:
					return
				default:
				}
				m.Set(id*1_000_000+i%512, i)
				m.Get(i % 512)
			}
		}(w)
	}

	time.Sleep(50 * time.Millisecond)
	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	close(stop)
	wg.Wait()
}
