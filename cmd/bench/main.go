// Command bench runs a synthetic workload against the write-back map
// and exposes optional pprof/Prometheus endpoints.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	pmet "github.com/Unknown6656-Megacorp/generics/metrics/prom"
	"github.com/Unknown6656-Megacorp/generics/writeback"
)

func main() {
	// ---- Flags ----
	var (
		shards = flag.Int("shards", 0, "number of committed-state shards (0=auto)")

		addMin = flag.Duration("add_min", writeback.DefaultAddBackoff.Min, "add queue min drain interval")
		addMax = flag.Duration("add_max", writeback.DefaultAddBackoff.Max, "add queue max drain interval")
		remMin = flag.Duration("rem_min", writeback.DefaultRemoveBackoff.Min, "remove queue min drain interval")
		remMax = flag.Duration("rem_max", writeback.DefaultRemoveBackoff.Max, "remove queue max drain interval")

		workers  = flag.Int("workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
		duration = flag.Duration("duration", 10*time.Second, "benchmark duration")
		readPct  = flag.Int("reads", 80, "read percentage [0..100]")
		remPct   = flag.Int("removes", 5, "remove percentage of the write share [0..100]")

		keys    = flag.Int("keys", 1_000_000, "keyspace size")
		zipfS   = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew)")
		zipfV   = flag.Float64("zipf_v", 1.0, "Zipf v")
		seed    = flag.Int64("seed", time.Now().UnixNano(), "random seed")
		preload = flag.Int("preload", 50_000, "preload entries")

		pprofAddr   = flag.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", ":8080", "serve Prometheus metrics at addr")
	)
	flag.Parse()

	// ---- pprof server (on DefaultServeMux) ----
	if *pprofAddr != "" {
		go func() {
			log.Printf("pprof: serving at %s", *pprofAddr)
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	// ---- Prometheus metrics (on DefaultServeMux) ----
	metrics := pmet.New(nil, "writeback", "bench", nil)
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Printf("metrics: serving at %s", *metricsAddr)
		log.Println(http.ListenAndServe(*metricsAddr, nil))
	}()

	// ---- Build map ----
	m := writeback.New[string, string](writeback.Options[string, string]{
		Shards:        *shards,
		AddBackoff:    writeback.Backoff{Min: *addMin, Max: *addMax, Factor: 2},
		RemoveBackoff: writeback.Backoff{Min: *remMin, Max: *remMax, Factor: 2},
		Metrics:       metrics,
	})
	defer func() { _ = m.Close() }()

	// ---- Preload and wait for the add queue to settle ----
	for i := 0; i < *preload; i++ {
		m.Set("k:"+strconv.Itoa(i), "v"+strconv.Itoa(i))
	}
	for {
		if adds, _ := m.Pending(); adds == 0 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	log.Printf("preloaded %d entries", m.Len())

	// ---- Snapshot flags for goroutines ----
	readPctVal := *readPct
	remPctVal := *remPct
	keysMax := uint64(*keys - 1)
	seedBase := *seed
	zipfSVal := *zipfS
	zipfVVal := *zipfV
	workersN := *workers
	if workersN <= 0 {
		workersN = 1
	}

	// ---- Load generation ----
	var reads, writes, removes, hits, misses, total uint64
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(workersN)
	for w := 0; w < workersN; w++ {
		go func(id int) {
			defer wg.Done()

			// Each worker gets its own RNG + Zipf (rand.Rand is NOT goroutine-safe).
			localR := rand.New(rand.NewSource(seedBase + int64(id)*9973))
			localZipf := rand.NewZipf(localR, zipfSVal, zipfVVal, keysMax)

			keyByZipf := func() string {
				return "k:" + strconv.FormatUint(localZipf.Uint64(), 10)
			}

			for {
				select {
				case <-ctx.Done():
					return
				default:
				}

				atomic.AddUint64(&total, 1)
				if int(localR.Int31n(100)) < readPctVal {
					atomic.AddUint64(&reads, 1)
					if _, ok := m.Get(keyByZipf()); ok {
						atomic.AddUint64(&hits, 1)
					} else {
						atomic.AddUint64(&misses, 1)
					}
				} else if int(localR.Int31n(100)) < remPctVal {
					atomic.AddUint64(&removes, 1)
					m.Remove(keyByZipf())
				} else {
					atomic.AddUint64(&writes, 1)
					m.Set(keyByZipf(), "v"+strconv.Itoa(localR.Int()))
				}
			}
		}(w)
	}
	wg.Wait()
	elapsed := time.Since(start)

	// ---- Report ----
	ops := atomic.LoadUint64(&total)
	readsN := atomic.LoadUint64(&reads)
	writesN := atomic.LoadUint64(&writes)
	removesN := atomic.LoadUint64(&removes)
	hitsN := atomic.LoadUint64(&hits)
	missesN := atomic.LoadUint64(&misses)

	hitRate := 0.0
	if readsN > 0 {
		hitRate = float64(hitsN) / float64(readsN) * 100
	}

	adds, rems := m.Pending()
	st := m.Stats()

	fmt.Printf("shards=%d workers=%d keys=%d dur=%v seed=%d\n",
		*shards, workersN, *keys, elapsed, seedBase)
	fmt.Printf("ops=%d (%.0f ops/s)  reads=%d  writes=%d  removes=%d\n",
		ops, float64(ops)/elapsed.Seconds(), readsN, writesN, removesN)
	fmt.Printf("hits=%d  misses=%d  hit-rate=%.2f%%\n", hitsN, missesN, hitRate)
	fmt.Printf("drained: adds=%d removes=%d  still-pending: adds=%d removes=%d\n",
		st.DrainedAdds, st.DrainedRemoves, adds, rems)
	fmt.Printf("Len()=%d\n", m.Len())
}
