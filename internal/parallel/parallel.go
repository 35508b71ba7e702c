// Package parallel provides worker-pool helpers for looping over batched
// matrix kernels.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior. The zero value runs
// everything sequentially.
type Config struct {
	Enabled    bool // Whether parallel execution is enabled.
	NumWorkers int  // Number of worker goroutines to use.
	MinBatch   int  // Minimum batch elements before spawning workers.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:    n > 1,
		NumWorkers: n,
		MinBatch:   4, // A factorization per element is already substantial work.
	}
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || n < cfg.MinBatch {
		// Sequential fallback.
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, 1)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// ForErr executes f(i) for i in [0, n), stopping early on a sequential run
// when f fails. On a parallel run every chunk completes; the lowest-index
// error wins. f must only write to data owned by index i.
func ForErr(n int, f func(i int) error, cfg Config) error {
	if !cfg.Enabled || n < cfg.MinBatch {
		for i := 0; i < n; i++ {
			if err := f(i); err != nil {
				return err
			}
		}
		return nil
	}

	var (
		mu       sync.Mutex
		firstIdx = n
		firstErr error
	)
	For(n, func(i int) {
		if err := f(i); err != nil {
			mu.Lock()
			if i < firstIdx {
				firstIdx, firstErr = i, err
			}
			mu.Unlock()
		}
	}, cfg)
	return firstErr
}
