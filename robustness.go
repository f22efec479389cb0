package ecoweb

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// SimulatorConfig controls the random-extinction simulation.
type SimulatorConfig struct {
	Trials  int   // Independent permutation trials per network
	Workers int   // Concurrent workers (0 = GOMAXPROCS)
	Seed    int64 // Base RNG seed (0 = time-derived, non-reproducible)
}

// DefaultSimulatorConfig returns sensible defaults.
func DefaultSimulatorConfig() SimulatorConfig {
	return SimulatorConfig{
		Trials:  1000,
		Workers: 0,
		Seed:    0,
	}
}

// SampleRobustness runs cfg.Trials independent extinction trials on m and
// returns one robustness value in [0,1] per trial.
//
// Each trial draws a uniform random permutation of the S species columns and
// removes them left to right, stopping as soon as some trait row has lost
// every link (or all S columns are gone). The trial value is the fraction of
// columns removed at the stop.
//
// The full vector is returned, not just the mean: downstream consumers take
// quantiles of the distribution.
//
// Trial i uses an RNG seeded with Seed+i, so for a fixed nonzero Seed the
// returned sequence is identical regardless of worker count or scheduling.
// Trials share only the immutable source matrix and write to disjoint slots,
// so no locking is needed.
func SampleRobustness(ctx context.Context, m *BinaryMatrix, cfg SimulatorConfig) ([]float64, error) {
	if m == nil || m.S() < 1 || m.N() < 1 {
		return nil, fmt.Errorf("simulation requires a non-empty matrix: %w", ErrInvalidInput)
	}
	if cfg.Trials < 1 {
		return nil, fmt.Errorf("trials = %d, need at least 1: %w", cfg.Trials, ErrInvalidInput)
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > cfg.Trials {
		workers = cfg.Trials
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	samples := make([]float64, cfg.Trials)

	var (
		wg       sync.WaitGroup
		canceled atomic.Bool
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			for trial := offset; trial < cfg.Trials; trial += workers {
				if canceled.Load() {
					return
				}
				if ctx.Err() != nil {
					canceled.Store(true)
					return
				}
				rng := rand.New(rand.NewSource(seed + int64(trial)))
				samples[trial] = singleTrial(m, rng)
			}
		}(w)
	}
	wg.Wait()

	if canceled.Load() {
		return nil, ctx.Err()
	}
	return samples, nil
}

// singleTrial removes columns in a random order until some row sum reaches 0
// or every column is gone, and returns removed/S.
//
// The source matrix is never copied or mutated: the permutation is a prefix
// walk over column indices, and row sums are decremented incrementally by
// the removed column's contribution.
//
// A row that is already 0 before any removal stops the trial immediately
// with robustness 0.
func singleTrial(m *BinaryMatrix, rng *rand.Rand) float64 {
	sums := m.RowSums()
	for _, r := range sums {
		if r == 0 {
			return 0
		}
	}

	s := m.S()
	removed := 0
	for _, j := range rng.Perm(s) {
		removed++
		lost := false
		for i := 0; i < m.N(); i++ {
			if m.At(i, j) == 1 {
				sums[i]--
				if sums[i] == 0 {
					lost = true
				}
			}
		}
		if lost {
			break
		}
	}

	return float64(removed) / float64(s)
}
