package ecoweb

import (
	"context"
	"math"
	"testing"
)

// AssertUnitInterval verifies every robustness sample lies in [0,1].
//
// This is the basic sanity property of the extinction simulation: a trial
// value is a removed-column fraction and can never leave the unit interval.
func AssertUnitInterval(t *testing.T, samples []float64) {
	t.Helper()

	for i, v := range samples {
		if v < 0 || v > 1 {
			t.Errorf("trial %d: robustness %v outside [0,1]", i, v)
		}
	}
}

// AssertReproducible verifies that two simulation runs with the same seed
// produce identical trial sequences. cfg.Seed must be nonzero.
func AssertReproducible(t *testing.T, m *BinaryMatrix, cfg SimulatorConfig) {
	t.Helper()

	if cfg.Seed == 0 {
		t.Fatalf("AssertReproducible requires a fixed nonzero seed")
	}

	first, err := SampleRobustness(context.Background(), m, cfg)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second, err := SampleRobustness(context.Background(), m, cfg)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("trial %d: %v != %v (seed %d not reproducible)",
				i, first[i], second[i], cfg.Seed)
		}
	}
}

// AssertMeanConverges verifies the sample mean of a fixed-seed run lies
// within tolerance of a reference estimate. Used to pin the convergence of
// the simulation against known matrices.
func AssertMeanConverges(t *testing.T, m *BinaryMatrix, cfg SimulatorConfig, want, tolerance float64) {
	t.Helper()

	samples, err := SampleRobustness(context.Background(), m, cfg)
	if err != nil {
		t.Fatalf("simulation failed: %v", err)
	}

	summary := Summarize(samples, nil)
	if math.Abs(summary.Mean-want) > tolerance {
		t.Errorf("mean robustness %.4f not within %.4f of %.4f (%d trials)",
			summary.Mean, tolerance, want, cfg.Trials)
	} else {
		t.Logf("mean robustness %.4f (want %.4f ± %.4f, %d trials)",
			summary.Mean, want, tolerance, cfg.Trials)
	}
}
