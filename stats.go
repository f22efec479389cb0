package ecoweb

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// SampleSummary is a statistical snapshot of a robustness sample vector.
type SampleSummary struct {
	Trials    int
	Mean      float64
	Min       float64
	Max       float64
	Quantiles map[float64]float64 // requested level -> empirical quantile
}

// Quantile returns the empirical c-quantile of samples (0 < c < 1).
// The input is left untouched; a sorted copy is made internally.
func Quantile(samples []float64, c float64) float64 {
	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)
	return stat.Quantile(c, stat.Empirical, sorted, nil)
}

// Summarize computes mean, extrema and the requested quantiles of a sample
// vector in one pass over a single sorted copy.
func Summarize(samples []float64, levels []float64) SampleSummary {
	if len(samples) == 0 {
		return SampleSummary{Quantiles: map[float64]float64{}}
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	quantiles := make(map[float64]float64, len(levels))
	for _, c := range levels {
		quantiles[c] = stat.Quantile(c, stat.Empirical, sorted, nil)
	}

	return SampleSummary{
		Trials:    len(samples),
		Mean:      stat.Mean(sorted, nil),
		Min:       sorted[0],
		Max:       sorted[len(sorted)-1],
		Quantiles: quantiles,
	}
}
