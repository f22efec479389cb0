package ecoweb

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// RowStats summarizes the row (trait) degree distribution of a matrix.
// Variance is the population variance (divided by N, not N-1), including
// for N = 1 where it degenerates to 0.
type RowStats struct {
	Min      float64
	Mean     float64
	Variance float64
}

// RowSumStats computes min, mean and population variance of the row sums.
func RowSumStats(m *BinaryMatrix) RowStats {
	sums := m.RowSums()
	xs := make([]float64, len(sums))
	min := float64(sums[0])
	for i, r := range sums {
		xs[i] = float64(r)
		if xs[i] < min {
			min = xs[i]
		}
	}

	mean, variance := stat.PopMeanVariance(xs, nil)
	return RowStats{Min: min, Mean: mean, Variance: variance}
}

// Dispersion computes the dispersion index
//
//	d = (var_r / mean_r) * (1 / (1-p))
//
// where var_r and mean_r are the population variance and mean of the row
// sums and p is connectance. Under the binomial null model the row sums are
// Bin(S, p), so var_r = mean_r*(1-p) and d = 1; d > 1 signals overdispersed
// trait degrees and d < 1 underdispersed ones.
//
// d is undefined (ErrDomain) when mean_r = 0 (an all-zero matrix) or when
// p = 1 (the null variance vanishes). A defined d of exactly 0 indicates
// degenerate, constant row sums; the catalog excludes such networks rather
// than treating them as an error.
func Dispersion(m *BinaryMatrix) (float64, error) {
	rs := RowSumStats(m)
	if rs.Mean == 0 {
		return 0, fmt.Errorf("zero mean row sum: %w", ErrDomain)
	}

	p := m.Connectance()
	if p >= 1 {
		return 0, fmt.Errorf("saturated connectance p = %v: %w", p, ErrDomain)
	}

	return rs.Variance / rs.Mean / (1 - p), nil
}
