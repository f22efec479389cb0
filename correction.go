package ecoweb

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// CorrectionFit holds the fitted dispersion-correction slope for one
// quantile level, estimated once over the whole catalog and shared by every
// network.
type CorrectionFit struct {
	Lambda   float64 // Slope of normalized residual on log10(dispersion)
	RSquared float64 // Through-origin R² of the fit
	Networks int     // Number of networks that entered the fit
}

// FitCorrection fits the single-parameter through-origin model
//
//	(R_c - (1-f_c)) / (f_c*(1-f_c)) ≈ lambda * log10(d)
//
// by ordinary least squares across networks, where f_c is analytical
// fragility, R_c the simulated robustness quantile and d the dispersion
// index of each network.
//
// The three slices are parallel, one entry per usable network. Callers must
// pre-filter: every f must lie strictly in (0,1) (the normalization divides
// by f*(1-f)) and every d must be positive (log10), otherwise
// ErrInvalidInput. Fewer than 2 networks returns ErrInsufficientData.
func FitCorrection(fragility, robustness, dispersion []float64) (CorrectionFit, error) {
	n := len(fragility)
	if len(robustness) != n || len(dispersion) != n {
		return CorrectionFit{}, fmt.Errorf("mismatched lengths %d/%d/%d: %w",
			n, len(robustness), len(dispersion), ErrInvalidInput)
	}
	if n < 2 {
		return CorrectionFit{}, fmt.Errorf("correction fit needs at least 2 networks, got %d: %w",
			n, ErrInsufficientData)
	}

	x := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		f, r, d := fragility[i], robustness[i], dispersion[i]
		if f <= 0 || f >= 1 {
			return CorrectionFit{}, fmt.Errorf("network %d: fragility %v outside (0,1): %w",
				i, f, ErrInvalidInput)
		}
		if d <= 0 {
			return CorrectionFit{}, fmt.Errorf("network %d: non-positive dispersion %v: %w",
				i, d, ErrInvalidInput)
		}
		x[i] = math.Log10(d)
		y[i] = (r - (1 - f)) / (f * (1 - f))
	}

	_, lambda := stat.LinearRegression(x, y, nil, true)
	return CorrectionFit{
		Lambda:   lambda,
		RSquared: stat.RNoughtSquared(x, y, nil, lambda),
		Networks: n,
	}, nil
}

// CorrectionModel collects the fits for every configured quantile level.
type CorrectionModel struct {
	Fits map[float64]CorrectionFit // quantile level -> fit
}

// Lambda returns the fitted slope for level c, or 0 if c was not fitted.
func (m CorrectionModel) Lambda(c float64) float64 {
	return m.Fits[c].Lambda
}
