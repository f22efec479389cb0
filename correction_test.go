package ecoweb

import (
	"errors"
	"math"
	"testing"
)

// TestFitCorrection_RecoversLambda builds a noise-free synthetic catalog
// from a known slope and checks the through-origin fit recovers it exactly.
func TestFitCorrection_RecoversLambda(t *testing.T) {
	const lambda = -0.35

	fs := []float64{0.2, 0.35, 0.5, 0.65, 0.8}
	ds := []float64{0.4, 0.8, 1.0, 2.5, 6.3}

	rs := make([]float64, len(fs))
	for i := range fs {
		rs[i] = (1 - fs[i]) + lambda*math.Log10(ds[i])*fs[i]*(1-fs[i])
	}

	fit, err := FitCorrection(fs, rs, ds)
	if err != nil {
		t.Fatalf("FitCorrection failed: %v", err)
	}

	if math.Abs(fit.Lambda-lambda) > 1e-12 {
		t.Errorf("lambda: got %v, want %v", fit.Lambda, lambda)
	}
	if fit.RSquared < 1-1e-9 {
		t.Errorf("R²: got %v, want 1 (noise-free fit)", fit.RSquared)
	}
	if fit.Networks != len(fs) {
		t.Errorf("Networks: got %d, want %d", fit.Networks, len(fs))
	}
}

func TestFitCorrection_InsufficientData(t *testing.T) {
	_, err := FitCorrection([]float64{0.5}, []float64{0.6}, []float64{1.2})
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("got %v, want ErrInsufficientData", err)
	}

	_, err = FitCorrection(nil, nil, nil)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("empty input: got %v, want ErrInsufficientData", err)
	}
}

func TestFitCorrection_InvalidInput(t *testing.T) {
	// Fragility on the boundary divides by f(1-f) = 0.
	_, err := FitCorrection([]float64{1, 0.5}, []float64{0.5, 0.6}, []float64{1, 1})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("f=1: got %v, want ErrInvalidInput", err)
	}

	// Non-positive dispersion has no log.
	_, err = FitCorrection([]float64{0.4, 0.5}, []float64{0.5, 0.6}, []float64{0, 1})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("d=0: got %v, want ErrInvalidInput", err)
	}

	// Parallel slices must agree in length.
	_, err = FitCorrection([]float64{0.4, 0.5}, []float64{0.5}, []float64{1, 1})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("length mismatch: got %v, want ErrInvalidInput", err)
	}
}
