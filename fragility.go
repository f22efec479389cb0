package ecoweb

import (
	"fmt"
	"math"
)

// Fragility computes the analytical fragility estimate f for a matrix at
// survival quantile c.
//
// Under a binomial-link null model with connectance p = Links/(S*N) and
// q = 1-p, the probability that a randomly connected trait still carries at
// least one link when a fraction f of the species columns remains is
// (1 - q^(S*f)) / (1 - q^S). Requiring all N traits to survive with joint
// probability 1-c and solving for f gives the closed form
//
//	f = log( 1 - (1 - q^S) * (1-c)^(1/N) ) / ( S * log(q) )
//
// f is the expected fraction of species still present at the point where the
// probability that some trait has lost every link reaches c; the idealized
// simulated robustness is therefore R ≈ 1 - f, and f decreases as c grows.
//
// Preconditions: c strictly in (0,1) (ErrInvalidInput) and p strictly in
// (0,1) (ErrDomain). Both logs are then finite and negative, so f is a
// positive finite value.
func Fragility(m *BinaryMatrix, c float64) (float64, error) {
	if c <= 0 || c >= 1 {
		return 0, fmt.Errorf("quantile c = %v outside (0,1): %w", c, ErrInvalidInput)
	}

	p := m.Connectance()
	if p <= 0 || p >= 1 {
		return 0, fmt.Errorf("degenerate connectance p = %v: %w", p, ErrDomain)
	}

	s := float64(m.S())
	n := float64(m.N())
	q := 1 - p

	arg := 1 - (1-math.Pow(q, s))*math.Pow(1-c, 1/n)
	if arg <= 0 || arg >= 1 {
		return 0, fmt.Errorf("fragility argument %v outside (0,1) for p = %v, c = %v: %w",
			arg, p, c, ErrDomain)
	}

	return math.Log(arg) / (s * math.Log(q)), nil
}

// CorrectedFragility adjusts fragility f by the fitted dispersion slope
// lambda from a CorrectionFit:
//
//	f* = f * (1 + (1-f) * (-lambda))
//
// The curvature term (1-f) shrinks the adjustment toward the endpoints of
// the unit interval, mirroring the normalization used when fitting lambda.
func CorrectedFragility(f, lambda float64) float64 {
	return f * (1 + (1-f)*(-lambda))
}
