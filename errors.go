package ecoweb

import "errors"

// Error kinds used across the package. Callers should test with errors.Is;
// every returned error wraps exactly one of these sentinels.
var (
	// ErrDomain marks a quantity that is mathematically undefined for the
	// given matrix, e.g. connectance of 0 or 1, or a zero mean row sum.
	ErrDomain = errors.New("domain error")

	// ErrInvalidInput marks a malformed matrix or parameter: empty or
	// ragged input, non-binary entries, a quantile outside (0,1).
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientData marks a correction fit attempted with fewer
	// than two usable networks.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrCacheMismatch marks cached robustness samples that do not cover
	// the requested network set or trial count.
	ErrCacheMismatch = errors.New("cache mismatch")
)
