package ecoweb

import "fmt"

// BinaryMatrix is a binary species-by-trait association matrix.
//
// Rows are traits (the upper level, N of them) and columns are species
// (the lower level, S of them). Entry a[i][j] = 1 means trait i is carried
// by species j. A matrix is immutable once constructed; the simulator never
// writes to it.
type BinaryMatrix struct {
	n int // rows (traits)
	s int // columns (species)
	a [][]uint8
}

// NewBinaryMatrix builds a matrix from 0/1 entries.
//
// The input must be rectangular with at least one row and one column, and
// every entry must be exactly 0 or 1. Violations return ErrInvalidInput.
// The entries are copied; the caller keeps ownership of the input slice.
func NewBinaryMatrix(entries [][]int) (*BinaryMatrix, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("matrix has no rows: %w", ErrInvalidInput)
	}
	s := len(entries[0])
	if s == 0 {
		return nil, fmt.Errorf("matrix has no columns: %w", ErrInvalidInput)
	}

	a := make([][]uint8, len(entries))
	for i, row := range entries {
		if len(row) != s {
			return nil, fmt.Errorf("ragged matrix: row %d has %d columns, want %d: %w",
				i, len(row), s, ErrInvalidInput)
		}
		a[i] = make([]uint8, s)
		for j, v := range row {
			if v != 0 && v != 1 {
				return nil, fmt.Errorf("entry (%d,%d) = %d is not binary: %w",
					i, j, v, ErrInvalidInput)
			}
			a[i][j] = uint8(v)
		}
	}

	return &BinaryMatrix{n: len(entries), s: s, a: a}, nil
}

// S returns the number of columns (species, lower level).
func (m *BinaryMatrix) S() int { return m.s }

// N returns the number of rows (traits, upper level).
func (m *BinaryMatrix) N() int { return m.n }

// At returns entry (i, j) as 0 or 1.
func (m *BinaryMatrix) At(i, j int) int { return int(m.a[i][j]) }

// Links returns the total number of 1-entries (realized links).
func (m *BinaryMatrix) Links() int {
	sum := 0
	for _, row := range m.a {
		for _, v := range row {
			sum += int(v)
		}
	}
	return sum
}

// RowSums returns a fresh slice of per-row link counts.
func (m *BinaryMatrix) RowSums() []int {
	sums := make([]int, m.n)
	for i, row := range m.a {
		for _, v := range row {
			sums[i] += int(v)
		}
	}
	return sums
}

// Connectance returns the fraction of realized links, Links/(S*N).
func (m *BinaryMatrix) Connectance() float64 {
	return float64(m.Links()) / float64(m.s*m.n)
}
