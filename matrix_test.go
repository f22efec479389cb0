package ecoweb

import (
	"errors"
	"testing"
)

func TestNewBinaryMatrix_Valid(t *testing.T) {
	m, err := NewBinaryMatrix([][]int{
		{1, 0, 1},
		{0, 1, 0},
	})
	if err != nil {
		t.Fatalf("NewBinaryMatrix failed: %v", err)
	}

	if m.N() != 2 || m.S() != 3 {
		t.Errorf("dimensions: got N=%d, S=%d, want N=2, S=3", m.N(), m.S())
	}
	if m.Links() != 3 {
		t.Errorf("Links: got %d, want 3", m.Links())
	}
	if got := m.Connectance(); got != 0.5 {
		t.Errorf("Connectance: got %v, want 0.5", got)
	}

	sums := m.RowSums()
	if sums[0] != 2 || sums[1] != 1 {
		t.Errorf("RowSums: got %v, want [2 1]", sums)
	}
}

func TestNewBinaryMatrix_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		entries [][]int
	}{
		{"no rows", [][]int{}},
		{"no columns", [][]int{{}}},
		{"ragged", [][]int{{1, 0}, {1}}},
		{"non-binary", [][]int{{1, 2}, {0, 1}}},
		{"negative", [][]int{{1, -1}, {0, 1}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewBinaryMatrix(tc.entries)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("got %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestNewBinaryMatrix_CopiesInput(t *testing.T) {
	entries := [][]int{{1, 0}, {0, 1}}
	m, err := NewBinaryMatrix(entries)
	if err != nil {
		t.Fatalf("NewBinaryMatrix failed: %v", err)
	}

	entries[0][0] = 0
	if m.At(0, 0) != 1 {
		t.Error("matrix shares storage with the caller's slice")
	}
}
