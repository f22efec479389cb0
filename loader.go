package ecoweb

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// webTypes is the fixed enumeration of recognized interaction types.
var webTypes = map[string]WebType{
	"AF": WebTypeAF,
	"HP": WebTypeHP,
	"PA": WebTypePA,
	"PH": WebTypePH,
	"PL": WebTypePL,
	"SD": WebTypeSD,
}

// WebTypeFromName derives the interaction type from a source filename.
// The tag occupies characters 8-9 of the name; anything shorter or outside
// the enumeration maps to WebTypeUnknown.
func WebTypeFromName(name string) WebType {
	if len(name) < 9 {
		return WebTypeUnknown
	}
	if t, ok := webTypes[name[7:9]]; ok {
		return t
	}
	return WebTypeUnknown
}

// ParseMatrix reads a rectangular whitespace-separated numeric matrix and
// thresholds it to binary: any entry greater than 0 becomes 1, everything
// else 0. Blank lines are skipped. Ragged or empty input returns
// ErrInvalidInput.
func ParseMatrix(r io.Reader) (*BinaryMatrix, error) {
	var entries [][]int

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		row := make([]int, len(fields))
		for j, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("entry %q is not numeric: %w", field, ErrInvalidInput)
			}
			if v > 0 {
				row[j] = 1
			}
		}
		entries = append(entries, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading matrix: %w", err)
	}

	return NewBinaryMatrix(entries)
}

// LoadMatrixFile loads and thresholds one matrix file.
func LoadMatrixFile(path string) (*BinaryMatrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening matrix file: %w", err)
	}
	defer f.Close()

	m, err := ParseMatrix(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return m, nil
}

// LoadDirectory loads every regular file in dir as a network matrix.
// The network identifier is the filename without extension; the web type is
// derived from the filename. Files that fail to parse are returned as
// networks with a nil matrix so the catalog can report them as failed
// instead of aborting the whole load. Results are sorted by identifier.
func LoadDirectory(dir string) ([]Network, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading network directory: %w", err)
	}

	var networks []Network
	for _, e := range dirEntries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		id := strings.TrimSuffix(name, filepath.Ext(name))

		m, err := LoadMatrixFile(filepath.Join(dir, name))
		if err != nil {
			networks = append(networks, Network{ID: id, Type: WebTypeFromName(name)})
			continue
		}
		networks = append(networks, Network{ID: id, Type: WebTypeFromName(name), Matrix: m})
	}
	if len(networks) == 0 {
		return nil, fmt.Errorf("no network files in %s: %w", dir, ErrInvalidInput)
	}

	sort.Slice(networks, func(i, j int) bool { return networks[i].ID < networks[j].ID })
	return networks, nil
}
