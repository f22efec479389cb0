package ecoweb

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMatrix_Thresholds(t *testing.T) {
	in := "0 2.5 1\n0.3 0 0\n"

	m, err := ParseMatrix(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, 2, m.N())
	assert.Equal(t, 3, m.S())
	assert.Equal(t, 0, m.At(0, 0))
	assert.Equal(t, 1, m.At(0, 1), "2.5 thresholds to 1")
	assert.Equal(t, 1, m.At(0, 2))
	assert.Equal(t, 1, m.At(1, 0), "0.3 thresholds to 1")
	assert.Equal(t, 0, m.At(1, 1))
}

func TestParseMatrix_SkipsBlankLines(t *testing.T) {
	m, err := ParseMatrix(strings.NewReader("1 0\n\n0 1\n\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, m.N())
}

func TestParseMatrix_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty":       "",
		"ragged":      "1 0\n1\n",
		"non numeric": "1 x\n0 1\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseMatrix(strings.NewReader(in))
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestWebTypeFromName(t *testing.T) {
	assert.Equal(t, WebTypePL, WebTypeFromName("matrix_PL_012.txt"))
	assert.Equal(t, WebTypeSD, WebTypeFromName("matrix_SD_003.txt"))
	assert.Equal(t, WebTypeUnknown, WebTypeFromName("matrix_XX_001.txt"))
	assert.Equal(t, WebTypeUnknown, WebTypeFromName("short.txt"))
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "matrix_PL_002.txt"), []byte("1 0\n0 1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "matrix_SD_001.txt"), []byte("1 1\n1 0\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "matrix_HP_003.txt"), []byte("not a matrix"), 0o644))

	networks, err := LoadDirectory(dir)
	require.NoError(t, err)
	require.Len(t, networks, 3)

	assert.Equal(t, "matrix_HP_003", networks[0].ID)
	assert.Equal(t, WebTypeHP, networks[0].Type)
	assert.Nil(t, networks[0].Matrix, "unparseable file surfaces as a nil matrix")

	assert.Equal(t, "matrix_PL_002", networks[1].ID)
	assert.Equal(t, WebTypePL, networks[1].Type)
	require.NotNil(t, networks[1].Matrix)

	assert.Equal(t, "matrix_SD_001", networks[2].ID)
	assert.Equal(t, WebTypeSD, networks[2].Type)
	require.NotNil(t, networks[2].Matrix)
	assert.Equal(t, 3, networks[2].Matrix.Links())
}

func TestLoadDirectory_Empty(t *testing.T) {
	_, err := LoadDirectory(t.TempDir())
	assert.ErrorIs(t, err, ErrInvalidInput)
}
