package ecoweb

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, `
input:
  dir: testdata/webs
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "testdata/webs", cfg.Input.Dir)
	assert.Equal(t, 1000, cfg.Simulation.Trials)
	assert.True(t, cfg.Simulation.Run)
	assert.Equal(t, []float64{0.25, 0.5, 0.75}, cfg.Quantiles)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestLoadConfig_Overrides(t *testing.T) {
	path := writeConfig(t, `
input:
  dir: /data/webs
simulation:
  trials: 500
  workers: 4
  seed: 42
  run: false
quantiles: [0.1, 0.9]
cache:
  path: /tmp/robustness.db
output:
  csv: catalog.csv
log_level: debug
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.Simulation.Trials)
	assert.Equal(t, int64(42), cfg.Simulation.Seed)
	assert.False(t, cfg.Simulation.Run)
	assert.Equal(t, []float64{0.1, 0.9}, cfg.Quantiles)
	assert.Equal(t, slog.LevelDebug, cfg.Level())

	sim := cfg.SimulatorConfig()
	assert.Equal(t, 500, sim.Trials)
	assert.Equal(t, 4, sim.Workers)
	assert.Equal(t, int64(42), sim.Seed)
}

func TestLoadConfig_EnvExpansion(t *testing.T) {
	t.Setenv("ECOWEB_TEST_DIR", "/srv/webs")
	path := writeConfig(t, `
input:
  dir: ${ECOWEB_TEST_DIR}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/webs", cfg.Input.Dir)
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"missing input dir": `
simulation:
  trials: 100
`,
		"quantile out of range": `
input:
  dir: d
quantiles: [0.5, 1.0]
`,
		"zero trials": `
input:
  dir: d
simulation:
  trials: 0
`,
		"cache required without simulation": `
input:
  dir: d
simulation:
  trials: 100
  run: false
`,
		"unknown log level": `
input:
  dir: d
log_level: loud
`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}
