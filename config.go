package ecoweb

import (
	"fmt"
	"log/slog"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// Config is the application configuration, loaded from YAML with
// environment variable expansion.
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Simulation SimulationConfig `yaml:"simulation"`
	Quantiles  []float64        `yaml:"quantiles"`
	Cache      CacheConfig      `yaml:"cache"`
	Output     OutputConfig     `yaml:"output"`
	LogLevel   string           `yaml:"log_level"`
}

// InputConfig names the directory of network matrix files.
type InputConfig struct {
	Dir string `yaml:"dir"`
}

// SimulationConfig controls the robustness simulation stage.
type SimulationConfig struct {
	Trials  int   `yaml:"trials"`
	Workers int   `yaml:"workers"`
	Seed    int64 `yaml:"seed"`
	Run     bool  `yaml:"run"`
}

// CacheConfig names the sample cache database file. An empty path disables
// caching (simulation results are kept in memory only).
type CacheConfig struct {
	Path string `yaml:"path"`
}

// OutputConfig names the CSV file for the finalized catalog. An empty path
// skips the export.
type OutputConfig struct {
	CSV string `yaml:"csv"`
}

// DefaultConfig returns sensible defaults: 1000 trials, quantiles
// 0.25/0.5/0.75, simulation enabled, info logging.
func DefaultConfig() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Trials:  1000,
			Workers: 0,
			Seed:    0,
			Run:     true,
		},
		Quantiles: []float64{0.25, 0.5, 0.75},
		LogLevel:  "info",
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Quantiles, validation.Required,
			validation.Each(validation.Min(0.0).Exclusive(), validation.Max(1.0).Exclusive())),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
	); err != nil {
		return err
	}
	if err := c.Input.Validate(); err != nil {
		return err
	}
	if err := c.Simulation.Validate(); err != nil {
		return err
	}
	if !c.Simulation.Run && c.Cache.Path == "" {
		return fmt.Errorf("simulation.run is false but cache.path is empty")
	}
	return nil
}

// Validate validates the input configuration.
func (c *InputConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required),
	)
}

// Validate validates the simulation configuration.
func (c *SimulationConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Trials, validation.Required, validation.Min(1)),
		validation.Field(&c.Workers, validation.Min(0)),
	)
}

// Level maps the configured log level name onto a slog.Level.
func (c *Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SimulatorConfig converts the simulation section into the library's
// simulator configuration.
func (c *Config) SimulatorConfig() SimulatorConfig {
	return SimulatorConfig{
		Trials:  c.Simulation.Trials,
		Workers: c.Simulation.Workers,
		Seed:    c.Simulation.Seed,
	}
}

// LoadConfig loads configuration from a YAML file, expanding $VAR and
// ${VAR} references from the environment before parsing, and validates it.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	cfg := DefaultConfig()
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}
