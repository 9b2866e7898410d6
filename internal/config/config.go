// Package config loads the studio configuration: a YAML file with
// environment overrides. A missing file yields the defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"practicestudio/internal/grid"
	"practicestudio/internal/layout"
)

const (
	// ConfigPathEnv overrides the config file location.
	ConfigPathEnv = "PRACTICESTUDIO_CONFIG"
	// StatusAddrEnv overrides the status server address.
	StatusAddrEnv = "PRACTICESTUDIO_STATUS_ADDR"
	// LogLevelEnv overrides the log level.
	LogLevelEnv = "PRACTICESTUDIO_LOG_LEVEL"
	// LogFileEnv overrides the log file path.
	LogFileEnv = "PRACTICESTUDIO_LOG_FILE"
	// CellWidthEnv overrides the pixel width of one terminal cell.
	CellWidthEnv = "PRACTICESTUDIO_CELL_WIDTH"

	// DefaultDir is the per-user directory, relative to the home directory.
	DefaultDir = ".practicestudio"
)

// Config holds all studio settings.
type Config struct {
	// Breakpoints by name. Geometry is stored for the widest one.
	Breakpoints map[string]grid.Spec `yaml:"breakpoints"`

	// CellWidthPx converts the terminal width to a viewport width.
	CellWidthPx int `yaml:"cell_width_px"`

	// RowHeight is the number of terminal lines in one grid row.
	RowHeight int `yaml:"row_height"`

	// IDStrategy selects the instance id generator: counter or uuid.
	IDStrategy string `yaml:"id_strategy"`

	// Starter is the layout a new workspace opens with.
	Starter []layout.Instance `yaml:"starter"`

	// ConfirmRemove asks before closing a module.
	ConfirmRemove bool `yaml:"confirm_remove"`

	// StatusAddr enables the read-only HTTP status API when set (e.g. "127.0.0.1:8080").
	StatusAddr string `yaml:"status_addr"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Breakpoints: grid.DefaultSpecs(),
		CellWidthPx: 8,
		RowHeight:   4,
		IDStrategy:  "counter",
		Starter:     layout.DefaultStarter(),
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns ~/.practicestudio/config.yaml, or the path in
// PRACTICESTUDIO_CONFIG if set.
func DefaultPath() (string, error) {
	if p := os.Getenv(ConfigPathEnv); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultDir, "config.yaml"), nil
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			var file Config
			if err := yaml.Unmarshal(data, &file); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
			cfg.merge(&file)
		}
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// merge copies every field set in f over c. Maps and lists replace the
// defaults wholesale.
func (c *Config) merge(f *Config) {
	if len(f.Breakpoints) > 0 {
		c.Breakpoints = f.Breakpoints
	}
	if f.CellWidthPx != 0 {
		c.CellWidthPx = f.CellWidthPx
	}
	if f.RowHeight != 0 {
		c.RowHeight = f.RowHeight
	}
	if f.IDStrategy != "" {
		c.IDStrategy = f.IDStrategy
	}
	if f.Starter != nil {
		c.Starter = f.Starter
	}
	if f.ConfirmRemove {
		c.ConfirmRemove = true
	}
	if f.StatusAddr != "" {
		c.StatusAddr = f.StatusAddr
	}
	if f.Logging.Level != "" {
		c.Logging.Level = f.Logging.Level
	}
	if f.Logging.File != "" {
		c.Logging.File = f.Logging.File
	}
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(StatusAddrEnv); v != "" {
		c.StatusAddr = v
	}
	if v := os.Getenv(LogLevelEnv); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(LogFileEnv); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv(CellWidthEnv); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.CellWidthPx = n
		}
	}
}

// Validate checks that the configuration can start a workspace.
func (c *Config) Validate() error {
	if _, err := grid.NewBreakpoints(c.Breakpoints); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.CellWidthPx <= 0 {
		return fmt.Errorf("config: cell_width_px must be positive, got %d", c.CellWidthPx)
	}
	if c.RowHeight <= 0 {
		return fmt.Errorf("config: row_height must be positive, got %d", c.RowHeight)
	}
	if _, err := layout.NewIDGenerator(c.IDStrategy); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := layout.NewStore(layout.WithInstances(c.Starter)); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// GridBreakpoints returns the validated breakpoints.
func (c *Config) GridBreakpoints() grid.Breakpoints {
	bps, err := grid.NewBreakpoints(c.Breakpoints)
	if err != nil {
		return grid.Default()
	}
	return bps
}

// NewStore builds the instance store described by the configuration, seeded
// with the starter layout and using the primary breakpoint's column count.
func (c *Config) NewStore(opts ...layout.Option) (*layout.Store, error) {
	ids, err := layout.NewIDGenerator(c.IDStrategy)
	if err != nil {
		return nil, err
	}
	base := []layout.Option{
		layout.WithColumns(c.GridBreakpoints().Primary().Columns),
		layout.WithIDGenerator(ids),
		layout.WithInstances(c.Starter),
	}
	return layout.NewStore(append(base, opts...)...)
}

// Save writes the configuration as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
