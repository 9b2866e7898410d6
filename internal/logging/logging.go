// Package logging builds the zap logger. The terminal belongs to the
// dashboard, so logs go to a file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"practicestudio/internal/config"
	"practicestudio/internal/layout"
)

// DefaultFile returns the log path used when none is configured:
// $XDG_STATE_HOME/practicestudio/studio.log, else ~/.practicestudio/studio.log.
func DefaultFile() (string, error) {
	if state := os.Getenv("XDG_STATE_HOME"); state != "" {
		return filepath.Join(state, "practicestudio", "studio.log"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, config.DefaultDir, "studio.log"), nil
}

// New builds a JSON file logger at the configured level. verbose forces debug.
// Use "stderr" as the file to log to the console, for subcommands without a TUI.
func New(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(levelOrDefault(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	path := cfg.File
	if path == "" {
		if path, err = DefaultFile(); err != nil {
			return nil, err
		}
	}
	if path != "stderr" && path != "stdout" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zc.Build()
}

func levelOrDefault(level string) string {
	if level == "" {
		return "info"
	}
	return level
}

// StoreLogger logs every instance store mutation.
type StoreLogger struct {
	log *zap.Logger
}

// Ensure StoreLogger implements layout.Observer.
var _ layout.Observer = (*StoreLogger)(nil)

// NewStoreLogger returns an observer logging through log.
func NewStoreLogger(log *zap.Logger) *StoreLogger {
	return &StoreLogger{log: log.Named("layout")}
}

// InstanceAdded implements layout.Observer.
func (s *StoreLogger) InstanceAdded(inst layout.Instance) {
	s.log.Info("module added",
		zap.String("id", inst.ID),
		zap.String("kind", inst.Kind.String()),
		zap.Int("x", inst.X),
		zap.Bool("pending", inst.Pending()))
}

// InstanceRemoved implements layout.Observer.
func (s *StoreLogger) InstanceRemoved(id string) {
	s.log.Info("module removed", zap.String("id", id))
}

// LayoutReplaced implements layout.Observer.
func (s *StoreLogger) LayoutReplaced(instances []layout.Instance) {
	if ce := s.log.Check(zap.DebugLevel, "layout replaced"); ce != nil {
		ce.Write(zap.Int("count", len(instances)), zap.Any("instances", instances))
	}
}
