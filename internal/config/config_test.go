package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"practicestudio/internal/layout"
	"practicestudio/internal/module"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.CellWidthPx)
	assert.Equal(t, 4, cfg.RowHeight)
	assert.Equal(t, "counter", cfg.IDStrategy)
	assert.Len(t, cfg.Breakpoints, 5)
	assert.Equal(t, layout.DefaultStarter(), cfg.Starter)
	assert.Equal(t, "lg", cfg.GridBreakpoints().Primary().Name)
}

func TestLoad_FileReplacesBreakpointsAndStarter(t *testing.T) {
	path := writeConfig(t, `
breakpoints:
  wide: {min_width_px: 1000, columns: 6}
  narrow: {min_width_px: 0, columns: 2}
row_height: 5
id_strategy: uuid
confirm_remove: true
starter:
  - {id: t1, kind: timer, x: 0, y: 0, w: 3, h: 2}
logging:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Len(t, cfg.Breakpoints, 2, "file breakpoints replace the defaults")
	assert.Equal(t, 6, cfg.GridBreakpoints().Primary().Columns)
	assert.Equal(t, 5, cfg.RowHeight)
	assert.Equal(t, 8, cfg.CellWidthPx, "unset fields keep defaults")
	assert.True(t, cfg.ConfirmRemove)
	assert.Equal(t, "debug", cfg.Logging.Level)
	require.Len(t, cfg.Starter, 1)
	assert.Equal(t, layout.Instance{
		ID: "t1", Kind: module.Timer, Geometry: layout.Geometry{X: 0, Y: 0, W: 3, H: 2},
	}, cfg.Starter[0])

	store, err := cfg.NewStore()
	require.NoError(t, err)
	assert.Equal(t, 6, store.Columns())
	id, err := store.Add(module.Tuner)
	require.NoError(t, err)
	assert.Contains(t, id, "tuner-")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(StatusAddrEnv, "127.0.0.1:9999")
	t.Setenv(LogLevelEnv, "warn")
	t.Setenv(CellWidthEnv, "10")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", cfg.StatusAddr)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 10, cfg.CellWidthPx)

	t.Setenv(CellWidthEnv, "garbage")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.CellWidthPx)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "bad yaml", body: "breakpoints: [oops"},
		{name: "zero columns", body: "breakpoints:\n  lg: {min_width_px: 0, columns: 0}\n"},
		{name: "bad id strategy", body: "id_strategy: clock\n"},
		{name: "negative row height", body: "row_height: -2\n"},
		{name: "unknown starter kind", body: "starter:\n  - {id: b1, kind: banjo, x: 0, y: 0, w: 2, h: 3}\n"},
		{name: "duplicate starter id", body: "starter:\n  - {id: a, kind: timer, x: 0, y: 0, w: 2, h: 3}\n  - {id: a, kind: tuner, x: 2, y: 0, w: 2, h: 3}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestDefaultPath_EnvOverride(t *testing.T) {
	t.Setenv(ConfigPathEnv, "/tmp/studio.yaml")
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/studio.yaml", p)
}

func TestSave_RoundTripsThroughLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.RowHeight = 6
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6, loaded.RowHeight)
	assert.Equal(t, cfg.Starter, loaded.Starter)
}
