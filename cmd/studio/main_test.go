package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"practicestudio/internal/config"
	"practicestudio/internal/grid"
	"practicestudio/internal/module"
)

func setupCmd(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	cfg = config.Default()
	logger = zap.NewNop()
	t.Cleanup(func() {
		cfg, logger = nil, nil
		catalogJSON, layoutJSON = false, false
		layoutWidth, layoutFrom, layoutBreakpoint = 0, "", ""
		configPath, configForce = "", false
	})
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	return cmd, &out
}

func TestCatalogCmd(t *testing.T) {
	cmd, out := setupCmd(t)
	require.NoError(t, runCatalog(cmd, nil))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, len(module.Kinds())+1)
	assert.Equal(t, []string{"KIND", "ICON", "NAME"}, strings.Fields(lines[0]))
	assert.Equal(t, "metronome", strings.Fields(lines[1])[0])
}

func TestCatalogCmd_JSON(t *testing.T) {
	cmd, out := setupCmd(t)
	catalogJSON = true
	require.NoError(t, runCatalog(cmd, nil))

	var got []module.Descriptor
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, len(module.Kinds()))
	assert.Equal(t, module.Journal, got[5].Kind)
}

func TestLayoutCmd_StarterAtNarrowWidth(t *testing.T) {
	cmd, out := setupCmd(t)
	layoutWidth = 800
	require.NoError(t, runLayout(cmd, nil))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "breakpoint sm: 2 columns (>= 768px), 6 rows", lines[0])
	assert.Equal(t, []string{"metronome1", "metronome", "0", "0", "2", "3"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"scales1", "scales", "0", "3", "2", "3"}, strings.Fields(lines[3]))
}

func TestLayoutCmd_FromFileJSON(t *testing.T) {
	cmd, out := setupCmd(t)
	path := filepath.Join(t.TempDir(), "saved.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id": "t1", "kind": "timer", "x": 2, "y": 0, "w": 2, "h": 3},
		{"id": "j1", "kind": "journal", "x": 0, "y": -1, "w": 2, "h": 3}
	]`), 0o644))
	layoutFrom = path
	layoutWidth = 480
	layoutJSON = true
	require.NoError(t, runLayout(cmd, nil))

	var frame grid.Frame
	require.NoError(t, json.Unmarshal(out.Bytes(), &frame))
	assert.Equal(t, "xs", frame.Breakpoint.Name)
	require.Len(t, frame.Placements, 2)
	assert.Equal(t, 0, frame.Placements[0].X)
	assert.Equal(t, 1, frame.Placements[0].W)
	assert.Equal(t, 3, frame.Placements[1].Y, "pending module goes below")
}

func TestLayoutCmd_RejectsBadInput(t *testing.T) {
	cmd, _ := setupCmd(t)
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": "b1", "kind": "banjo", "x": 0, "y": 0, "w": 2, "h": 3}]`), 0o644))
	layoutFrom = path
	assert.Error(t, runLayout(cmd, nil))

	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))
	assert.Error(t, runLayout(cmd, nil), "empty layout file")

	layoutFrom = ""
	layoutWidth = -1
	assert.Error(t, runLayout(cmd, nil))
}

func TestConfigInitCmd(t *testing.T) {
	cmd, out := setupCmd(t)
	configPath = filepath.Join(t.TempDir(), "studio", "config.yaml")

	require.NoError(t, runConfigInit(cmd, nil))
	assert.Contains(t, out.String(), configPath)

	loaded, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Starter, loaded.Starter)

	assert.Error(t, runConfigInit(cmd, nil), "refuses to overwrite")
	configForce = true
	assert.NoError(t, runConfigInit(cmd, nil))
}

func TestSetup_ConfigCmdIgnoresBrokenFile(t *testing.T) {
	_, out := setupCmd(t)
	configPath = filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("row_height: [oops\n"), 0o644))

	assert.Error(t, setup(catalogCmd, nil), "other commands still validate the file")

	require.NoError(t, setup(configInitCmd, nil))
	configForce = true
	configInitCmd.SetOut(out)
	t.Cleanup(func() { configInitCmd.SetOut(nil) })
	require.NoError(t, runConfigInit(configInitCmd, nil))

	loaded, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, config.Default().RowHeight, loaded.RowHeight)
}

func TestLayoutCmd_Breakpoint(t *testing.T) {
	cmd, out := setupCmd(t)
	layoutBreakpoint = "xs"
	layoutWidth = 1300
	require.NoError(t, runLayout(cmd, nil))
	assert.True(t, strings.HasPrefix(out.String(), "breakpoint xs: 1 columns (>= 480px)"), out.String())

	layoutBreakpoint = "huge"
	assert.Error(t, runLayout(cmd, nil))
}
