package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateRoundTrip(t *testing.T) {
	t.Setenv("NEOSHELF_HOME", t.TempDir())

	state := DefaultState()
	require.NoError(t, state.SaveShelves(json.RawMessage(`{"modeling":{"items":[]}}`)))
	require.NoError(t, state.SaveTriggers(json.RawMessage(`{"main_command":"lmb_click"}`)))
	require.NoError(t, state.SetActiveShelf("modeling"))

	loaded := LoadState()
	defer loaded.Close()

	assert.Equal(t, "modeling", loaded.GetActiveShelf())
	assert.JSONEq(t, `{"modeling":{"items":[]}}`, string(loaded.GetShelves()))
	assert.JSONEq(t, `{"main_command":"lmb_click"}`, string(loaded.GetTriggers()))
}

func TestStateMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("NEOSHELF_HOME", t.TempDir())

	state := LoadState()
	defer state.Close()

	assert.Equal(t, "", state.GetActiveShelf())
	assert.JSONEq(t, "{}", string(state.GetShelves()))
	assert.JSONEq(t, "{}", string(state.GetTriggers()))
}

func TestStateCorruptFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("NEOSHELF_HOME", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, StateFileName), []byte("not json"), 0644))

	// A corrupt state file falls back to defaults instead of failing
	state := LoadState()
	defer state.Close()
	assert.JSONEq(t, "{}", string(state.ShelvesData))
}

func TestDeleteAllShelves(t *testing.T) {
	t.Setenv("NEOSHELF_HOME", t.TempDir())

	state := DefaultState()
	require.NoError(t, state.SaveShelves(json.RawMessage(`{"a":{}}`)))
	require.NoError(t, state.SetActiveShelf("a"))
	require.NoError(t, state.DeleteAllShelves())

	loaded := LoadState()
	defer loaded.Close()
	assert.JSONEq(t, "{}", string(loaded.GetShelves()))
	assert.Equal(t, "", loaded.GetActiveShelf())
}

func TestConfigDefaults(t *testing.T) {
	t.Setenv("NEOSHELF_HOME", t.TempDir())

	cfg := LoadConfig()
	assert.Equal(t, 55, cfg.IconSize)
	assert.True(t, cfg.ShowLabels)
	assert.Equal(t, "flow", cfg.DefaultLayout)
	assert.Equal(t, 300, cfg.HoldThresholdMs)
	assert.Equal(t, 200, cfg.DoubleClickDelayMs)

	// First load writes the default config file
	_, err := os.Stat(filepath.Join(os.Getenv("NEOSHELF_HOME"), ConfigFileName))
	assert.NoError(t, err)
}

func TestConfigRejectsZeroTimings(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("NEOSHELF_HOME", dir)
	data := []byte(`{"icon_size":40,"hold_threshold_ms":0,"double_click_delay_ms":-5}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), data, 0644))

	cfg := LoadConfig()
	assert.Equal(t, 40, cfg.IconSize)
	assert.Equal(t, 300, cfg.HoldThresholdMs)
	assert.Equal(t, 200, cfg.DoubleClickDelayMs)
}
