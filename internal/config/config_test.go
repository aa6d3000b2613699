package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("LOADOUT_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".local", "share", "loadout", "loadout.db"), cfg.Database.Path)
	require.True(t, cfg.UI.AltScreen)
	require.Empty(t, cfg.UI.Store)
	require.Equal(t, filepath.Join(home, ".local", "share", "loadout", "presets"), cfg.Preset.Dir)
}

func TestSaveLoadRoundTripWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("LOADOUT_CONFIG", filepath.Join(dir, "conf", "loadout.toml"))

	want := Config{
		Database: DatabaseConfig{Path: filepath.Join(dir, "db.sqlite")},
		UI:       UIConfig{Store: "hunter", LogFile: filepath.Join(dir, "tui.log"), AltScreen: false},
		Preset:   PresetConfig{Dir: filepath.Join(dir, "presets")},
	}
	require.NoError(t, Save(want))

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, want, got)

	t.Setenv("LOADOUT_UI_STORE", "warlock")
	got, err = Load()
	require.NoError(t, err)
	require.Equal(t, "warlock", got.UI.Store)
}
