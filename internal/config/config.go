package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	UI       UIConfig       `mapstructure:"ui"`
	Preset   PresetConfig   `mapstructure:"preset"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// UIConfig holds terminal settings.
type UIConfig struct {
	// Store is the character (id, name or class) selected when nothing is saved.
	Store     string `mapstructure:"store"`
	LogFile   string `mapstructure:"log_file"`
	AltScreen bool   `mapstructure:"alt_screen"`
}

// PresetConfig holds where exported presets go.
type PresetConfig struct {
	Dir string `mapstructure:"dir"`
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "loadout")
}

// Path is the config file in use: $LOADOUT_CONFIG or ~/.config/loadout/config.toml.
func Path() string {
	if p := os.Getenv("LOADOUT_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "loadout", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix LOADOUT_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(dataDir(), "loadout.db"))
	v.SetDefault("ui.store", "")
	v.SetDefault("ui.log_file", filepath.Join(dataDir(), "loadout.log"))
	v.SetDefault("ui.alt_screen", true)
	v.SetDefault("preset.dir", filepath.Join(dataDir(), "presets"))

	v.SetConfigType("toml")

	if cfgPath := os.Getenv("LOADOUT_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "loadout"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("LOADOUT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("ui.store", cfg.UI.Store)
	v.Set("ui.log_file", cfg.UI.LogFile)
	v.Set("ui.alt_screen", cfg.UI.AltScreen)
	v.Set("preset.dir", cfg.Preset.Dir)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
