// Package config loads runtime settings for the terminal game.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/profitpilgrim/internal/currency"
)

// Environment variables that override file settings.
const (
	EnvConfigPath = "PILGRIM_CONFIG"
	EnvSavePath   = "PILGRIM_SAVE_PATH"
)

// Config holds the new-game economy and driver settings.
type Config struct {
	StartingCurrency currency.Amount `yaml:"startingCurrency"`
	ClickValue       int64           `yaml:"clickValue"`
	IdleRate         int64           `yaml:"idleRate"`
	TickInterval     time.Duration   `yaml:"tickInterval"`
	AutosaveInterval time.Duration   `yaml:"autosaveInterval"`
	SavePath         string          `yaml:"savePath"`
	SaveSlot         string          `yaml:"saveSlot"`
	LogPath          string          `yaml:"logPath"`    // the terminal is owned by the UI
	CatalogDir       string          `yaml:"catalogDir"` // empty uses the embedded catalog
}

// Default returns the settings a fresh game starts with.
func Default() Config {
	return Config{
		StartingCurrency: currency.New(50),
		ClickValue:       5,
		IdleRate:         1,
		TickInterval:     100 * time.Millisecond,
		AutosaveInterval: 30 * time.Second,
		SavePath:         "profitpilgrim.db",
		SaveSlot:         "default",
		LogPath:          "profitpilgrim.log",
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv loads the file named by PILGRIM_CONFIG, or the defaults when it is
// unset, then applies PILGRIM_SAVE_PATH.
func FromEnv() (Config, error) {
	cfg := Default()
	if path := os.Getenv(EnvConfigPath); path != "" {
		loaded, err := Load(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}
	if path := os.Getenv(EnvSavePath); path != "" {
		cfg.SavePath = path
	}
	return cfg, nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.ClickValue < 1:
		return fmt.Errorf("clickValue %d must be at least 1", c.ClickValue)
	case c.IdleRate < 0:
		return fmt.Errorf("idleRate %d must not be negative", c.IdleRate)
	case c.TickInterval <= 0:
		return errors.New("tickInterval must be positive")
	case c.AutosaveInterval < 0:
		return errors.New("autosaveInterval must not be negative")
	case c.SavePath == "":
		return errors.New("missing savePath")
	case c.SaveSlot == "":
		return errors.New("missing saveSlot")
	case c.LogPath == "":
		return errors.New("missing logPath")
	}
	return nil
}
