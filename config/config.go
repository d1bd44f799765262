// Package config loads the editor's YAML settings.
package config

import (
	"fmt"
	"os"

	"github.com/milk9111/tilesmith/history"
	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable consulted when no path is given.
const EnvPath = "TILESMITH_CONFIG"

type Config struct {
	History HistoryConfig `yaml:"history"`
	Map     MapConfig     `yaml:"map"`
	Log     LogConfig     `yaml:"log"`
	// ScriptsDir holds .tengo paint scripts.
	ScriptsDir string `yaml:"scripts_dir"`
}

type HistoryConfig struct {
	MaxCommands int `yaml:"max_commands"`
	MaxBytes    int `yaml:"max_bytes"`
}

// MapConfig sizes newly created maps.
type MapConfig struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	TileWidth  int `yaml:"tile_width"`
	TileHeight int `yaml:"tile_height"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the built-in settings.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.History.MaxCommands <= 0 {
		c.History.MaxCommands = history.DefaultMaxCommands
	}
	if c.History.MaxBytes <= 0 {
		c.History.MaxBytes = history.DefaultMaxBytes
	}
	if c.Map.Width <= 0 {
		c.Map.Width = 40
	}
	if c.Map.Height <= 0 {
		c.Map.Height = 23
	}
	if c.Map.TileWidth <= 0 {
		c.Map.TileWidth = 32
	}
	if c.Map.TileHeight <= 0 {
		c.Map.TileHeight = 32
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.ScriptsDir == "" {
		c.ScriptsDir = "scripts"
	}
}

// HistoryLimits converts the history section for history.Manager.
func (c *Config) HistoryLimits() history.Limits {
	return history.Limits{MaxCommands: c.History.MaxCommands, MaxBytes: c.History.MaxBytes}
}

// ResolvePath picks the config file: the explicit path, then $TILESMITH_CONFIG.
// An empty result means "use defaults".
func ResolvePath(path string) string {
	if path != "" {
		return path
	}
	return os.Getenv(EnvPath)
}

// Load reads the file at path. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML and fills unset fields with defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}
