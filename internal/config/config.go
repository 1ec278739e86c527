// Package config handles configuration loading for the colormap server.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/customcolour/colormaps/pkg/colormap"
)

// Config represents the server configuration.
type Config struct {
	Server ServerConfig    `yaml:"server"`
	Cache  CacheConfig     `yaml:"cache"`
	Render RenderConfig    `yaml:"render"`
	Store  StoreConfig     `yaml:"store"`
	Maps   []*colormap.Map `yaml:"maps"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
	Title       string   `yaml:"title"`
}

// CacheConfig contains caching settings.
type CacheConfig struct {
	SwatchSizeMB     int `yaml:"swatch_size_mb"`
	SwatchTTLMinutes int `yaml:"swatch_ttl_minutes"`
	LUTCacheSize     int `yaml:"lut_cache_size"`
}

// RenderConfig contains swatch rendering settings.
type RenderConfig struct {
	SwatchWidth     int    `yaml:"swatch_width"`
	SwatchHeight    int    `yaml:"swatch_height"`
	DefaultColormap string `yaml:"default_colormap"`
}

// StoreConfig contains palette store settings.
type StoreConfig struct {
	SQLitePath string `yaml:"sqlite_path"`
}

// Load reads configuration from a YAML file. Custom colormaps listed
// under "maps" are validated during decoding.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return default config if file doesn't exist
		return DefaultConfig(), nil
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Apply defaults for missing values
	applyDefaults(&cfg)

	return &cfg, nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			CORSOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
			Title:       "customcolour",
		},
		Cache: CacheConfig{
			SwatchSizeMB:     64,
			SwatchTTLMinutes: 10,
			LUTCacheSize:     256,
		},
		Render: RenderConfig{
			SwatchWidth:     512,
			SwatchHeight:    32,
			DefaultColormap: "viridis",
		},
		Store: StoreConfig{
			SQLitePath: "./data/palettes.sqlite",
		},
	}
}

func applyDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaults.Server.Port
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = defaults.Server.CORSOrigins
	}
	if cfg.Server.Title == "" {
		cfg.Server.Title = defaults.Server.Title
	}
	if cfg.Cache.SwatchSizeMB == 0 {
		cfg.Cache.SwatchSizeMB = defaults.Cache.SwatchSizeMB
	}
	if cfg.Cache.SwatchTTLMinutes == 0 {
		cfg.Cache.SwatchTTLMinutes = defaults.Cache.SwatchTTLMinutes
	}
	if cfg.Cache.LUTCacheSize == 0 {
		cfg.Cache.LUTCacheSize = defaults.Cache.LUTCacheSize
	}
	if cfg.Render.SwatchWidth == 0 {
		cfg.Render.SwatchWidth = defaults.Render.SwatchWidth
	}
	if cfg.Render.SwatchHeight == 0 {
		cfg.Render.SwatchHeight = defaults.Render.SwatchHeight
	}
	if cfg.Render.DefaultColormap == "" {
		cfg.Render.DefaultColormap = defaults.Render.DefaultColormap
	}
	if cfg.Store.SQLitePath == "" {
		cfg.Store.SQLitePath = defaults.Store.SQLitePath
	}
}
