// Package common provides shared utilities for Folio
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Folio
type Config struct {
	Environment string         `toml:"environment"`
	Server      ServerConfig   `toml:"server"`
	Snapshots   SnapshotConfig `toml:"snapshots"`
	Logging     LoggingConfig  `toml:"logging"`
	Chart       ChartConfig    `toml:"chart"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host      string `toml:"host" validate:"required"`
	Port      int    `toml:"port" validate:"min=1,max=65535"`
	RateLimit int    `toml:"rate_limit" validate:"min=0"` // requests per second across all clients, 0 disables
}

// SnapshotConfig names the two read-only data sources the analytics run over.
// Paths ending in .yaml or .yml are decoded as YAML, everything else as JSON.
type SnapshotConfig struct {
	Holdings string `toml:"holdings" validate:"required"`
	Timeline string `toml:"timeline" validate:"required"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level    string   `toml:"level" validate:"omitempty,oneof=trace debug info warn error disabled"`
	Outputs  []string `toml:"outputs" validate:"dive,oneof=console stdout file"`
	FilePath string   `toml:"file_path"`
}

// ChartConfig holds the dimensions of rendered performance charts.
type ChartConfig struct {
	Width  int `toml:"width" validate:"min=200,max=4000"`
	Height int `toml:"height" validate:"min=150,max=3000"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host:      "0.0.0.0",
			Port:      8080,
			RateLimit: 0,
		},
		Snapshots: SnapshotConfig{
			Holdings: "data/holding.json",
			Timeline: "data/performance-timeline.json",
		},
		Logging: LoggingConfig{
			Level:    "info",
			Outputs:  []string{"console"},
			FilePath: "./logs/folio.log",
		},
		Chart: ChartConfig{
			Width:  900,
			Height: 400,
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Later files override earlier ones
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FOLIO_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("FOLIO_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("FOLIO_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if limit := os.Getenv("FOLIO_RATE_LIMIT"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil {
			config.Server.RateLimit = l
		}
	}

	if level := os.Getenv("FOLIO_LOG_LEVEL"); level != "" {
		config.Logging.Level = strings.ToLower(level)
	}

	// FOLIO_DATA_PATH relocates both snapshots; the per-file variables win over it.
	if path := os.Getenv("FOLIO_DATA_PATH"); path != "" {
		config.Snapshots.Holdings = filepath.Join(path, filepath.Base(config.Snapshots.Holdings))
		config.Snapshots.Timeline = filepath.Join(path, filepath.Base(config.Snapshots.Timeline))
	}

	if path := os.Getenv("FOLIO_HOLDINGS_PATH"); path != "" {
		config.Snapshots.Holdings = path
	}

	if path := os.Getenv("FOLIO_TIMELINE_PATH"); path != "" {
		config.Snapshots.Timeline = path
	}
}

// Validate checks the struct tags on the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// ResolvePaths rebases relative snapshot and log paths onto baseDir.
func (c *Config) ResolvePaths(baseDir string) {
	if baseDir == "" {
		return
	}
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(baseDir, p)
	}
	c.Snapshots.Holdings = resolve(c.Snapshots.Holdings)
	c.Snapshots.Timeline = resolve(c.Snapshots.Timeline)
	c.Logging.FilePath = resolve(c.Logging.FilePath)
}
