// SPDX-License-Identifier: MIT

// Package config loads epgweaver configuration with the precedence
// defaults < YAML file < environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"epgweaver/internal/guide"
)

// ErrInvalid marks configuration that must stop the run before any
// matching begins.
var ErrInvalid = errors.New("invalid configuration")

// Config is the full caller-facing configuration surface.
type Config struct {
	PlaylistSource string `yaml:"playlist"`
	EPGSource      string `yaml:"epg"`
	OutputPath     string `yaml:"output"`
	PlaylistOut    string `yaml:"playlist_output"`

	MinRatio   float64 `yaml:"min_ratio"`
	BlockCount int     `yaml:"block_count"`
	BlockHours int     `yaml:"block_hours"`

	LogLevel string `yaml:"log_level"`

	// Overrides maps a playlist identifier (any casing/punctuation) to
	// a raw EPG id. Keys are normalized when the table is built.
	Overrides map[string]string `yaml:"overrides"`
	// OverridesFile points to a JSON file in the channel_map.json
	// format; inline entries win over file entries.
	OverridesFile string `yaml:"overrides_file"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		OutputPath: "epg.xml",
		MinRatio:   guide.DefaultMinRatio,
		BlockCount: guide.DefaultBlockCount,
		BlockHours: guide.DefaultBlockHours,
		LogLevel:   "info",
	}
}

// Load builds the effective configuration: defaults, then the YAML
// file at path (if any), then environment variables.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path)) // #nosec G304 -- path from CLI flag
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	setString("EPGWEAVER_M3U", &c.PlaylistSource)
	setString("EPGWEAVER_EPG", &c.EPGSource)
	setString("EPGWEAVER_OUT", &c.OutputPath)
	setString("EPGWEAVER_LOG_LEVEL", &c.LogLevel)
	setString("EPGWEAVER_OVERRIDES_FILE", &c.OverridesFile)

	if v, ok := os.LookupEnv("EPGWEAVER_MIN_RATIO"); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.MinRatio = f
		}
	}
	if v, ok := os.LookupEnv("EPGWEAVER_BLOCK_COUNT"); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.BlockCount = n
		}
	}
	if v, ok := os.LookupEnv("EPGWEAVER_BLOCK_HOURS"); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.BlockHours = n
		}
	}
}

// Validate fails fast on settings that would invalidate every
// subsequent matching decision.
func (c Config) Validate() error {
	if c.PlaylistSource == "" {
		return fmt.Errorf("%w: playlist source is required", ErrInvalid)
	}
	if c.MinRatio < 0 || c.MinRatio > 1 {
		return fmt.Errorf("%w: min_ratio %v outside [0,1]", ErrInvalid, c.MinRatio)
	}
	if c.BlockCount <= 0 {
		return fmt.Errorf("%w: block_count must be positive, got %d", ErrInvalid, c.BlockCount)
	}
	if c.BlockHours <= 0 {
		return fmt.Errorf("%w: block_hours must be positive, got %d", ErrInvalid, c.BlockHours)
	}
	if c.OutputPath == "" {
		return fmt.Errorf("%w: output path is required", ErrInvalid)
	}
	return nil
}
