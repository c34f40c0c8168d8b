// Package config loads engine settings for the sparsegraph command from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/sparsegraph"
)

// Config holds engine settings loaded from a YAML file.
type Config struct {
	VertexCapacity   int    `yaml:"vertexCapacity,omitempty"`
	EdgeTypeCapacity int    `yaml:"edgeTypeCapacity,omitempty"`
	MemoryLimitBytes int64  `yaml:"memoryLimitBytes,omitempty"`
	ResizeWorkers    int    `yaml:"resizeWorkers,omitempty"`
	LogLevel         string `yaml:"logLevel,omitempty"`
	LogFormat        string `yaml:"logFormat,omitempty"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		VertexCapacity:   sparsegraph.DefaultVertexCapacity,
		EdgeTypeCapacity: sparsegraph.DefaultEdgeTypeCapacity,
		LogLevel:         "warn",
		LogFormat:        "text",
	}
}

// Load reads the YAML file at path on top of Default. An empty path or a
// missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.VertexCapacity < 0 {
		return fmt.Errorf("vertexCapacity must not be negative, got %d", c.VertexCapacity)
	}
	if c.EdgeTypeCapacity < 0 {
		return fmt.Errorf("edgeTypeCapacity must not be negative, got %d", c.EdgeTypeCapacity)
	}
	if c.MemoryLimitBytes < 0 {
		return fmt.Errorf("memoryLimitBytes must not be negative, got %d", c.MemoryLimitBytes)
	}
	if c.ResizeWorkers < 0 {
		return fmt.Errorf("resizeWorkers must not be negative, got %d", c.ResizeWorkers)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("logFormat must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// Level parses LogLevel. Empty means info.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("logLevel: %w", err)
	}
	return level, nil
}

// Logger builds the engine logger writing to w.
func (c *Config) Logger(w io.Writer) (*sparsegraph.Logger, error) {
	level, err := c.Level()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return sparsegraph.NewLogger(slog.NewJSONHandler(w, opts)), nil
	}
	return sparsegraph.NewLogger(slog.NewTextHandler(w, opts)), nil
}

// Options converts the settings into graph options.
func (c *Config) Options(logger *sparsegraph.Logger) []sparsegraph.Option {
	return []sparsegraph.Option{
		sparsegraph.WithInitialVertexCapacity(c.VertexCapacity),
		sparsegraph.WithInitialEdgeTypeCapacity(c.EdgeTypeCapacity),
		sparsegraph.WithMemoryLimit(c.MemoryLimitBytes),
		sparsegraph.WithResizeWorkers(c.ResizeWorkers),
		sparsegraph.WithLogger(logger),
	}
}
