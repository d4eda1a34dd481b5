package config

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable consulted when Load gets no path.
const EnvPath = "VOXL_CONFIG"

// Config is the root of the YAML configuration.
type Config struct {
	World WorldGen `yaml:"world"`
	Mesh  Mesh     `yaml:"mesh"`
	Log   Log      `yaml:"log"`
}

// Mesh configures the meshing worker pool.
type Mesh struct {
	Policy    string `yaml:"policy"` // instances | culled
	Workers   int    `yaml:"workers"`
	QueueSize int    `yaml:"queue_size"`
}

// Log configures the process logger.
type Log struct {
	Level string `yaml:"level"` // debug | info | warn | error
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		World: DefaultWorldGen(),
		Mesh: Mesh{
			Policy:    "instances",
			Workers:   runtime.NumCPU(),
			QueueSize: 64,
		},
		Log: Log{Level: "info"},
	}
}

// Load reads a YAML file on top of Default. With an empty path it falls
// back to $VOXL_CONFIG, and to the defaults alone when that is unset too.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvPath)
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return cfg, nil
}

// Normalize clamps numeric settings to usable ranges.
func (c *Config) Normalize() {
	c.World.Normalize()
	c.Mesh.Workers = clamp(c.Mesh.Workers, 1, 4*runtime.NumCPU())
	c.Mesh.QueueSize = clamp(c.Mesh.QueueSize, 1, 4096)
}

// Validate rejects settings that cannot be clamped into something sane.
func (c *Config) Validate() error {
	if err := c.World.Validate(); err != nil {
		return err
	}
	switch c.Mesh.Policy {
	case "instances", "culled":
	default:
		return fmt.Errorf("config: mesh.policy %q: want instances or culled", c.Mesh.Policy)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses the configured level name.
func (l Log) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("config: log.level %q: %w", l.Level, err)
	}
	return lvl, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
