// Package config assembles runtime configuration for the cmd/ binaries
// from three layers: built-in defaults, an optional YAML file, and
// command-line flags, merged in that priority order.
package config

import (
	"os"

	"github.com/imdario/mergo"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config controls pipeline and transport behaviour. Any field left at
// its zero value after loading is filled from Default.
type Config struct {
	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`

	// ChannelCapacity overrides the bounded channel capacity between
	// pipeline stages (default 5).
	ChannelCapacity int `yaml:"channel_capacity"`

	// ReplayChunkSize overrides transport/replay's chunk size.
	ReplayChunkSize int `yaml:"replay_chunk_size"`

	// FuzzSeed seeds transport/fuzz's deterministic generator.
	FuzzSeed int64 `yaml:"fuzz_seed"`

	// FuzzCount is the number of chunks transport/fuzz emits before
	// closing.
	FuzzCount int `yaml:"fuzz_count"`
}

// Default holds the built-in configuration values used to fill any
// field left unset by the YAML file or CLI flags.
var Default = Config{
	LogLevel:        "info",
	ChannelCapacity: 5,
	ReplayChunkSize: 20,
	FuzzSeed:        1,
	FuzzCount:       200,
}

// Load reads path (if non-empty) as YAML into a new Config seeded from
// Default, then applies overrides in order. A missing path is not an
// error; an unreadable or malformed existing file is.
func Load(path string, overrides ...func(*Config)) (*Config, error) {
	cfg := Default

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, errors.Wrapf(err, "reading config file %s", path)
			}
		} else {
			var fromFile Config
			if err := yaml.Unmarshal(data, &fromFile); err != nil {
				return nil, errors.Wrapf(err, "parsing config file %s", path)
			}
			if err := mergo.Merge(&cfg, fromFile, mergo.WithOverride); err != nil {
				return nil, errors.Wrap(err, "merging config file values")
			}
		}
	}

	for _, o := range overrides {
		o(&cfg)
	}

	if err := mergo.Merge(&cfg, Default); err != nil {
		return nil, errors.Wrap(err, "merging default config values")
	}

	return &cfg, nil
}
