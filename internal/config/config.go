// Package config loads ServerConfig from an optional YAML file with
// environment-variable overrides, for the serve subcommand.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/corvushealth/hl7gateway/mllp"
)

// ServerConfig holds everything the serve subcommand needs to start the
// MLLP listener. Field names match the YAML keys and the HL7INGEST_* env
// vars that override them.
type ServerConfig struct {
	Address        string        `yaml:"address"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	MaxConnections int           `yaml:"max_connections"`
	MaxFrameBytes  int           `yaml:"max_frame_bytes"`
	LogLevel       string        `yaml:"log_level"`
}

// Default returns the configuration used when no file or environment
// variable overrides a field.
func Default() ServerConfig {
	return ServerConfig{
		Address:        "0.0.0.0:2575",
		ReadTimeout:    mllp.DefaultReadTimeout,
		WriteTimeout:   mllp.DefaultWriteTimeout,
		MaxConnections: mllp.DefaultMaxConnections,
		MaxFrameBytes:  mllp.DefaultMaxFrameBytes,
		LogLevel:       "info",
	}
}

// Load reads ServerConfig starting from Default(), overlaying path (if
// non-empty) as a YAML file, then overlaying any HL7INGEST_* environment
// variables that are set. path may be empty, in which case only the
// environment overlay applies.
func Load(path string) (ServerConfig, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("config: reading %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return ServerConfig{}, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if cfg.MaxFrameBytes < mllp.DefaultMaxFrameBytes {
		// MaxFrameBytes is overridable only upward - 100,000 bytes is a
		// floor, not a suggestion.
		cfg.MaxFrameBytes = mllp.DefaultMaxFrameBytes
	}

	return cfg, nil
}

func applyEnv(cfg *ServerConfig) {
	if v := os.Getenv("HL7INGEST_ADDRESS"); v != "" {
		cfg.Address = v
	}
	if v := os.Getenv("HL7INGEST_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("HL7INGEST_READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ReadTimeout = d
		}
	}
	if v := os.Getenv("HL7INGEST_WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.WriteTimeout = d
		}
	}
	if v := os.Getenv("HL7INGEST_MAX_CONNECTIONS"); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil && n > 0 {
			cfg.MaxConnections = n
		}
	}
	if v := os.Getenv("HL7INGEST_MAX_FRAME_BYTES"); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil && n > 0 {
			cfg.MaxFrameBytes = n
		}
	}
}
