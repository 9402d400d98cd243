// Package config loads runtime configuration for the bootstrap run.
// The collection table itself is compiled in; config covers only the
// connection, the probe budget, and the optional metrics listener.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the qdrant-init runtime configuration.
type Config struct {
	Qdrant  QdrantConfig  `yaml:"qdrant"`
	Probe   ProbeConfig   `yaml:"probe"`
	Metrics MetricsConfig `yaml:"metrics"`
	Logging LoggingConfig `yaml:"logging"`
}

// QdrantConfig holds management API connection settings.
type QdrantConfig struct {
	Host              string `yaml:"host"`
	Port              int    `yaml:"port"`
	RequestTimeoutSec int    `yaml:"request_timeout_sec"`
}

// BaseURL returns the management API address.
func (q QdrantConfig) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", q.Host, q.Port)
}

// ProbeConfig holds the availability polling budget.
type ProbeConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
	DelaySec    int `yaml:"delay_sec"`
}

// MetricsConfig holds the optional Prometheus listener address.
// Empty means no listener.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: info)
}

// Load reads configuration from an optional YAML file, then applies
// environment overrides and defaults. An empty path means no file:
// defaults plus environment only.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		// Substitute env variables of the form ${VAR} / ${VAR:-default}
		data = expandEnvVars(data)
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyEnv layers QDRANT_HOST / QDRANT_PORT over whatever the file set.
func (c *Config) applyEnv() error {
	if host := os.Getenv("QDRANT_HOST"); host != "" {
		c.Qdrant.Host = host
	}
	if port := os.Getenv("QDRANT_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid QDRANT_PORT %q: %w", port, err)
		}
		c.Qdrant.Port = p
	}
	return nil
}

// ApplyDefaults fills empty fields with default values.
// The defaults match the original deployment: localhost:6333, 30 probes
// two seconds apart.
func (c *Config) ApplyDefaults() {
	if c.Qdrant.Host == "" {
		c.Qdrant.Host = "localhost"
	}
	if c.Qdrant.Port == 0 {
		c.Qdrant.Port = 6333
	}
	if c.Qdrant.RequestTimeoutSec <= 0 {
		c.Qdrant.RequestTimeoutSec = 30
	}
	if c.Probe.MaxAttempts <= 0 {
		c.Probe.MaxAttempts = 30
	}
	if c.Probe.DelaySec <= 0 {
		c.Probe.DelaySec = 2
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.Qdrant.Host == "" {
		return fmt.Errorf("qdrant.host is required")
	}
	if c.Qdrant.Port <= 0 || c.Qdrant.Port > 65535 {
		return fmt.Errorf("qdrant.port must be between 1 and 65535, got %d", c.Qdrant.Port)
	}
	if c.Probe.MaxAttempts < 1 {
		return fmt.Errorf("probe.max_attempts must be at least 1, got %d", c.Probe.MaxAttempts)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
		// ok
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
