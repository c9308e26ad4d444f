// Package config loads runtime settings from an optional YAML file and
// SEROLOGY_* environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/serology/internal/logging"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces every environment override.
const EnvPrefix = "SEROLOGY_"

const (
	DefaultPort         = 8080
	DefaultMaxInputSize = 4096
)

// Config holds the settings shared by every command.
type Config struct {
	Graph     string          `yaml:"graph"`
	LogLevel  string          `yaml:"log_level"`
	Strict    bool            `yaml:"strict"`
	HTTP      HTTPConfig      `yaml:"http"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Input     InputConfig     `yaml:"input"`
}

// HTTPConfig configures the serve command.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// MetricsConfig toggles the Prometheus collectors.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// TelemetryConfig points the tracer at an OTLP collector. An empty endpoint
// disables tracing.
type TelemetryConfig struct {
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	Insecure     bool   `yaml:"insecure"`
}

// InputConfig bounds user-supplied input.
type InputConfig struct {
	MaxSize int `yaml:"max_size"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		HTTP:     HTTPConfig{Port: DefaultPort},
		Metrics:  MetricsConfig{Enabled: true},
		Input:    InputConfig{MaxSize: DefaultMaxInputSize},
	}
}

// Load reads configuration from a file and applies environment variable overrides.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(cfg, lookup); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config, lookup func(string) (string, bool)) error {
	if val, ok := lookup(EnvPrefix + "GRAPH"); ok && val != "" {
		cfg.Graph = val
	}
	if val, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok && val != "" {
		cfg.LogLevel = val
	}
	if val, ok := lookup(EnvPrefix + "STRICT"); ok && val != "" {
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid %sSTRICT: %w", EnvPrefix, err)
		}
		cfg.Strict = b
	}
	if val, ok := lookup(EnvPrefix + "HTTP_PORT"); ok && val != "" {
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid %sHTTP_PORT: %w", EnvPrefix, err)
		}
		cfg.HTTP.Port = n
	}
	if val, ok := lookup(EnvPrefix + "METRICS_ENABLED"); ok && val != "" {
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid %sMETRICS_ENABLED: %w", EnvPrefix, err)
		}
		cfg.Metrics.Enabled = b
	}
	if val, ok := lookup(EnvPrefix + "OTLP_ENDPOINT"); ok && val != "" {
		cfg.Telemetry.OTLPEndpoint = val
	}
	if val, ok := lookup(EnvPrefix + "OTLP_INSECURE"); ok && val != "" {
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid %sOTLP_INSECURE: %w", EnvPrefix, err)
		}
		cfg.Telemetry.Insecure = b
	}
	if val, ok := lookup(EnvPrefix + "MAX_INPUT_SIZE"); ok && val != "" {
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return fmt.Errorf("invalid %sMAX_INPUT_SIZE: %w", EnvPrefix, err)
		}
		cfg.Input.MaxSize = n
	}
	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.HTTP.Port < 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port out of range: %d", c.HTTP.Port)
	}
	if c.Input.MaxSize <= 0 {
		return fmt.Errorf("input.max_size must be positive, got %d", c.Input.MaxSize)
	}
	return nil
}
