// Package config loads the activity-monitor configuration from a YAML
// file, a .env file and PERFMON_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "PERFMON_"

// Config holds the activity-monitor settings.
type Config struct {
	Interval         time.Duration `yaml:"interval"`
	Spinners         int           `yaml:"spinners"`
	Collect          string        `yaml:"collect"`
	MaxCPUPercent    float64       `yaml:"max_cpu_percent"`
	MaxMemoryPercent float64       `yaml:"max_memory_percent"`
	LogLevel         string        `yaml:"log_level"`
	LogFormat        string        `yaml:"log_format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Interval:         time.Second,
		Spinners:         5,
		Collect:          "all",
		MaxCPUPercent:    80,
		MaxMemoryPercent: 85,
		LogLevel:         "info",
		LogFormat:        "console",
	}
}

// Load builds the configuration in increasing order of precedence:
// defaults, the YAML file at path, the dotenv file at envFile, and the
// process environment. Empty paths and a missing envFile are skipped.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	env := map[string]string{}
	if envFile != "" {
		values, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read env file %s: %w", envFile, err)
		}
		for k, v := range values {
			env[k] = v
		}
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(k, EnvPrefix) {
			env[k] = v
		}
	}

	if err := cfg.applyEnv(env); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(env map[string]string) error {
	lookup := func(name string) (string, bool) {
		v, ok := env[EnvPrefix+name]
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}

	if raw, ok := lookup("INTERVAL"); ok {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid %sINTERVAL %q: %w", EnvPrefix, raw, err)
		}
		c.Interval = d
	}
	if raw, ok := lookup("SPINNERS"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid %sSPINNERS %q: %w", EnvPrefix, raw, err)
		}
		c.Spinners = n
	}
	if raw, ok := lookup("MAX_CPU_PERCENT"); ok {
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid %sMAX_CPU_PERCENT %q: %w", EnvPrefix, raw, err)
		}
		c.MaxCPUPercent = p
	}
	if raw, ok := lookup("MAX_MEMORY_PERCENT"); ok {
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid %sMAX_MEMORY_PERCENT %q: %w", EnvPrefix, raw, err)
		}
		c.MaxMemoryPercent = p
	}
	if raw, ok := lookup("COLLECT"); ok {
		c.Collect = raw
	}
	if raw, ok := lookup("LOG_LEVEL"); ok {
		c.LogLevel = raw
	}
	if raw, ok := lookup("LOG_FORMAT"); ok {
		c.LogFormat = raw
	}
	return nil
}

// Validate checks the values that the monitor does not validate itself.
func (c *Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %v", c.Interval)
	}
	if c.Spinners < 0 {
		return fmt.Errorf("spinners must not be negative, got %d", c.Spinners)
	}
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}
