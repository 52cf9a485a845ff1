package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "perfmon.yaml", `
interval: 250ms
spinners: 2
collect: fd,memory
max_cpu_percent: 90
log_level: debug
log_format: json
`)

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.Interval)
	assert.Equal(t, 2, cfg.Spinners)
	assert.Equal(t, "fd,memory", cfg.Collect)
	assert.Equal(t, 90.0, cfg.MaxCPUPercent)
	assert.Equal(t, 85.0, cfg.MaxMemoryPercent, "unset keys keep their defaults")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_Precedence(t *testing.T) {
	yamlPath := writeFile(t, "perfmon.yaml", "interval: 2s\nspinners: 1\nlog_level: warn\n")
	envPath := writeFile(t, ".env", "PERFMON_SPINNERS=3\nPERFMON_LOG_LEVEL=debug\n")
	t.Setenv("PERFMON_LOG_LEVEL", "error")

	cfg, err := Load(yamlPath, envPath)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Interval, "from yaml")
	assert.Equal(t, 3, cfg.Spinners, ".env overrides yaml")
	assert.Equal(t, "error", cfg.LogLevel, "environment overrides .env")
}

func TestLoad_MissingEnvFileIgnored(t *testing.T) {
	cfg, err := Load("", filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.Interval)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		env  map[string]string
	}{
		{name: "bad yaml", yaml: "interval: [1"},
		{name: "bad yaml duration", yaml: "interval: soon"},
		{name: "bad env interval", env: map[string]string{"PERFMON_INTERVAL": "fast"}},
		{name: "bad env spinners", env: map[string]string{"PERFMON_SPINNERS": "many"}},
		{name: "bad env cpu percent", env: map[string]string{"PERFMON_MAX_CPU_PERCENT": "high"}},
		{name: "negative spinners", env: map[string]string{"PERFMON_SPINNERS": "-1"}},
		{name: "zero interval", yaml: "interval: 0s"},
		{name: "unknown log format", env: map[string]string{"PERFMON_LOG_FORMAT": "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.yaml != "" {
				path = writeFile(t, "perfmon.yaml", tt.yaml)
			}
			_, err := Load(path, "")
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), "")
	assert.Error(t, err)
}
