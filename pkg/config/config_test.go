package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "environment: test\n"))
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"NASDAQ", "LSE", "NYSE"}, cfg.Sampling.Groups)
	assert.Equal(t, ".csv", cfg.Sampling.Extension)
	assert.Equal(t, 10, cfg.Sampling.WindowSize)
	assert.Equal(t, filepath.Join("./data/stock_price_data_files", "output"), cfg.Output.Dir)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, -1, cfg.Kafka.RequiredAcks)
	assert.Equal(t, "memory", cfg.RateLimit.Backend)
	assert.Equal(t, ".csv", cfg.ArtifactExt())
	assert.Equal(t, 100, cfg.Log.MaxSizeMB)
}

func TestLoadOverridesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
environment: production
sampling:
  base_dir: /srv/prices
  groups: [TSX]
  window_size: 5
  max_concurrency: 8
output:
  dir: /srv/out
  format: xlsx
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"TSX"}, cfg.Sampling.Groups)
	assert.Equal(t, 5, cfg.Sampling.WindowSize)
	assert.Equal(t, 8, cfg.Sampling.MaxConcurrency)
	assert.Equal(t, "/srv/out", cfg.Output.Dir)
	assert.Equal(t, ".xlsx", cfg.ArtifactExt())
	assert.Equal(t, filepath.Join("/srv/prices", "TSX"), cfg.GroupDir("TSX"))
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"window too small", "sampling:\n  window_size: 1\n"},
		{"duplicate groups", "sampling:\n  groups: [LSE, LSE]\n"},
		{"kafka without brokers", "kafka:\n  enabled: true\n  brokers: []\n"},
		{"unknown backend", "rate_limit:\n  backend: etcd\n"},
		{"bad extension", "sampling:\n  extension: csv\n"},
		{"bad log level", "log:\n  level: verbose\n"},
		{"unknown output format", "output:\n  format: parquet\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadWithEnv(t *testing.T) {
	path := writeConfig(t, "environment: test\n")
	t.Setenv("SAMPLER_BASE_DIR", "/tmp/corpus")
	t.Setenv("SAMPLER_GROUPS", "NYSE, LSE")
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := LoadWithEnv(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/corpus", cfg.Sampling.BaseDir)
	assert.Equal(t, []string{"NYSE", "LSE"}, cfg.Sampling.Groups)
	assert.Equal(t, filepath.Join("/tmp/corpus", "output"), cfg.Output.Dir)
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestLoadWithEnvKeepsExplicitOutputDir(t *testing.T) {
	path := writeConfig(t, "output:\n  dir: /srv/out\n")
	t.Setenv("SAMPLER_BASE_DIR", "/tmp/corpus")

	cfg, err := LoadWithEnv(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/out", cfg.Output.Dir)
}

func TestLoadWithEnvRejectsBlankBrokers(t *testing.T) {
	path := writeConfig(t, "kafka:\n  enabled: true\n  brokers: [k1:9092]\n")
	t.Setenv("KAFKA_BROKERS", " , ")

	_, err := LoadWithEnv(path)
	assert.ErrorContains(t, err, "kafka.brokers")
}
