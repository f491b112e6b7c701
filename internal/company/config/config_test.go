package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 50051, cfg.GRPCPort)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "companies.db", cfg.DBPath)
	assert.Equal(t, "companies", cfg.Topic)
	assert.Empty(t, cfg.KafkaBrokers)
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeConfig(t, `
GRPC_PORT: 6000
DB_DRIVER: "postgres"
DB_HOST: "db"
KAFKA_BROKERS: ["kafka:9092", "kafka2:9092"]
JWT_SECRET: "s3cret"
RATE_LIMIT_RPS: 2.5
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 6000, cfg.GRPCPort)
	assert.Equal(t, 8080, cfg.HTTPPort, "unset keys keep defaults")
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, []string{"kafka:9092", "kafka2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.InDelta(t, 2.5, cfg.RateLimitRPS, 0.0001)
}

func TestLoadFile_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "HTTP_PORT: 9000\nTOPIC: from-file\n")
	t.Setenv("HTTP_PORT", "9100")
	t.Setenv("TOPIC", "from-env")
	t.Setenv("KAFKA_BROKERS", " a:9092, ,b:9092 ")
	t.Setenv("RATE_LIMIT_BURST", "5")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.HTTPPort)
	assert.Equal(t, "from-env", cfg.Topic)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 5, cfg.RateLimitBurst)
}

func TestLoadFile_Errors(t *testing.T) {
	t.Run("bad yaml", func(t *testing.T) {
		_, err := LoadFile(writeConfig(t, "GRPC_PORT: [oops"))
		assert.Error(t, err)
	})

	t.Run("bad int env", func(t *testing.T) {
		t.Setenv("DB_PORT", "abc")
		_, err := LoadFile(writeConfig(t, ""))
		assert.ErrorContains(t, err, "DB_PORT")
	})

	t.Run("bad float env", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_RPS", "fast")
		_, err := LoadFile(writeConfig(t, ""))
		assert.ErrorContains(t, err, "RATE_LIMIT_RPS")
	})
}

func TestLoad_ConfigPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, "GRPC_PORT: 7000\n"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.GRPCPort)
}
