package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears variables for the duration of the test
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, "STORAGE_BACKEND", "ENVIRONMENT", "DATA_DIR", "SQLITE_PATH", "LOG_LEVEL", "NATS_SERVERS")
	t.Setenv("DISCORD_TOKEN", "token")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "token", cfg.DiscordToken)
	assert.Equal(t, BackendFile, cfg.StorageBackend)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "data/helix.db", cfg.SQLitePath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
	assert.Empty(t, cfg.NATSServerList())
}

func TestLoad_RequiresToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("STORAGE_BACKEND", "memory")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DISCORD_TOKEN")
}

func TestLoad_TokenOptionalInTest(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("STORAGE_BACKEND", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.StorageBackend)
}

func TestLoad_PostgresRequiresURL(t *testing.T) {
	unsetEnv(t, "DATABASE_URL")
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("STORAGE_BACKEND", "Postgres")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoad_UnknownBackend(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("STORAGE_BACKEND", "redis")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis")
}

func TestGetDatabaseURL(t *testing.T) {
	cfg := &Config{DatabaseURL: "postgres://u:p@localhost:5432", DatabaseName: "helix"}
	assert.Equal(t, "postgres://u:p@localhost:5432/helix?sslmode=disable", cfg.GetDatabaseURL())
}

func TestNATSServerList(t *testing.T) {
	cfg := &Config{NATSServers: "nats://a:4222, nats://b:4222,,"}
	assert.Equal(t, []string{"nats://a:4222", "nats://b:4222"}, cfg.NATSServerList())
}

func TestSetTestConfig(t *testing.T) {
	t.Cleanup(ResetConfig)

	testCfg := NewTestConfig()
	testCfg.DataDir = "custom"
	SetTestConfig(testCfg)

	assert.Same(t, testCfg, Get())
	assert.Equal(t, "custom", Get().DataDir)
}
