package cmd

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"helix/config"
	"helix/repository"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStores_File(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.StorageBackend = config.BackendFile
	cfg.DataDir = t.TempDir()

	stores, closeStores, err := openStores(context.Background(), cfg)
	require.NoError(t, err)
	defer closeStores()

	fileStore, ok := stores.Teams.(*repository.FileDocumentStore)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(cfg.DataDir, "teams.json"), fileStore.Path())
}

func TestOpenStores_SQLite(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.StorageBackend = config.BackendSQLite
	cfg.SQLitePath = filepath.Join(t.TempDir(), "nested", "helix.db")

	stores, closeStores, err := openStores(context.Background(), cfg)
	require.NoError(t, err)
	defer closeStores()

	ctx := context.Background()
	require.NoError(t, stores.RingRoles.Put(ctx, "g1", json.RawMessage(`["r1"]`)))
	raw, ok, err := stores.RingRoles.Get(ctx, "g1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `["r1"]`, string(raw))
}

func TestOpenStores_Memory(t *testing.T) {
	stores, closeStores, err := openStores(context.Background(), config.NewTestConfig())
	require.NoError(t, err)
	defer closeStores()

	_, ok := stores.GuildConfigs.(*repository.MemoryDocumentStore)
	assert.True(t, ok)
}

func TestOpenStores_Unknown(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.StorageBackend = "mongo"

	_, _, err := openStores(context.Background(), cfg)
	assert.Error(t, err)
}

func TestConfigureLogging(t *testing.T) {
	defer log.SetLevel(log.GetLevel())
	defer log.SetFormatter(log.StandardLogger().Formatter)

	cfg := config.NewTestConfig()
	cfg.LogLevel = "warn"
	configureLogging(cfg)
	assert.Equal(t, log.WarnLevel, log.GetLevel())

	cfg.LogLevel = "loud"
	cfg.Environment = "production"
	configureLogging(cfg)
	assert.Equal(t, log.InfoLevel, log.GetLevel())
	_, isJSON := log.StandardLogger().Formatter.(*log.JSONFormatter)
	assert.True(t, isJSON)
}
