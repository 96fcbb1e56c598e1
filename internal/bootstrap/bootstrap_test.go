package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fukolomka/Sitea/internal/catalog"
	"github.com/Fukolomka/Sitea/internal/config"
	"github.com/Fukolomka/Sitea/internal/testing/fakestore"
)

var shippedCatalog = filepath.Join("..", "..", "configs", "catalog.json")

func restoreDefaultLogger(t *testing.T) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "sitea", Environment: "test", Version: "v0.0.1"},
		Log: config.LogConfig{Level: "debug", Format: "json"},
		Cache: config.CacheConfig{
			Type: config.CacheTypeMemory,
			TTL:  time.Minute,
			Size: 16,
		},
	}
}

func TestSetupLogger_WritesRotatingFile(t *testing.T) {
	restoreDefaultLogger(t)
	cfg := testConfig()
	cfg.Log.Dir = filepath.Join(t.TempDir(), "logs")
	cfg.Log.MaxSizeMB = 1

	closer, err := SetupLogger(cfg)
	require.NoError(t, err)
	slog.Info("hello")
	require.NoError(t, closer.Close())

	assert.FileExists(t, filepath.Join(cfg.Log.Dir, LogFileName))
}

func TestSetupLoggerWithWriter_AttachesServiceAttributes(t *testing.T) {
	restoreDefaultLogger(t)
	var buf bytes.Buffer

	setupLoggerWithWriter(testConfig(), &buf)

	out := buf.String()
	assert.Contains(t, out, LogMsgLoggingInitialized)
	assert.Contains(t, out, `"service":"sitea"`)
	assert.Contains(t, out, LogMsgConfigurationLoaded)
}

func TestSyncCatalog(t *testing.T) {
	restoreDefaultLogger(t)
	ctx := context.Background()
	store := fakestore.New()

	result, err := SyncCatalog(ctx, catalog.NewLoader(), store, shippedCatalog)
	require.NoError(t, err)
	assert.Equal(t, 8, result.ItemsUpserted)
	assert.Equal(t, 3, result.CasesUpserted)

	cases, err := store.ListActiveCases(ctx)
	require.NoError(t, err)
	assert.Len(t, cases, 3)

	// a second sync upserts the same rows
	_, err = SyncCatalog(ctx, catalog.NewLoader(), store, shippedCatalog)
	require.NoError(t, err)
	cases, err = store.ListActiveCases(ctx)
	require.NoError(t, err)
	assert.Len(t, cases, 3)
}

func TestSyncCatalog_MissingFile(t *testing.T) {
	restoreDefaultLogger(t)
	_, err := SyncCatalog(context.Background(), catalog.NewLoader(), fakestore.New(), "/nonexistent/catalog.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load catalog config")
}

func TestSyncCatalog_StoreFailure(t *testing.T) {
	restoreDefaultLogger(t)
	store := fakestore.New()
	store.FailOn(fakestore.OpUpsertItem, errors.New("disk full"))

	_, err := SyncCatalog(context.Background(), catalog.NewLoader(), store, shippedCatalog)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to sync catalog to database")
}

func TestNewCatalogCache_Memory(t *testing.T) {
	restoreDefaultLogger(t)
	cache, client, err := NewCatalogCache(context.Background(), testConfig().Cache)
	require.NoError(t, err)
	assert.NotNil(t, cache)
	assert.Nil(t, client)
}

func TestNewCatalogCache_RedisUnreachable(t *testing.T) {
	restoreDefaultLogger(t)
	cfg := testConfig().Cache
	cfg.Type = config.CacheTypeRedis
	cfg.RedisAddr = "127.0.0.1:1"

	_, _, err := NewCatalogCache(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreachable")
}
