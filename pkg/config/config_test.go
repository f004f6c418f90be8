package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	require.Equal(t, "cloudmart", cfg.ServiceName)
	require.Equal(t, 8080, cfg.ServerPort)
	require.Equal(t, "demo", cfg.DefaultUser)
	require.Equal(t, "us-east-1", cfg.DocStoreRegion)
	require.Equal(t, "products", cfg.DocStoreProductsTable)
	require.True(t, cfg.SeedCatalog)
	require.Equal(t, 5*time.Second, cfg.LockTTL)
	require.False(t, cfg.DocStoreEnabled())
	require.Equal(t, ":8080", cfg.Addr())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DEFAULT_USER", "alice")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("SEED_CATALOG", "false")
	t.Setenv("LOCK_TTL", "750ms")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.Addr())
	require.Equal(t, "alice", cfg.DefaultUser)
	require.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	require.False(t, cfg.SeedCatalog)
	require.Equal(t, 750*time.Millisecond, cfg.LockTTL)
}

func TestLoadDotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SQLITE_PATH=/tmp/cloudmart-test.db\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("SQLITE_PATH") })

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/tmp/cloudmart-test.db", cfg.SQLitePath)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("SERVER_PORT", "http")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}

func TestDocStoreNeedsEndpointAndKey(t *testing.T) {
	require.False(t, Config{DocStoreEndpoint: "http://localhost:8000"}.DocStoreEnabled())
	require.False(t, Config{DocStoreAccessKey: "key"}.DocStoreEnabled())
	require.True(t, Config{DocStoreEndpoint: "http://localhost:8000", DocStoreAccessKey: "key"}.DocStoreEnabled())
}
