package cmd_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"visadesk/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DB_USER", "visadesk")
	t.Setenv("DB_NAME", "visadesk")

	cfg, err := cmd.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTPAddr())
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, 200*time.Millisecond, cfg.DBSlowQueryThreshold)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 2, cfg.NotifyWorkers)
	assert.Equal(t, 256, cfg.NotifyQueueSize)
	assert.Equal(t, 10*time.Second, cfg.NotifySendTimeout)
	assert.Empty(t, cfg.RedisAddr)
	assert.False(t, cfg.OrdersStrictTransitions)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "p@ss word")
	t.Setenv("DB_NAME", "orders")
	t.Setenv("DB_HOST", "db")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("NOTIFY_WORKERS", "4")
	t.Setenv("ORDERS_STRICT_TRANSITIONS", "true")

	cfg, err := cmd.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 4, cfg.NotifyWorkers)
	assert.True(t, cfg.OrdersStrictTransitions)
	assert.Equal(t, "postgres://app:p%40ss%20word@db:5432/orders?sslmode=disable", cfg.DSN())
}

func TestLoadConfig_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DB_USER=fromfile\nDB_NAME=fromfile\nLOG_LEVEL=debug\n"), 0o600))

	// variables loaded from the file must not leak into other tests
	t.Setenv("DB_USER", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("DB_USER"))
	require.NoError(t, os.Unsetenv("DB_NAME"))
	require.NoError(t, os.Unsetenv("LOG_LEVEL"))

	cfg, err := cmd.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "fromfile", cfg.DBUser)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_EnvFileErrors(t *testing.T) {
	t.Setenv("DB_USER", "visadesk")
	t.Setenv("DB_NAME", "visadesk")

	t.Run("missing file is ignored", func(t *testing.T) {
		_, err := cmd.LoadConfig(filepath.Join(t.TempDir(), ".env"))
		require.NoError(t, err)
	})

	t.Run("malformed file is reported", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("BAD-KEY=1\n"), 0o600))

		_, err := cmd.LoadConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), path)
	})
}

func TestLoadConfig_MissingDatabase(t *testing.T) {
	t.Setenv("DB_USER", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("NOTIFY_WORKERS", "0")

	_, err := cmd.LoadConfig("")
	require.ErrorIs(t, err, cmd.ErrConfigIsInvalid)
	assert.Contains(t, err.Error(), "DB_USER is required")
	assert.Contains(t, err.Error(), "NOTIFY_WORKERS must be positive")
}
