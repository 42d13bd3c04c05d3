package config_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/bankledger/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(testLogger(), "testdata/absent.env")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Ledger.OperationTimeout)
	assert.Contains(t, cfg.DB.Url, "bankledger")
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("LEDGER_OPERATION_TIMEOUT", "250ms")

	cfg, err := config.Load(testLogger(), "testdata/absent.env")
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.Ledger.OperationTimeout)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")

	_, err := config.Load(testLogger(), "testdata/absent.env")
	require.Error(t, err)
}
