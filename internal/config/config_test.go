package config_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "Tally", cfg.App.Name)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "accounting_data.json", cfg.Data.File)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TTL)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)

	budget, err := cfg.DefaultBudgetAmount()
	require.NoError(t, err)
	assert.True(t, budget.Equal(decimal.NewFromInt(5000)))
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATA_FILE", "/tmp/books.json")
	t.Setenv("DEFAULT_BUDGET", "1234.5")
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("CORS_ORIGINS", "http://a.test,http://b.test")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.App.Port)
	assert.Equal(t, "/tmp/books.json", cfg.Data.File)
	assert.Equal(t, time.Hour, cfg.Auth.TTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)

	budget, err := cfg.DefaultBudgetAmount()
	require.NoError(t, err)
	assert.True(t, budget.Equal(decimal.RequireFromString("1234.5")))
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	_, err := config.Load()
	assert.ErrorContains(t, err, "failed to process config")
}

func TestDefaultBudgetAmount_Invalid(t *testing.T) {
	t.Setenv("DEFAULT_BUDGET", "lots")

	cfg, err := config.Load()
	require.NoError(t, err)

	_, err = cfg.DefaultBudgetAmount()
	assert.Error(t, err)
}
