package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Tally"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Data struct {
		File          string `envconfig:"DATA_FILE" default:"accounting_data.json"`
		DefaultBudget string `envconfig:"DEFAULT_BUDGET" default:"5000"`
	}

	Admin struct {
		Username string `envconfig:"ADMIN_USERNAME" default:"admin"`
		Password string `envconfig:"ADMIN_PASSWORD" default:"admin"`
	}

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info"`
		Format string `envconfig:"LOG_FORMAT" default:"text"`
		// File is only used by the TUI, which owns the terminal.
		File string `envconfig:"LOG_FILE" default:"tally.log"`
	}

	Auth struct {
		Secret string        `envconfig:"JWT_SECRET" default:"change-me"`
		TTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"*"`
	}
}

// DefaultBudgetAmount parses DEFAULT_BUDGET.
func (c *Config) DefaultBudgetAmount() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(c.Data.DefaultBudget))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse default budget: %w", err)
	}

	return d, nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
