package config

import (
	"github.com/caarlos0/env/v11"

	"github.com/Koveh/telegram-ads-collector/internal/config/configs"
)

// Config aggregates all configuration sections for the collector. Fields
// are populated from environment variables using the caarlos0/env library;
// the nested structs carry an envPrefix so their fields parse under that
// prefix. See the individual types in the configs package for defaults.
// Use Load to construct a Config.
type Config struct {
	// Env names the deployment environment (e.g. prod, dev). Only used
	// for logging context.
	Env string `env:"ENV" envDefault:"prod"`

	// Ads configures access to the Telegram Ads console. Variables are
	// prefixed with ADS_.
	Ads configs.Ads `envPrefix:"ADS_"`

	// HTTP configures the read-only dashboard API server. Variables are
	// prefixed with HTTP_.
	HTTP configs.HTTP `envPrefix:"HTTP_"`

	// Log configures the structured logger. Variables are prefixed with
	// LOG_.
	Log configs.Logger `envPrefix:"LOG_"`

	// Psql configures the PostgreSQL connection. Variables are prefixed
	// with PSQL_.
	Psql configs.Postgres `envPrefix:"PSQL_"`
}

// Load reads configuration from environment variables into a Config. All
// fields fall back to their declared defaults when no variable is set.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
