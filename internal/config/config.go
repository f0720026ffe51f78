// Package config loads runtime settings from the environment and the suggestion policy
// from an optional TOML file.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Store drivers understood by the composition root.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all environment driven settings.
type Config struct {
	Env    string `envconfig:"APP_ENV" default:"development"`
	HTTP   HTTPConfig
	Store  StoreConfig
	Redis  RedisConfig
	Prices PricesConfig

	PolicyFile string `envconfig:"POLICY_FILE"`
}

// HTTPConfig configures the API server.
type HTTPConfig struct {
	Addr            string        `envconfig:"HTTP_ADDR" default:":8000"`
	ShutdownTimeout time.Duration `envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"5s"`
}

// StoreConfig selects and configures the inventory store backend.
type StoreConfig struct {
	Driver      string `envconfig:"STORE_DRIVER" default:"memory"`
	SQLitePath  string `envconfig:"STORE_SQLITE_PATH" default:"data/household.db"`
	PostgresDSN string `envconfig:"STORE_POSTGRES_DSN"`
}

// RedisConfig enables the price cache when URL is set.
type RedisConfig struct {
	URL          string        `envconfig:"REDIS_URL"`
	TTL          time.Duration `envconfig:"REDIS_TTL" default:"1h"`
	DialTimeout  time.Duration `envconfig:"REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"REDIS_WRITE_TIMEOUT" default:"3s"`
}

// PricesConfig points at the retailer price API. Empty BaseURL means the static catalog
// from the policy file is used instead.
type PricesConfig struct {
	BaseURL string `envconfig:"PRICES_BASE_URL"`
}

// Environment returns the parsed deployment environment.
func (c Config) Environment() Environment {
	return ParseEnvironment(c.Env)
}

// Validate checks cross-field requirements envconfig cannot express.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("STORE_SQLITE_PATH is required for driver %q", c.Store.Driver)
		}
	case DriverPostgres:
		if c.Store.PostgresDSN == "" {
			return fmt.Errorf("STORE_POSTGRES_DSN is required for driver %q", c.Store.Driver)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	return nil
}

// Load reads an optional .env file, then the process environment.
func Load(dotenv ...string) (Config, error) {
	// a missing .env is not an error
	_ = godotenv.Load(dotenv...)

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("processing environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
