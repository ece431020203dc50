package config

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v8"
	"github.com/joho/godotenv"
)

// Database drivers understood by the database manager.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds application configuration
type Config struct {
	// Server
	Port       string `env:"PORT" envDefault:"8080"`
	Env        string `env:"ENV" envDefault:"development"`
	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"*"`

	Database DatabaseConfig `envPrefix:"DB_"`

	// Events; publishing is disabled when AMQPURL is empty.
	AMQPURL      string `env:"AMQP_URL"`
	AMQPExchange string `env:"AMQP_EXCHANGE" envDefault:"kukkaro.events"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver string `env:"DRIVER" envDefault:"sqlite"`

	// SQLite
	Path string `env:"PATH" envDefault:"kukkaro.db"`

	// PostgreSQL
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	User     string `env:"USER" envDefault:"kukkaro"`
	Password string `env:"PASSWORD" envDefault:"kukkaro"`
	Name     string `env:"NAME" envDefault:"kukkaro"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load loads configuration from an optional .env file and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	switch cfg.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q: must be %s or %s",
			cfg.Database.Driver, DriverSQLite, DriverPostgres)
	}

	return cfg, nil
}

// DSN returns the connection string for the configured driver.
func (c DatabaseConfig) DSN() string {
	if c.Driver == DriverPostgres {
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
	}
	return c.Path + "?_foreign_keys=on"
}

// MigrationURL returns the database URL in the form golang-migrate expects.
func (c DatabaseConfig) MigrationURL() string {
	if c.Driver == DriverPostgres {
		return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
			c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
	}
	return "sqlite3://" + c.Path + "?_foreign_keys=on"
}
