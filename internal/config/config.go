// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file,
// when present), loads them into structured Go types and validates that
// required values are present so they can be reused across the
// application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (sessions, rate
//     limiting, observability).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it gets loaded into the
	// process env before any of the code below reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the prefix ZOMBIES_. The prefix is removed and
	the rest is lowercased; "." is the nesting delimiter, so

		ZOMBIES_SERVER.PORT          -> server.port
		ZOMBIES_DATABASE.DRIVER      -> database.driver
		ZOMBIES_SESSION.TTL          -> session.ttl

	Underscores are kept as-is because several keys contain them
	(read_timeout, max_open_conns, ...).
*/

// EnvPrefix is the prefix every configuration variable must carry.
const EnvPrefix = "ZOMBIES_"

// Supported values for DatabaseConfig.Driver.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Config is the root configuration object for the application.
//
// Redis, Session, RateLimit and Integration are optional blocks: missing
// values are filled by applyDefaults. Observability is a pointer because
// it is optional as a whole; if not provided, defaults are injected.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis"`
	Session       SessionConfig        `koanf:"session"`
	RateLimit     RateLimitConfig      `koanf:"rate_limit"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains connection parameters and pool tuning.
//
// Driver selects the backend:
//   - postgres: pgx pool, tern migrations
//   - mysql:    database/sql with go-sql-driver/mysql
//   - sqlite:   database/sql with modernc.org/sqlite, Path is the file
//     (":memory:" works for throwaway runs)
//
// Host/User/Name are required for the networked drivers only; see Validate.
// ConnMaxLifetime and ConnMaxIdleTime are in seconds. SQLite ignores the
// pool settings and keeps one connection open for the process lifetime.
type DatabaseConfig struct {
	Driver          string `koanf:"driver" validate:"required,oneof=postgres mysql sqlite"`
	Host            string `koanf:"host"`
	Port            int    `koanf:"port"`
	User            string `koanf:"user"`
	Password        string `koanf:"password"`
	Name            string `koanf:"name"`
	SSLMode         string `koanf:"ssl_mode"`
	Path            string `koanf:"path"`
	MaxOpenConns    int    `koanf:"max_open_conns"`
	MaxIdleConns    int    `koanf:"max_idle_conns"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time"`
}

// RedisConfig contains Redis connection details.
// Address is "host:port". Empty means flash messages are kept in memory
// and background jobs are disabled.
type RedisConfig struct {
	Address string `koanf:"address"`
}

// SessionConfig controls the cookie that scopes flash messages.
type SessionConfig struct {
	CookieName string        `koanf:"cookie_name"`
	TTL        time.Duration `koanf:"ttl"`
	Secure     bool          `koanf:"secure"`
}

// RateLimitConfig throttles the mutating /people routes per client IP.
// Rate is requests per second.
type RateLimitConfig struct {
	Enabled bool    `koanf:"enabled"`
	Rate    float64 `koanf:"rate"`
	Burst   int     `koanf:"burst"`
}

// IntegrationConfig holds third-party credentials.
//
// Obituary emails are only sent when ResendAPIKey and at least one
// recipient are set.
type IntegrationConfig struct {
	ResendAPIKey       string   `koanf:"resend_api_key"`
	EmailFrom          string   `koanf:"email_from"`
	ObituaryRecipients []string `koanf:"obituary_recipients"`
}

// LoadConfig loads configuration from ZOMBIES_ environment variables.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load initial env variables: %w", err)
	}

	return fromKoanf(k)
}

// listKeys are read from comma-separated env values.
var listKeys = map[string]bool{
	"server.cors_allowed_origins":        true,
	"integration.obituary_recipients":    true,
	"observability.health_checks.checks": true,
}

// envValue maps ZOMBIES_SERVER.PORT to server.port and splits list keys,
// dropping blank items.
func envValue(key, value string) (string, interface{}) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	if !listKeys[key] {
		return key, value
	}

	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return key, items
}

// fromKoanf unmarshals, validates and defaults the values held by k.
//
// Order matters:
//   - tag validation runs first (required blocks, driver enum)
//   - defaults fill the optional blocks
//   - custom validation checks cross-field rules on the final values
func fromKoanf(k *koanf.Koanf) (*Config, error) {
	mainConfig := &Config{}

	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	validate := validator.New()

	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	mainConfig.applyDefaults()

	if err := mainConfig.Database.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database config: %w", err)
	}

	// Service name and environment always follow the primary block so
	// logs and traces are tagged consistently.
	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}
	mainConfig.Observability.ServiceName = "zombies"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

func (c *Config) applyDefaults() {
	db := &c.Database
	if db.Port == 0 {
		switch db.Driver {
		case DriverPostgres:
			db.Port = 5432
		case DriverMySQL:
			db.Port = 3306
		}
	}
	if db.SSLMode == "" {
		db.SSLMode = "disable"
	}
	if db.MaxOpenConns == 0 {
		db.MaxOpenConns = 25
	}
	if db.MaxIdleConns == 0 {
		db.MaxIdleConns = 5
	}
	if db.ConnMaxLifetime == 0 {
		db.ConnMaxLifetime = 300
	}
	if db.ConnMaxIdleTime == 0 {
		db.ConnMaxIdleTime = 600
	}

	if c.Session.CookieName == "" {
		c.Session.CookieName = "zombies_session"
	}
	if c.Session.TTL == 0 {
		c.Session.TTL = 10 * time.Minute
	}

	if c.RateLimit.Rate == 0 {
		c.RateLimit.Rate = 10
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 20
	}

	if c.Integration.EmailFrom == "" {
		c.Integration.EmailFrom = "Zombie Garden <garden@zombies.local>"
	}
}

// Validate checks the fields each driver needs.
func (d *DatabaseConfig) Validate() error {
	switch d.Driver {
	case DriverPostgres, DriverMySQL:
		if d.Host == "" || d.User == "" || d.Name == "" {
			return fmt.Errorf("%s driver requires host, user and name", d.Driver)
		}
	case DriverSQLite:
		if d.Path == "" {
			return fmt.Errorf("sqlite driver requires path")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", d.Driver)
	}

	if d.MaxIdleConns > d.MaxOpenConns {
		return fmt.Errorf("max_idle_conns (%d) must not exceed max_open_conns (%d)", d.MaxIdleConns, d.MaxOpenConns)
	}

	return nil
}

// JobsEnabled reports whether background jobs can run.
// Asynq keeps its queues in Redis, so no Redis means no jobs.
func (c *Config) JobsEnabled() bool {
	return c.Redis.Address != ""
}

// ObituariesEnabled reports whether eaten people trigger an email.
func (c *Config) ObituariesEnabled() bool {
	return c.JobsEnabled() &&
		c.Integration.ResendAPIKey != "" &&
		len(c.Integration.ObituaryRecipients) > 0
}
