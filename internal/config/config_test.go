package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ZOMBIES_PRIMARY.ENV", "local")
	t.Setenv("ZOMBIES_SERVER.PORT", "8080")
	t.Setenv("ZOMBIES_SERVER.READ_TIMEOUT", "30")
	t.Setenv("ZOMBIES_SERVER.WRITE_TIMEOUT", "30")
	t.Setenv("ZOMBIES_SERVER.IDLE_TIMEOUT", "60")
	t.Setenv("ZOMBIES_SERVER.CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	t.Setenv("ZOMBIES_DATABASE.DRIVER", "sqlite")
	t.Setenv("ZOMBIES_DATABASE.PATH", ":memory:")
}

func TestLoadConfig(t *testing.T) {
	t.Run("sqlite with defaults", func(t *testing.T) {
		setBaseEnv(t)

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "local", cfg.Primary.Env)
		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSAllowedOrigins)
		assert.Equal(t, DriverSQLite, cfg.Database.Driver)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, "zombies_session", cfg.Session.CookieName)
		assert.Equal(t, 10*time.Minute, cfg.Session.TTL)
		assert.False(t, cfg.JobsEnabled())
		assert.False(t, cfg.ObituariesEnabled())

		require.NotNil(t, cfg.Observability)
		assert.Equal(t, "zombies", cfg.Observability.ServiceName)
		assert.Equal(t, "local", cfg.Observability.Environment)
	})

	t.Run("session ttl parses durations", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("ZOMBIES_SESSION.TTL", "90s")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, 90*time.Second, cfg.Session.TTL)
	})

	t.Run("unknown driver is rejected", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("ZOMBIES_DATABASE.DRIVER", "oracle")

		_, err := LoadConfig()
		require.Error(t, err)
	})

	t.Run("mysql needs a host", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("ZOMBIES_DATABASE.DRIVER", "mysql")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "requires host")
	})

	t.Run("mysql gets its default port", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("ZOMBIES_DATABASE.DRIVER", "mysql")
		t.Setenv("ZOMBIES_DATABASE.HOST", "localhost")
		t.Setenv("ZOMBIES_DATABASE.USER", "root")
		t.Setenv("ZOMBIES_DATABASE.NAME", "zombies")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, 3306, cfg.Database.Port)
	})

	t.Run("obituaries need redis, key and recipients", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("ZOMBIES_REDIS.ADDRESS", "localhost:6379")
		t.Setenv("ZOMBIES_INTEGRATION.RESEND_API_KEY", "re_test")
		t.Setenv("ZOMBIES_INTEGRATION.OBITUARY_RECIPIENTS", "a@example.com,b@example.com")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.True(t, cfg.ObituariesEnabled())
		assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.Integration.ObituaryRecipients)
	})

	t.Run("list values are split and trimmed", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("ZOMBIES_SERVER.CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://garden.example.com,")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, []string{"http://localhost:3000", "https://garden.example.com"}, cfg.Server.CORSAllowedOrigins)
	})

	t.Run("missing server block fails", func(t *testing.T) {
		t.Setenv("ZOMBIES_PRIMARY.ENV", "local")
		t.Setenv("ZOMBIES_DATABASE.DRIVER", "sqlite")
		t.Setenv("ZOMBIES_DATABASE.PATH", ":memory:")

		_, err := LoadConfig()
		require.Error(t, err)
	})
}

func TestEnvValue(t *testing.T) {
	key, value := envValue("ZOMBIES_SERVER.PORT", "8080")
	assert.Equal(t, "server.port", key)
	assert.Equal(t, "8080", value)

	key, value = envValue("ZOMBIES_INTEGRATION.OBITUARY_RECIPIENTS", " a@example.com ,b@example.com")
	assert.Equal(t, "integration.obituary_recipients", key)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, value)
}

func TestObservabilityValidate(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	require.NoError(t, cfg.Validate())

	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = DefaultObservabilityConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())

	cfg = DefaultObservabilityConfig()
	cfg.Logging.SlowQueryThreshold = -time.Second
	assert.Error(t, cfg.Validate())
}

func TestGetLogLevel(t *testing.T) {
	cfg := &ObservabilityConfig{Environment: "production"}
	assert.Equal(t, "info", cfg.GetLogLevel())

	cfg.Environment = "development"
	assert.Equal(t, "debug", cfg.GetLogLevel())

	cfg.Logging.Level = "warn"
	assert.Equal(t, "warn", cfg.GetLogLevel())
}
