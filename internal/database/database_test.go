package database

import (
	"context"
	"testing"
	"time"

	"github.com/deppfellow/zombies/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteConfig() *config.Config {
	return &config.Config{
		Primary: config.Primary{Env: "test"},
		Database: config.DatabaseConfig{
			Driver:          config.DriverSQLite,
			Path:            ":memory:",
			MaxOpenConns:    1,
			ConnMaxLifetime: 60,
			ConnMaxIdleTime: 60,
		},
	}
}

func TestNewSQLiteAndMigrate(t *testing.T) {
	logger := zerolog.Nop()
	cfg := sqliteConfig()
	ctx := context.Background()

	db, err := New(cfg, &logger, nil)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, config.DriverSQLite, db.Driver)
	assert.Nil(t, db.Pool)
	require.NotNil(t, db.SQL)
	require.NoError(t, db.Ping(ctx))

	require.NoError(t, Migrate(ctx, &logger, cfg, db))
	// Second run must be a no-op: same tables, no second seed.
	require.NoError(t, Migrate(ctx, &logger, cfg, db))

	var zombies int
	require.NoError(t, db.SQL.QueryRowContext(ctx, "SELECT COUNT(*) FROM zombie").Scan(&zombies))
	assert.Equal(t, len(seedZombies), zombies)

	t.Run("check constraint keeps alive and eatenBy in step", func(t *testing.T) {
		_, err := db.SQL.ExecContext(ctx, "INSERT INTO person (name, alive, eatenBy) VALUES ('Ana', 1, 1)")
		assert.Error(t, err)
	})

	t.Run("foreign key rejects unknown zombie", func(t *testing.T) {
		_, err := db.SQL.ExecContext(ctx, "INSERT INTO person (name, alive, eatenBy) VALUES ('Ana', 0, 999)")
		assert.Error(t, err)
	})
}

func TestDSNs(t *testing.T) {
	pg := PostgresDSN(config.DatabaseConfig{
		Host: "db", Port: 5432, User: "garden", Password: "p@ss word", Name: "zombies", SSLMode: "disable",
	})
	assert.Equal(t, "postgres://garden:p%40ss+word@db:5432/zombies?sslmode=disable", pg)

	my := MySQLDSN(config.DatabaseConfig{Host: "db", Port: 3306, User: "root", Password: "secret", Name: "zombies"})
	assert.Contains(t, my, "root:secret@tcp(db:3306)/zombies")
	assert.Contains(t, my, "parseTime=true")
	assert.Contains(t, my, "clientFoundRows=true")

	normalized, err := NormalizeMySQLDSN("root:secret@tcp(db:3306)/zombies")
	require.NoError(t, err)
	assert.Contains(t, normalized, "clientFoundRows=true")
	assert.Contains(t, normalized, "parseTime=true")

	_, err = NormalizeMySQLDSN("not a dsn")
	assert.Error(t, err)

	assert.Equal(t, "file::memory:?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", SQLiteDSN(":memory:"))
}

func TestEnsureSchemaUnknownDriver(t *testing.T) {
	logger := zerolog.Nop()
	err := EnsureSchema(context.Background(), nil, "oracle", &logger)
	assert.Error(t, err)
}

func TestSQLiteMemoryOutlivesPoolTimeouts(t *testing.T) {
	logger := zerolog.Nop()
	cfg := sqliteConfig()
	cfg.Database.ConnMaxLifetime = 1
	cfg.Database.ConnMaxIdleTime = 1
	ctx := context.Background()

	db, err := New(cfg, &logger, nil)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, Migrate(ctx, &logger, cfg, db))

	time.Sleep(1500 * time.Millisecond)

	var zombies int
	require.NoError(t, db.SQL.QueryRowContext(ctx, "SELECT COUNT(*) FROM zombie").Scan(&zombies))
	assert.Equal(t, len(seedZombies), zombies)
}
