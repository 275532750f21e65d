package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/deppfellow/zombies/internal/config"
	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"
)

// migrations holds the versioned Postgres schema applied by tern.
//
//go:embed migrations/*.sql
var migrations embed.FS

// Migrate brings the schema of the configured database up to date.
//
// Postgres uses tern with the embedded migrations and records the version
// in schema_version. MySQL and SQLite get idempotent CREATE TABLE IF NOT
// EXISTS statements (see schema.go).
func Migrate(ctx context.Context, logger *zerolog.Logger, cfg *config.Config, db *Database) error {
	if db.Driver != config.DriverPostgres {
		return EnsureSchema(ctx, db.SQL, db.Driver, logger)
	}
	return migratePostgres(ctx, logger, cfg)
}

func migratePostgres(ctx context.Context, logger *zerolog.Logger, cfg *config.Config) error {
	// tern wants a single *pgx.Conn, not the pool.
	conn, err := pgx.Connect(ctx, PostgresDSN(cfg.Database))
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	m, err := tern.NewMigrator(ctx, conn, "schema_version")
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}

	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if err := m.Migrate(ctx); err != nil {
		return err
	}

	if from == int32(len(m.Migrations)) {
		logger.Info().Msgf("database schema up to date, version %d", len(m.Migrations))
	} else {
		logger.Info().Msgf("migrated database schema, from %d to %d", from, len(m.Migrations))
	}
	return nil
}

// seedZombies is inserted once into an empty zombie table so the eat form
// has something to offer. Postgres gets the same rows from 002_seed_zombies.sql.
var seedZombies = []string{"Bub", "Big Daddy", "Tarman"}

func seed(ctx context.Context, db *sql.DB, logger *zerolog.Logger) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM zombie").Scan(&count); err != nil {
		return fmt.Errorf("counting zombies: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, name := range seedZombies {
		if _, err := db.ExecContext(ctx, "INSERT INTO zombie (name) VALUES (?)", name); err != nil {
			return fmt.Errorf("seeding zombie %q: %w", name, err)
		}
	}

	logger.Info().Int("zombies", len(seedZombies)).Msg("seeded zombie table")
	return nil
}
