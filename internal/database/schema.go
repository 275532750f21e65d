package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/deppfellow/zombies/internal/config"
	"github.com/rs/zerolog"
)

// schemas are applied in order on every start; each statement is idempotent.
var schemas = map[string][]string{
	config.DriverMySQL: {
		`CREATE TABLE IF NOT EXISTS zombie (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
		`CREATE TABLE IF NOT EXISTS person (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			alive BOOLEAN NOT NULL DEFAULT TRUE,
			eatenBy INT NULL,
			INDEX idx_person_eatenby (eatenBy),
			CONSTRAINT fk_person_zombie FOREIGN KEY (eatenBy) REFERENCES zombie(id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	},
	config.DriverSQLite: {
		`CREATE TABLE IF NOT EXISTS zombie (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS person (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			alive BOOLEAN NOT NULL DEFAULT 1,
			eatenBy INTEGER NULL REFERENCES zombie(id),
			CHECK (alive = (eatenBy IS NULL))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_person_eatenby ON person(eatenBy)`,
	},
}

// EnsureSchema creates the garden tables for a database/sql driver and
// seeds the zombie table when it is empty.
func EnsureSchema(ctx context.Context, db *sql.DB, driver string, logger *zerolog.Logger) error {
	statements, ok := schemas[driver]
	if !ok {
		return fmt.Errorf("no schema for driver %s", driver)
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("applying %s schema: %w", driver, err)
		}
	}

	return seed(ctx, db, logger)
}
