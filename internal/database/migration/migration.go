package migration

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_categories",
		SQL: `CREATE TABLE IF NOT EXISTS categories (
  id              SERIAL PRIMARY KEY,
  name            TEXT   NOT NULL,
  normalized_name TEXT   NOT NULL UNIQUE
);`,
	},
	{
		Name: "create_table_cars",
		SQL: `CREATE TABLE IF NOT EXISTS cars (
  id          SERIAL           PRIMARY KEY,
  name        TEXT             NOT NULL,
  description TEXT             NOT NULL DEFAULT '',
  price       DOUBLE PRECISION NOT NULL CHECK (price >= 0),
  image       TEXT             NOT NULL DEFAULT '',
  mime_type   TEXT             NOT NULL DEFAULT '',
  category_id INTEGER          NOT NULL REFERENCES categories (id)
);`,
	},
	{
		Name: "create_index_cars_category_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_cars_category_id ON cars (category_id);`,
	},
	{
		Name: "seed_categories",
		SQL: `INSERT INTO categories (name, normalized_name) VALUES
  ('Sedans', 'sedan'),
  ('Hatchbacks', 'hatchback'),
  ('SUVs', 'suv'),
  ('Coupes', 'coupe'),
  ('Pickups', 'pickup')
ON CONFLICT (normalized_name) DO NOTHING;`,
	},
}

// EnsureMigrated checks if the 'cars' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, logger *slog.Logger, dbHost string) error {
	start := time.Now()
	log := logger.With("component", "database", "db_host", dbHost)

	log.Info("db_migration_check", "status", "starting")

	var exists bool
	query := "SELECT to_regclass('public.cars') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			"status", "error",
			"error_message", fmt.Sprintf("failed to check sentinel table: %v", err),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			"status", "success",
			"detail", "schema already exists, skipping migration",
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}

	log.Info("db_migration_start", "status", "in_progress")

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				"status", "error",
				"migration_step", step.Name,
				"error_message", err.Error(),
				"duration_ms", time.Since(start).Milliseconds(),
				"step_duration_ms", time.Since(stepStart).Milliseconds(),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			"status", "success",
			"migration_step", step.Name,
			"step_duration_ms", time.Since(stepStart).Milliseconds(),
		)
	}

	log.Info("db_migration_success",
		"status", "success",
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
