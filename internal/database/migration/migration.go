package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"realtyapi/internal/logger"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinel is the relation created by the last step; its presence means every
// step has run.
const sentinel = "public.idx_notifications_user_created_at"

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_leads",
		SQL: `CREATE TABLE IF NOT EXISTS leads (
  id         TEXT        PRIMARY KEY,
  owner_id   TEXT        NOT NULL,
  status     TEXT        NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_leads_owner_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_leads_owner_status ON leads (owner_id, status);`,
	},
	{
		Name: "create_table_properties",
		SQL: `CREATE TABLE IF NOT EXISTS properties (
  id             TEXT             PRIMARY KEY,
  owner_id       TEXT             NOT NULL,
  status         TEXT             NOT NULL,
  expected_price DOUBLE PRECISION NULL,
  sold_at        TIMESTAMPTZ      NULL
);`,
	},
	{
		Name: "create_index_properties_owner_status_sold_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_properties_owner_status_sold_at ON properties (owner_id, status, sold_at);`,
	},
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id                  UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  owner_id            TEXT        NULL,
  file_name           TEXT        NOT NULL DEFAULT '',
  storage_path        TEXT        NOT NULL UNIQUE,
  size                BIGINT      NOT NULL CHECK (size >= 0),
  content_type        TEXT        NOT NULL,
  verification_status TEXT        NOT NULL DEFAULT 'pending',
  created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_documents_owner_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_owner_created_at ON documents (owner_id, created_at DESC);`,
	},
	{
		Name: "create_index_documents_verification_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_verification_status ON documents (verification_status);`,
	},
	{
		Name: "create_table_notifications",
		SQL: `CREATE TABLE IF NOT EXISTS notifications (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  user_id     TEXT        NOT NULL,
  message     TEXT        NOT NULL,
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  is_read     BOOLEAN     NOT NULL DEFAULT FALSE,
  action_link TEXT        NOT NULL
);`,
	},
	{
		Name: "create_index_notifications_user_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_notifications_user_created_at ON notifications (user_id, created_at DESC);`,
	},
}

// EnsureMigrated runs the schema steps unless the sentinel relation already exists.
// Every step is idempotent, so a run interrupted halfway is safe to repeat.
func EnsureMigrated(ctx context.Context, db *sql.DB, dbHost string) error {
	start := time.Now()
	log := logger.WithContext(ctx).With("component", "database", "db_host", dbHost)

	log.Info("db_migration_check")

	var exists bool
	query := "SELECT to_regclass('" + sentinel + "') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			"reason", "schema already exists",
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}

	log.Info("db_migration_start", "steps", len(steps))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				"migration_step", step.Name,
				"error", err,
				"duration_ms", time.Since(start).Milliseconds(),
				"step_duration_ms", time.Since(stepStart).Milliseconds(),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		log.Info("db_migration_step",
			"migration_step", step.Name,
			"step_duration_ms", time.Since(stepStart).Milliseconds(),
		)
	}

	log.Info("db_migration_success", "duration_ms", time.Since(start).Milliseconds())
	return nil
}
