package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

// Phone uniqueness only applies to non-empty values; rows without a phone are matched by
// labor id or not at all.
var steps = []migrationStep{
	{
		Name: "create_table_applicants",
		SQL: `CREATE TABLE IF NOT EXISTS applicants (
  id         BIGSERIAL PRIMARY KEY,
  full_name  TEXT      NOT NULL DEFAULT '',
  phone      TEXT      NOT NULL DEFAULT '',
  labor_id   TEXT      NOT NULL DEFAULT ''
);`,
	},
	{
		Name: "create_unique_index_applicants_phone",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS uq_applicants_phone ON applicants (phone) WHERE phone <> '';`,
	},
	{
		Name: "create_index_applicants_labor_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_applicants_labor_id ON applicants (labor_id);`,
	},
	{
		Name: "create_index_applicants_full_name",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_applicants_full_name ON applicants (full_name);`,
	},
	{
		Name: "create_table_applications",
		SQL: `CREATE TABLE IF NOT EXISTS applications (
  id               BIGSERIAL PRIMARY KEY,
  applicant_id     BIGINT    NOT NULL REFERENCES applicants (id),
  position         TEXT      NOT NULL DEFAULT '',
  application_date DATE      NOT NULL DEFAULT CURRENT_DATE,
  source_file      TEXT      NOT NULL DEFAULT ''
);`,
	},
	{
		Name: "create_index_applications_applicant_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_applications_applicant_id ON applications (applicant_id);`,
	},
	{
		Name: "create_index_applications_position",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_applications_position ON applications (position);`,
	},
	{
		Name: "create_index_applications_date",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_applications_date ON applications (application_date DESC, id DESC);`,
	},
}

// EnsureMigrated checks whether the 'applications' table exists and creates the schema if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger, dbHost string) error {
	start := time.Now()
	log = log.With(zap.String("component", "database"), zap.String("db_host", dbHost))

	log.Info("db_migration_check", zap.String("status", "starting"))

	var exists bool
	query := "SELECT to_regclass('public.applications') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			zap.String("status", "error"),
			zap.String("error_message", fmt.Sprintf("failed to check sentinel table: %v", err)),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			zap.String("status", "success"),
			zap.String("detail", "schema already exists, skipping migration"),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}

	log.Info("db_migration_start", zap.String("status", "in_progress"))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("status", "error"),
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			zap.String("status", "success"),
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	log.Info("db_migration_success",
		zap.String("status", "success"),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return nil
}
