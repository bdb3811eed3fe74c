package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations is the ordered list of schema statements. Statements are
// idempotent so the whole list re-runs safely on every open.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS rule_sets (
		id                      TEXT PRIMARY KEY,
		scope_kind              TEXT NOT NULL CHECK(scope_kind IN ('week','template')),
		name                    TEXT NOT NULL DEFAULT '',
		max_task_min            INTEGER NOT NULL DEFAULT 120,
		max_long_task_min       INTEGER NOT NULL DEFAULT 180,
		long_task_threshold_min INTEGER NOT NULL DEFAULT 120,
		priority_weight         REAL NOT NULL DEFAULT 0.7,
		time_weight             REAL NOT NULL DEFAULT 0.3,
		randomness_factor       REAL NOT NULL DEFAULT 0.05,
		working_days            TEXT NOT NULL DEFAULT 'monday,tuesday,wednesday,thursday,friday',
		created_at              TEXT NOT NULL,
		updated_at              TEXT NOT NULL,
		UNIQUE(scope_kind, name)
	)`,

	`CREATE TABLE IF NOT EXISTS time_blocks (
		id          TEXT PRIMARY KEY,
		rule_set_id TEXT NOT NULL REFERENCES rule_sets(id) ON DELETE CASCADE,
		day         TEXT NOT NULL,
		start_time  TEXT NOT NULL,
		end_time    TEXT NOT NULL,
		enabled     INTEGER NOT NULL DEFAULT 1,
		resource_id TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_time_blocks_rule_set ON time_blocks(rule_set_id)`,
	`CREATE INDEX IF NOT EXISTS idx_rule_sets_scope ON rule_sets(scope_kind, name)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
