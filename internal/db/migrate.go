package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

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
	if err := migrateBackfillSectionNames(db); err != nil {
		return fmt.Errorf("backfilling item section names: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS estimates (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS sections (
		id          INTEGER PRIMARY KEY,
		estimate_id TEXT NOT NULL REFERENCES estimates(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		is_optional INTEGER NOT NULL DEFAULT 0,
		order_index INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sections_estimate ON sections(estimate_id, order_index)`,

	`CREATE TABLE IF NOT EXISTS items (
		id          INTEGER PRIMARY KEY,
		section_id  INTEGER NOT NULL REFERENCES sections(id) ON DELETE CASCADE,
		order_index INTEGER NOT NULL DEFAULT 0,
		subject     TEXT NOT NULL DEFAULT '',
		quantity    REAL NOT NULL DEFAULT 0,
		unit        TEXT NOT NULL DEFAULT '',
		unit_cost   TEXT NOT NULL DEFAULT '',
		total       TEXT NOT NULL DEFAULT '',
		markup      REAL NOT NULL DEFAULT 0,
		date_added  TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_items_section ON items(section_id, order_index)`,

	// Columns added after the first release.
	`ALTER TABLE items ADD COLUMN item_type_name TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE items ADD COLUMN section_name TEXT NOT NULL DEFAULT ''`,
}

// migrateBackfillSectionNames fills the denormalized items.section_name for
// rows written before the column existed.
func migrateBackfillSectionNames(db *sql.DB) error {
	ctx := context.Background()
	_, err := db.ExecContext(ctx, `
		UPDATE items
		SET section_name = (SELECT s.name FROM sections s WHERE s.id = items.section_id)
		WHERE section_name = ''`)
	return err
}
