package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func columnNames(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()
	rows, err := db.Query(`PRAGMA table_info(` + table + `)`)
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var cid int
		var name, typ string
		var notNull, pk int
		var dflt sql.NullString
		require.NoError(t, rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	return names
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// A second run is a no-op.
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"estimates", "sections", "items"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_sections_estimate", "idx_items_section"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ItemsLateColumns(t *testing.T) {
	db := openTestDB(t)

	cols := columnNames(t, db, "items")
	assert.Contains(t, cols, "item_type_name")
	assert.Contains(t, cols, "section_name")
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	err := db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk)
	require.NoError(t, err)
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func TestMigrate_WALModeRequested(t *testing.T) {
	// In-memory SQLite uses "memory" journal mode; WAL only applies to file DBs.
	db := openTestDB(t)

	var mode string
	err := db.QueryRow(`PRAGMA journal_mode`).Scan(&mode)
	require.NoError(t, err)
	assert.Equal(t, "memory", mode)
}

func TestMigrate_DeleteEstimateCascades(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO estimates (id, name, created_at, updated_at)
		VALUES ('e1', 'Kitchen', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO sections (id, estimate_id, name) VALUES (1, 'e1', 'Foundation')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO items (id, section_id, subject) VALUES (10, 1, 'Concrete')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM estimates WHERE id = 'e1'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sections`).Scan(&n))
	assert.Equal(t, 0, n)
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM items`).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestMigrate_ItemRequiresExistingSection(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO items (id, section_id) VALUES (10, 999)`)
	assert.Error(t, err, "orphan item should violate the section foreign key")
}

func TestMigrate_SectionIDUnique(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO estimates (id, name, created_at, updated_at)
		VALUES ('e1', 'Kitchen', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO sections (id, estimate_id, name) VALUES (1, 'e1', 'A')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO sections (id, estimate_id, name) VALUES (1, 'e1', 'B')`)
	assert.Error(t, err)
}
