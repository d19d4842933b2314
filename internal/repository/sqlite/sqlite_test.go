package sqlite

import (
	"testing"
)

// newTestDB creates a fresh in-memory SQLite database for each test.
// Every test gets its own schema, so tests never see each other's rows.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)

	// New already ran migrate once; running it again must be a no-op.
	if err := db.migrate(); err != nil {
		t.Fatalf("second migrate() error = %v", err)
	}
}

func TestMigrate_CreatesEveryTable(t *testing.T) {
	db := newTestDB(t)

	for _, table := range schema {
		var name string
		err := db.conn.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`,
			table.name,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q missing: %v", table.name, err)
		}
	}
}
