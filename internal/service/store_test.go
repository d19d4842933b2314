package service

import (
	"testing"

	"github.com/sakif/bible-study/internal/repository/sqlite"
)

// newTestStore returns an empty in-memory SQLite store. Services whose
// rules span several collections are tested against it instead of fakes.
func newTestStore(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("sqlite.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
