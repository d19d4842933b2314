// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// Every collection gets its own table keyed by the record id. SQLite is
// embedded, so the default deployment needs no database server, and tests
// use ":memory:" for a fresh database per test.
//
// modernc.org/sqlite is a pure Go translation of SQLite: no CGo, no C
// compiler, cross-compiles anywhere Go does.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/sakif/bible-study/internal/repository"
)

// DB wraps a sql.DB connection pool and hands out one typed repository per
// collection. It implements repository.Store.
type DB struct {
	conn *sql.DB
}

var _ repository.Store = (*DB)(nil)

// New opens (or creates) the SQLite database at dbPath and runs migrations.
//
// dbPath examples:
//   - "data/bible.db" → file-based database (persistent)
//   - ":memory:"      → in-memory database (tests)
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Each connection to ":memory:" is a separate, empty database, so the
	// pool must never grow past the single connection that holds the schema.
	if dbPath == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets readers proceed while a write is in progress.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA busy_timeout=5000"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting busy timeout: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) Users() repository.UserRepository           { return &UserDB{conn: db.conn} }
func (db *DB) Notes() repository.NoteRepository           { return &NoteDB{conn: db.conn} }
func (db *DB) Highlights() repository.HighlightRepository { return &HighlightDB{conn: db.conn} }
func (db *DB) Bookmarks() repository.BookmarkRepository   { return &BookmarkDB{conn: db.conn} }
func (db *DB) Friends() repository.FriendRepository       { return &FriendDB{conn: db.conn} }
func (db *DB) Reminders() repository.ReminderRepository   { return &ReminderDB{conn: db.conn} }
func (db *DB) Chats() repository.ChatRepository           { return &ChatDB{conn: db.conn} }

// schema creates one table per collection. CREATE ... IF NOT EXISTS makes
// it safe to run on every startup.
//
// There are deliberately no foreign keys: collections are independent, as
// in a document store, and a chat may name a user id that does not exist.
var schema = []struct {
	name string
	ddl  string
}{
	{"users", `
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    DATETIME NOT NULL
		);`},
	{"notes", `
		CREATE TABLE IF NOT EXISTS notes (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL,
			title      TEXT NOT NULL,
			content    TEXT NOT NULL DEFAULT '',
			book       TEXT NOT NULL DEFAULT '',
			chapter    INTEGER NOT NULL DEFAULT 0,
			verse      INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_notes_user_id ON notes(user_id);`},
	{"highlights", `
		CREATE TABLE IF NOT EXISTS highlights (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL,
			book       TEXT NOT NULL,
			chapter    INTEGER NOT NULL,
			verse      INTEGER NOT NULL,
			text       TEXT NOT NULL DEFAULT '',
			color      TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_highlights_user_id ON highlights(user_id);`},
	{"bookmarks", `
		CREATE TABLE IF NOT EXISTS bookmarks (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL,
			book       TEXT NOT NULL,
			chapter    INTEGER NOT NULL,
			verse      INTEGER NOT NULL,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_bookmarks_user_id ON bookmarks(user_id);`},
	{"friends", `
		CREATE TABLE IF NOT EXISTS friends (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL,
			friend_id  TEXT NOT NULL,
			status     TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_friends_user_id ON friends(user_id, status);
		CREATE INDEX IF NOT EXISTS idx_friends_friend_id ON friends(friend_id, status);`},
	{"reminders", `
		CREATE TABLE IF NOT EXISTS reminders (
			id            TEXT PRIMARY KEY,
			user_id       TEXT NOT NULL,
			title         TEXT NOT NULL,
			description   TEXT NOT NULL DEFAULT '',
			reminder_time DATETIME NOT NULL,
			completed     INTEGER NOT NULL DEFAULT 0,
			friend_id     TEXT,
			created_at    DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_reminders_user_id ON reminders(user_id);`},
	{"chats", `
		CREATE TABLE IF NOT EXISTS chats (
			id            TEXT PRIMARY KEY,
			participant_a TEXT NOT NULL,
			participant_b TEXT NOT NULL,
			created_at    DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_chats_a ON chats(participant_a);
		CREATE INDEX IF NOT EXISTS idx_chats_b ON chats(participant_b);`},
	{"chat_messages", `
		CREATE TABLE IF NOT EXISTS chat_messages (
			id         TEXT PRIMARY KEY,
			chat_id    TEXT NOT NULL,
			sender_id  TEXT NOT NULL,
			content    TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_chat_messages_chat_id ON chat_messages(chat_id);`},
}

func (db *DB) migrate() error {
	for _, table := range schema {
		if _, err := db.conn.Exec(table.ddl); err != nil {
			return fmt.Errorf("creating %s table: %w", table.name, err)
		}
	}
	return nil
}

// isUniqueViolation reports whether err came from a UNIQUE constraint.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// rowsAffected returns how many rows an Exec touched.
func rowsAffected(result sql.Result) (int64, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	return n, nil
}
