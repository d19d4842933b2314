package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/bible-study/internal/apperror"
	"github.com/sakif/bible-study/internal/model"
	"github.com/sakif/bible-study/internal/repository"
)

// NoteDB is the notes collection.
type NoteDB struct {
	conn *sql.DB
}

var _ repository.NoteRepository = (*NoteDB)(nil)

// Create inserts a note. CreatedAt and UpdatedAt are set to the same instant.
func (n *NoteDB) Create(ctx context.Context, note *model.Note) error {
	note.ID = xid.New().String()
	now := time.Now().UTC()
	note.CreatedAt = now
	note.UpdatedAt = now

	_, err := n.conn.ExecContext(ctx,
		`INSERT INTO notes (id, user_id, title, content, book, chapter, verse, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		note.ID,
		note.UserID,
		note.Title,
		note.Content,
		note.Book,
		note.Chapter,
		note.Verse,
		note.CreatedAt,
		note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating note: %w", err)
	}
	return nil
}

func (n *NoteDB) ListByUser(ctx context.Context, userID string, opts repository.ListOptions) ([]model.Note, error) {
	rows, err := n.conn.QueryContext(ctx,
		`SELECT id, user_id, title, content, book, chapter, verse, created_at, updated_at
		 FROM notes
		 WHERE user_id = ?
		 ORDER BY rowid
		 LIMIT ?`,
		userID,
		opts.EffectiveLimit(),
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing notes: %w", err)
	}
	defer rows.Close()

	notes := make([]model.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating notes: %w", err)
	}
	return notes, nil
}

// Update applies a partial update.
//
// COALESCE(?, col) keeps the stored value whenever the bound argument is
// NULL, and a nil *string or *int binds as NULL. So one statement handles
// every combination of present and absent fields.
func (n *NoteDB) Update(ctx context.Context, id, userID string, upd model.NoteUpdate) (*model.Note, error) {
	result, err := n.conn.ExecContext(ctx,
		`UPDATE notes
		 SET title      = COALESCE(?, title),
		     content    = COALESCE(?, content),
		     book       = COALESCE(?, book),
		     chapter    = COALESCE(?, chapter),
		     verse      = COALESCE(?, verse),
		     updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		upd.Title,
		upd.Content,
		upd.Book,
		upd.Chapter,
		upd.Verse,
		time.Now().UTC(),
		id,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: updating note %s: %w", id, err)
	}

	affected, err := rowsAffected(result)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, apperror.NotFound("note", id)
	}

	note, err := scanNote(n.conn.QueryRowContext(ctx,
		`SELECT id, user_id, title, content, book, chapter, verse, created_at, updated_at
		 FROM notes WHERE id = ? AND user_id = ?`,
		id, userID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		// Deleted between the UPDATE and this read.
		return nil, apperror.NotFound("note", id)
	}
	if err != nil {
		return nil, err
	}
	return note, nil
}

// Delete removes a note only if userID owns it.
func (n *NoteDB) Delete(ctx context.Context, id, userID string) error {
	return deleteOwned(ctx, n.conn, "notes", "note", id, userID)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*model.Note, error) {
	var note model.Note
	err := row.Scan(
		&note.ID,
		&note.UserID,
		&note.Title,
		&note.Content,
		&note.Book,
		&note.Chapter,
		&note.Verse,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: scanning note row: %w", err)
	}
	return &note, nil
}

// deleteOwned deletes the row matching both id and user_id. table is a
// package constant, never user input.
func deleteOwned(ctx context.Context, conn *sql.DB, table, resource, id, userID string) error {
	result, err := conn.ExecContext(ctx,
		`DELETE FROM `+table+` WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting %s %s: %w", resource, id, err)
	}

	affected, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperror.NotFound(resource, id)
	}
	return nil
}
