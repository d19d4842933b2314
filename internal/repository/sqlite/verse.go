package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/bible-study/internal/model"
	"github.com/sakif/bible-study/internal/repository"
)

// HighlightDB is the highlights collection.
type HighlightDB struct {
	conn *sql.DB
}

var _ repository.HighlightRepository = (*HighlightDB)(nil)

func (h *HighlightDB) Create(ctx context.Context, hl *model.Highlight) error {
	hl.ID = xid.New().String()
	hl.CreatedAt = time.Now().UTC()

	_, err := h.conn.ExecContext(ctx,
		`INSERT INTO highlights (id, user_id, book, chapter, verse, text, color, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		hl.ID,
		hl.UserID,
		hl.Book,
		hl.Chapter,
		hl.Verse,
		hl.Text,
		hl.Color,
		hl.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating highlight: %w", err)
	}
	return nil
}

func (h *HighlightDB) ListByUser(ctx context.Context, userID string, opts repository.ListOptions) ([]model.Highlight, error) {
	rows, err := h.conn.QueryContext(ctx,
		`SELECT id, user_id, book, chapter, verse, text, color, created_at
		 FROM highlights
		 WHERE user_id = ?
		 ORDER BY rowid
		 LIMIT ?`,
		userID,
		opts.EffectiveLimit(),
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing highlights: %w", err)
	}
	defer rows.Close()

	highlights := make([]model.Highlight, 0)
	for rows.Next() {
		var hl model.Highlight
		if err := rows.Scan(
			&hl.ID, &hl.UserID, &hl.Book, &hl.Chapter, &hl.Verse,
			&hl.Text, &hl.Color, &hl.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning highlight row: %w", err)
		}
		highlights = append(highlights, hl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating highlights: %w", err)
	}
	return highlights, nil
}

func (h *HighlightDB) Delete(ctx context.Context, id, userID string) error {
	return deleteOwned(ctx, h.conn, "highlights", "highlight", id, userID)
}

// BookmarkDB is the bookmarks collection.
type BookmarkDB struct {
	conn *sql.DB
}

var _ repository.BookmarkRepository = (*BookmarkDB)(nil)

func (b *BookmarkDB) Create(ctx context.Context, bm *model.Bookmark) error {
	bm.ID = xid.New().String()
	bm.CreatedAt = time.Now().UTC()

	_, err := b.conn.ExecContext(ctx,
		`INSERT INTO bookmarks (id, user_id, book, chapter, verse, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		bm.ID,
		bm.UserID,
		bm.Book,
		bm.Chapter,
		bm.Verse,
		bm.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating bookmark: %w", err)
	}
	return nil
}

func (b *BookmarkDB) ListByUser(ctx context.Context, userID string, opts repository.ListOptions) ([]model.Bookmark, error) {
	rows, err := b.conn.QueryContext(ctx,
		`SELECT id, user_id, book, chapter, verse, created_at
		 FROM bookmarks
		 WHERE user_id = ?
		 ORDER BY rowid
		 LIMIT ?`,
		userID,
		opts.EffectiveLimit(),
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing bookmarks: %w", err)
	}
	defer rows.Close()

	bookmarks := make([]model.Bookmark, 0)
	for rows.Next() {
		var bm model.Bookmark
		if err := rows.Scan(
			&bm.ID, &bm.UserID, &bm.Book, &bm.Chapter, &bm.Verse, &bm.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning bookmark row: %w", err)
		}
		bookmarks = append(bookmarks, bm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating bookmarks: %w", err)
	}
	return bookmarks, nil
}

func (b *BookmarkDB) Delete(ctx context.Context, id, userID string) error {
	return deleteOwned(ctx, b.conn, "bookmarks", "bookmark", id, userID)
}
