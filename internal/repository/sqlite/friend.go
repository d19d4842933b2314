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

// FriendDB is the friends collection. Each row is a directed edge from the
// requester (user_id) to the recipient (friend_id).
type FriendDB struct {
	conn *sql.DB
}

var _ repository.FriendRepository = (*FriendDB)(nil)

func (f *FriendDB) Create(ctx context.Context, edge *model.FriendEdge) error {
	edge.ID = xid.New().String()
	edge.CreatedAt = time.Now().UTC()

	_, err := f.conn.ExecContext(ctx,
		`INSERT INTO friends (id, user_id, friend_id, status, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		edge.ID,
		edge.UserID,
		edge.FriendID,
		string(edge.Status),
		edge.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating friend edge: %w", err)
	}
	return nil
}

func (f *FriendDB) ListOutgoing(ctx context.Context, userID string, status model.FriendStatus, opts repository.ListOptions) ([]model.FriendEdge, error) {
	return f.list(ctx, "user_id", userID, status, opts)
}

func (f *FriendDB) ListIncoming(ctx context.Context, userID string, status model.FriendStatus, opts repository.ListOptions) ([]model.FriendEdge, error) {
	return f.list(ctx, "friend_id", userID, status, opts)
}

// ExistsBetween checks both directions in one query.
func (f *FriendDB) ExistsBetween(ctx context.Context, a, b string) (bool, error) {
	var exists bool
	err := f.conn.QueryRowContext(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM friends
			WHERE (user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)
		 )`,
		a, b, b, a,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("sqlite: checking friend edge: %w", err)
	}
	return exists, nil
}

// list filters on one side of the edge. column is "user_id" or "friend_id".
func (f *FriendDB) list(ctx context.Context, column, userID string, status model.FriendStatus, opts repository.ListOptions) ([]model.FriendEdge, error) {
	rows, err := f.conn.QueryContext(ctx,
		`SELECT id, user_id, friend_id, status, created_at
		 FROM friends
		 WHERE `+column+` = ? AND status = ?
		 ORDER BY rowid
		 LIMIT ?`,
		userID,
		string(status),
		opts.EffectiveLimit(),
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing friend edges: %w", err)
	}
	defer rows.Close()

	edges := make([]model.FriendEdge, 0)
	for rows.Next() {
		var (
			e      model.FriendEdge
			status string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.FriendID, &status, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning friend row: %w", err)
		}
		e.Status = model.FriendStatus(status)
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating friend edges: %w", err)
	}
	return edges, nil
}
