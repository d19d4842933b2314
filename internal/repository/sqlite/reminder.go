package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/bible-study/internal/apperror"
	"github.com/sakif/bible-study/internal/model"
	"github.com/sakif/bible-study/internal/repository"
)

// ReminderDB is the reminders collection.
type ReminderDB struct {
	conn *sql.DB
}

var _ repository.ReminderRepository = (*ReminderDB)(nil)

func (r *ReminderDB) Create(ctx context.Context, rem *model.Reminder) error {
	rem.ID = xid.New().String()
	rem.CreatedAt = time.Now().UTC()

	// A nil *string binds as NULL, which is how an absent friend is stored.
	_, err := r.conn.ExecContext(ctx,
		`INSERT INTO reminders (id, user_id, title, description, reminder_time, completed, friend_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rem.ID,
		rem.UserID,
		rem.Title,
		rem.Description,
		rem.ReminderTime.UTC(),
		rem.Completed,
		rem.FriendID,
		rem.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating reminder: %w", err)
	}
	return nil
}

func (r *ReminderDB) ListByUser(ctx context.Context, userID string, opts repository.ListOptions) ([]model.Reminder, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT id, user_id, title, description, reminder_time, completed, friend_id, created_at
		 FROM reminders
		 WHERE user_id = ?
		 ORDER BY rowid
		 LIMIT ?`,
		userID,
		opts.EffectiveLimit(),
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing reminders: %w", err)
	}
	defer rows.Close()

	reminders := make([]model.Reminder, 0)
	for rows.Next() {
		var (
			rem      model.Reminder
			friendID sql.NullString
		)
		if err := rows.Scan(
			&rem.ID, &rem.UserID, &rem.Title, &rem.Description,
			&rem.ReminderTime, &rem.Completed, &friendID, &rem.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning reminder row: %w", err)
		}
		if friendID.Valid {
			rem.FriendID = &friendID.String
		}
		reminders = append(reminders, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating reminders: %w", err)
	}
	return reminders, nil
}

// Complete marks a reminder done. Completing an already completed reminder
// still counts as a match, so it is not reported as missing.
func (r *ReminderDB) Complete(ctx context.Context, id, userID string) error {
	result, err := r.conn.ExecContext(ctx,
		`UPDATE reminders SET completed = 1 WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: completing reminder %s: %w", id, err)
	}

	affected, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperror.NotFound("reminder", id)
	}
	return nil
}
