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

// ChatDB holds the chats and chat_messages tables.
//
// A chat always has exactly two participants, so they are stored as two
// columns instead of a join table. Participants[0] is participant_a.
type ChatDB struct {
	conn *sql.DB
}

var _ repository.ChatRepository = (*ChatDB)(nil)

func (c *ChatDB) Create(ctx context.Context, chat *model.Chat) error {
	if len(chat.Participants) != 2 {
		return fmt.Errorf("sqlite: chat needs exactly 2 participants, got %d", len(chat.Participants))
	}

	chat.ID = xid.New().String()
	chat.CreatedAt = time.Now().UTC()

	_, err := c.conn.ExecContext(ctx,
		`INSERT INTO chats (id, participant_a, participant_b, created_at)
		 VALUES (?, ?, ?, ?)`,
		chat.ID,
		chat.Participants[0],
		chat.Participants[1],
		chat.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating chat: %w", err)
	}
	return nil
}

func (c *ChatDB) ListForParticipant(ctx context.Context, userID string, opts repository.ListOptions) ([]model.Chat, error) {
	rows, err := c.conn.QueryContext(ctx,
		`SELECT id, participant_a, participant_b, created_at
		 FROM chats
		 WHERE participant_a = ? OR participant_b = ?
		 ORDER BY rowid
		 LIMIT ?`,
		userID, userID,
		opts.EffectiveLimit(),
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing chats: %w", err)
	}
	defer rows.Close()

	chats := make([]model.Chat, 0)
	for rows.Next() {
		chat, err := scanChat(rows)
		if err != nil {
			return nil, err
		}
		chats = append(chats, *chat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating chats: %w", err)
	}
	return chats, nil
}

func (c *ChatDB) GetForParticipant(ctx context.Context, chatID, userID string) (*model.Chat, error) {
	chat, err := scanChat(c.conn.QueryRowContext(ctx,
		`SELECT id, participant_a, participant_b, created_at
		 FROM chats
		 WHERE id = ? AND (participant_a = ? OR participant_b = ?)`,
		chatID, userID, userID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFoundMessage("Chat not found")
	}
	if err != nil {
		return nil, err
	}
	return chat, nil
}

func (c *ChatDB) AddMessage(ctx context.Context, msg *model.ChatMessage) error {
	msg.ID = xid.New().String()
	msg.CreatedAt = time.Now().UTC()

	_, err := c.conn.ExecContext(ctx,
		`INSERT INTO chat_messages (id, chat_id, sender_id, content, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		msg.ID,
		msg.ChatID,
		msg.SenderID,
		msg.Content,
		msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: adding message to chat %s: %w", msg.ChatID, err)
	}
	return nil
}

// ListMessages returns messages in the order they were stored.
func (c *ChatDB) ListMessages(ctx context.Context, chatID string, opts repository.ListOptions) ([]model.ChatMessage, error) {
	rows, err := c.conn.QueryContext(ctx,
		`SELECT id, chat_id, sender_id, content, created_at
		 FROM chat_messages
		 WHERE chat_id = ?
		 ORDER BY rowid
		 LIMIT ?`,
		chatID,
		opts.EffectiveLimit(),
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing messages for chat %s: %w", chatID, err)
	}
	defer rows.Close()

	messages := make([]model.ChatMessage, 0)
	for rows.Next() {
		var m model.ChatMessage
		if err := rows.Scan(&m.ID, &m.ChatID, &m.SenderID, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning message row: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating messages: %w", err)
	}
	return messages, nil
}

func scanChat(row rowScanner) (*model.Chat, error) {
	var (
		chat model.Chat
		a, b string
	)
	err := row.Scan(&chat.ID, &a, &b, &chat.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: scanning chat row: %w", err)
	}
	chat.Participants = []string{a, b}
	return &chat, nil
}
