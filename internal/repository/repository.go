// Package repository declares the storage contracts for every collection.
//
// Each interface is a thin, typed view of one document collection. Methods
// that touch user-owned data always take the owner's id, so ownership is
// enforced in the query itself: a record belonging to someone else is
// indistinguishable from a record that does not exist (apperror.ErrNotFound).
//
// Implementations live in the sqlite and mongo subpackages.
package repository

import (
	"context"

	"github.com/sakif/bible-study/internal/model"
)

// MaxListLimit caps every find-many query. There is no pagination beyond it.
const MaxListLimit = 100

type ListOptions struct {
	Limit int
}

// EffectiveLimit clamps Limit into (0, MaxListLimit].
func (o ListOptions) EffectiveLimit() int {
	if o.Limit <= 0 || o.Limit > MaxListLimit {
		return MaxListLimit
	}
	return o.Limit
}

type UserRepository interface {
	// Create assigns ID and CreatedAt. Returns apperror.ErrConflict if the
	// email is already registered.
	Create(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

type NoteRepository interface {
	Create(ctx context.Context, note *model.Note) error
	ListByUser(ctx context.Context, userID string, opts ListOptions) ([]model.Note, error)
	// Update applies only the non-nil fields of upd and refreshes UpdatedAt.
	Update(ctx context.Context, id, userID string, upd model.NoteUpdate) (*model.Note, error)
	Delete(ctx context.Context, id, userID string) error
}

type HighlightRepository interface {
	Create(ctx context.Context, h *model.Highlight) error
	ListByUser(ctx context.Context, userID string, opts ListOptions) ([]model.Highlight, error)
	Delete(ctx context.Context, id, userID string) error
}

type BookmarkRepository interface {
	Create(ctx context.Context, b *model.Bookmark) error
	ListByUser(ctx context.Context, userID string, opts ListOptions) ([]model.Bookmark, error)
	Delete(ctx context.Context, id, userID string) error
}

type FriendRepository interface {
	Create(ctx context.Context, edge *model.FriendEdge) error
	// ListOutgoing returns edges where userID is the requester.
	ListOutgoing(ctx context.Context, userID string, status model.FriendStatus, opts ListOptions) ([]model.FriendEdge, error)
	// ListIncoming returns edges where userID is the recipient.
	ListIncoming(ctx context.Context, userID string, status model.FriendStatus, opts ListOptions) ([]model.FriendEdge, error)
	// ExistsBetween reports whether any edge links a and b, in either direction.
	ExistsBetween(ctx context.Context, a, b string) (bool, error)
}

type ReminderRepository interface {
	Create(ctx context.Context, r *model.Reminder) error
	ListByUser(ctx context.Context, userID string, opts ListOptions) ([]model.Reminder, error)
	Complete(ctx context.Context, id, userID string) error
}

type ChatRepository interface {
	Create(ctx context.Context, chat *model.Chat) error
	ListForParticipant(ctx context.Context, userID string, opts ListOptions) ([]model.Chat, error)
	// GetForParticipant returns apperror.ErrNotFound when the chat does not
	// exist or userID is not one of its participants.
	GetForParticipant(ctx context.Context, chatID, userID string) (*model.Chat, error)
	AddMessage(ctx context.Context, msg *model.ChatMessage) error
	ListMessages(ctx context.Context, chatID string, opts ListOptions) ([]model.ChatMessage, error)
}

// Store bundles every collection of one backend.
type Store interface {
	Users() UserRepository
	Notes() NoteRepository
	Highlights() HighlightRepository
	Bookmarks() BookmarkRepository
	Friends() FriendRepository
	Reminders() ReminderRepository
	Chats() ChatRepository
	Close() error
}
