package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/sakif/bible-study/internal/apperror"
	"github.com/sakif/bible-study/internal/model"
	"github.com/sakif/bible-study/internal/repository"
)

type chatCollection struct {
	chats    *mongo.Collection
	messages *mongo.Collection
}

var _ repository.ChatRepository = (*chatCollection)(nil)

func (c *chatCollection) Create(ctx context.Context, chat *model.Chat) error {
	if len(chat.Participants) != 2 {
		return fmt.Errorf("mongo: chat needs exactly 2 participants, got %d", len(chat.Participants))
	}

	chat.ID = xid.New().String()
	chat.CreatedAt = time.Now().UTC()

	if _, err := c.chats.InsertOne(ctx, chat); err != nil {
		return fmt.Errorf("mongo: creating chat: %w", err)
	}
	return nil
}

// ListForParticipant matches array membership: {"participants": userID}
// selects chats whose participants array contains userID.
func (c *chatCollection) ListForParticipant(ctx context.Context, userID string, opts repository.ListOptions) ([]model.Chat, error) {
	return findAll[model.Chat](ctx, c.chats, bson.M{"participants": userID}, opts)
}

func (c *chatCollection) GetForParticipant(ctx context.Context, chatID, userID string) (*model.Chat, error) {
	var chat model.Chat
	err := c.chats.FindOne(ctx, bson.M{"_id": chatID, "participants": userID}).Decode(&chat)
	if isNoDocuments(err) {
		return nil, apperror.NotFoundMessage("Chat not found")
	}
	if err != nil {
		return nil, fmt.Errorf("mongo: getting chat %s: %w", chatID, err)
	}
	return &chat, nil
}

func (c *chatCollection) AddMessage(ctx context.Context, msg *model.ChatMessage) error {
	msg.ID = xid.New().String()
	msg.CreatedAt = time.Now().UTC()

	if _, err := c.messages.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("mongo: adding message to chat %s: %w", msg.ChatID, err)
	}
	return nil
}

func (c *chatCollection) ListMessages(ctx context.Context, chatID string, opts repository.ListOptions) ([]model.ChatMessage, error) {
	return findAll[model.ChatMessage](ctx, c.messages, bson.M{"chat_id": chatID}, opts)
}
