package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/bible-study/internal/apperror"
	"github.com/sakif/bible-study/internal/model"
	"github.com/sakif/bible-study/internal/repository"
)

// ChatService manages direct chats and their messages. Only participants
// can read or post; to everyone else the chat does not exist.
type ChatService struct {
	repo   repository.ChatRepository
	logger *slog.Logger
}

func NewChatService(repo repository.ChatRepository, logger *slog.Logger) *ChatService {
	return &ChatService{repo: repo, logger: logger}
}

func (s *ChatService) List(ctx context.Context, userID string) ([]model.Chat, error) {
	chats, err := s.repo.ListForParticipant(ctx, userID, repository.ListOptions{})
	if err != nil {
		s.logger.Error("failed to list chats", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing chats: %w", err)
	}
	return chats, nil
}

// Create opens a chat between the caller and participantID. The target is
// not required to exist, and an existing chat between the pair is not
// reused.
func (s *ChatService) Create(ctx context.Context, userID, participantID string) (*model.Chat, error) {
	participantID = strings.TrimSpace(participantID)
	if participantID == "" {
		return nil, apperror.ValidationFailed("participant_id", "participant_id is required")
	}

	chat := &model.Chat{Participants: []string{userID, participantID}}
	if err := s.repo.Create(ctx, chat); err != nil {
		s.logger.Error("failed to create chat", slog.String("error", err.Error()))
		return nil, fmt.Errorf("creating chat: %w", err)
	}

	s.logger.Info("chat created", slog.String("id", chat.ID))
	return chat, nil
}

// Messages returns the chat's messages in the order they were sent.
func (s *ChatService) Messages(ctx context.Context, userID, chatID string) ([]model.ChatMessage, error) {
	if _, err := s.repo.GetForParticipant(ctx, chatID, userID); err != nil {
		return nil, err
	}

	msgs, err := s.repo.ListMessages(ctx, chatID, repository.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	return msgs, nil
}

func (s *ChatService) Send(ctx context.Context, userID, chatID, content string) (*model.ChatMessage, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperror.ValidationFailed("content", "content is required")
	}

	if _, err := s.repo.GetForParticipant(ctx, chatID, userID); err != nil {
		return nil, err
	}

	msg := &model.ChatMessage{
		ChatID:   chatID,
		SenderID: userID,
		Content:  content,
	}
	if err := s.repo.AddMessage(ctx, msg); err != nil {
		s.logger.Error("failed to send message", slog.String("error", err.Error()))
		return nil, fmt.Errorf("sending message: %w", err)
	}

	s.logger.Debug("message sent", slog.String("chatID", chatID), slog.String("id", msg.ID))
	return msg, nil
}
