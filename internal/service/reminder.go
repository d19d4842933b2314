package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sakif/bible-study/internal/apperror"
	"github.com/sakif/bible-study/internal/model"
	"github.com/sakif/bible-study/internal/repository"
)

type ReminderService struct {
	repo   repository.ReminderRepository
	logger *slog.Logger
}

func NewReminderService(repo repository.ReminderRepository, logger *slog.Logger) *ReminderService {
	return &ReminderService{repo: repo, logger: logger}
}

// ReminderInput is the body of a new reminder. FriendID is optional; nil
// and "" both mean no friend.
type ReminderInput struct {
	Title        string
	Description  string
	ReminderTime time.Time
	FriendID     *string
}

func (s *ReminderService) List(ctx context.Context, userID string) ([]model.Reminder, error) {
	reminders, err := s.repo.ListByUser(ctx, userID, repository.ListOptions{})
	if err != nil {
		s.logger.Error("failed to list reminders", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing reminders: %w", err)
	}
	return reminders, nil
}

func (s *ReminderService) Create(ctx context.Context, userID string, in ReminderInput) (*model.Reminder, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	if in.ReminderTime.IsZero() {
		return nil, apperror.ValidationFailed("reminder_time", "reminder_time is required")
	}

	var friendID *string
	if in.FriendID != nil && strings.TrimSpace(*in.FriendID) != "" {
		id := strings.TrimSpace(*in.FriendID)
		friendID = &id
	}

	rem := &model.Reminder{
		UserID:       userID,
		Title:        title,
		Description:  in.Description,
		ReminderTime: in.ReminderTime.UTC(),
		FriendID:     friendID,
	}
	if err := s.repo.Create(ctx, rem); err != nil {
		s.logger.Error("failed to create reminder", slog.String("error", err.Error()))
		return nil, fmt.Errorf("creating reminder: %w", err)
	}

	s.logger.Info("reminder created", slog.String("id", rem.ID), slog.String("userID", userID))
	return rem, nil
}

func (s *ReminderService) Complete(ctx context.Context, userID, id string) error {
	if err := s.repo.Complete(ctx, id, userID); err != nil {
		return err
	}
	s.logger.Info("reminder completed", slog.String("id", id))
	return nil
}
