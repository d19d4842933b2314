// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, enforces rules, orchestrates
//	Repository (Data layer)  → reads/writes to the store
//
// Every service takes repository interfaces, never a concrete backend, so
// the same code runs on SQLite or MongoDB and tests can pass fakes.
//
// OWNERSHIP:
// Each method takes the caller's user ID and passes it down to the
// repository, which scopes the query by it. A record owned by someone else
// comes back as apperror.ErrNotFound, the same as a record that does not
// exist.
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

// MaxNoteTitleLength keeps titles to something a list view can show.
const MaxNoteTitleLength = 200

// NoteService handles business logic for study notes.
type NoteService struct {
	repo   repository.NoteRepository
	logger *slog.Logger
}

func NewNoteService(repo repository.NoteRepository, logger *slog.Logger) *NoteService {
	return &NoteService{
		repo:   repo,
		logger: logger,
	}
}

// NoteInput is the body of a new note.
type NoteInput struct {
	Title   string
	Content string
	Book    string
	Chapter int
	Verse   int
}

// List returns the caller's notes, capped at repository.MaxListLimit.
func (s *NoteService) List(ctx context.Context, userID string) ([]model.Note, error) {
	notes, err := s.repo.ListByUser(ctx, userID, repository.ListOptions{})
	if err != nil {
		s.logger.Error("failed to list notes", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	return notes, nil
}

func (s *NoteService) Create(ctx context.Context, userID string, in NoteInput) (*model.Note, error) {
	title, err := validateNoteTitle(in.Title)
	if err != nil {
		return nil, err
	}

	note := &model.Note{
		UserID:  userID,
		Title:   title,
		Content: in.Content,
		Book:    strings.TrimSpace(in.Book),
		Chapter: in.Chapter,
		Verse:   in.Verse,
	}

	if err := s.repo.Create(ctx, note); err != nil {
		s.logger.Error("failed to create note", slog.String("error", err.Error()))
		return nil, fmt.Errorf("creating note: %w", err)
	}

	s.logger.Info("note created",
		slog.String("id", note.ID),
		slog.String("userID", userID),
	)
	return note, nil
}

// Update applies a partial update. Fields absent from upd are left alone.
func (s *NoteService) Update(ctx context.Context, userID, id string, upd model.NoteUpdate) (*model.Note, error) {
	if upd.Title != nil {
		title, err := validateNoteTitle(*upd.Title)
		if err != nil {
			return nil, err
		}
		upd.Title = &title
	}
	if upd.Book != nil {
		book := strings.TrimSpace(*upd.Book)
		upd.Book = &book
	}

	note, err := s.repo.Update(ctx, id, userID, upd)
	if err != nil {
		return nil, err
	}

	s.logger.Info("note updated", slog.String("id", id))
	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.logger.Info("note deleted", slog.String("id", id))
	return nil
}

func validateNoteTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", apperror.ValidationFailed("title", "title is required")
	}
	if len(title) > MaxNoteTitleLength {
		return "", apperror.ValidationFailed("title",
			fmt.Sprintf("title must be %d characters or less", MaxNoteTitleLength))
	}
	return title, nil
}
