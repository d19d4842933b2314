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

// VerseRef locates a verse. Ranges are not checked against the canon.
type VerseRef struct {
	Book    string
	Chapter int
	Verse   int
}

func (r VerseRef) validate() (VerseRef, error) {
	r.Book = strings.TrimSpace(r.Book)
	if r.Book == "" {
		return r, apperror.ValidationFailed("book", "book is required")
	}
	return r, nil
}

// HighlightService manages verse highlights.
type HighlightService struct {
	repo   repository.HighlightRepository
	logger *slog.Logger
}

func NewHighlightService(repo repository.HighlightRepository, logger *slog.Logger) *HighlightService {
	return &HighlightService{repo: repo, logger: logger}
}

// HighlightInput is the body of a new highlight. An empty Color becomes
// model.DefaultHighlightColor.
type HighlightInput struct {
	VerseRef
	Text  string
	Color string
}

func (s *HighlightService) List(ctx context.Context, userID string) ([]model.Highlight, error) {
	highlights, err := s.repo.ListByUser(ctx, userID, repository.ListOptions{})
	if err != nil {
		s.logger.Error("failed to list highlights", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing highlights: %w", err)
	}
	return highlights, nil
}

func (s *HighlightService) Create(ctx context.Context, userID string, in HighlightInput) (*model.Highlight, error) {
	ref, err := in.VerseRef.validate()
	if err != nil {
		return nil, err
	}

	color := strings.TrimSpace(in.Color)
	if color == "" {
		color = model.DefaultHighlightColor
	}

	hl := &model.Highlight{
		UserID:  userID,
		Book:    ref.Book,
		Chapter: ref.Chapter,
		Verse:   ref.Verse,
		Text:    in.Text,
		Color:   color,
	}
	if err := s.repo.Create(ctx, hl); err != nil {
		s.logger.Error("failed to create highlight", slog.String("error", err.Error()))
		return nil, fmt.Errorf("creating highlight: %w", err)
	}

	s.logger.Info("highlight created", slog.String("id", hl.ID), slog.String("userID", userID))
	return hl, nil
}

func (s *HighlightService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}
	s.logger.Info("highlight deleted", slog.String("id", id))
	return nil
}

// BookmarkService manages verse bookmarks.
type BookmarkService struct {
	repo   repository.BookmarkRepository
	logger *slog.Logger
}

func NewBookmarkService(repo repository.BookmarkRepository, logger *slog.Logger) *BookmarkService {
	return &BookmarkService{repo: repo, logger: logger}
}

func (s *BookmarkService) List(ctx context.Context, userID string) ([]model.Bookmark, error) {
	bookmarks, err := s.repo.ListByUser(ctx, userID, repository.ListOptions{})
	if err != nil {
		s.logger.Error("failed to list bookmarks", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing bookmarks: %w", err)
	}
	return bookmarks, nil
}

func (s *BookmarkService) Create(ctx context.Context, userID string, ref VerseRef) (*model.Bookmark, error) {
	ref, err := ref.validate()
	if err != nil {
		return nil, err
	}

	bm := &model.Bookmark{
		UserID:  userID,
		Book:    ref.Book,
		Chapter: ref.Chapter,
		Verse:   ref.Verse,
	}
	if err := s.repo.Create(ctx, bm); err != nil {
		s.logger.Error("failed to create bookmark", slog.String("error", err.Error()))
		return nil, fmt.Errorf("creating bookmark: %w", err)
	}

	s.logger.Info("bookmark created", slog.String("id", bm.ID), slog.String("userID", userID))
	return bm, nil
}

func (s *BookmarkService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}
	s.logger.Info("bookmark deleted", slog.String("id", id))
	return nil
}
