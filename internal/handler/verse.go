package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/bible-study/internal/service"
)

type verseRequest struct {
	Book    string `json:"book"    validate:"required"`
	Chapter int    `json:"chapter" validate:"min=0"`
	Verse   int    `json:"verse"   validate:"min=0"`
}

func (v verseRequest) ref() service.VerseRef {
	return service.VerseRef{Book: v.Book, Chapter: v.Chapter, Verse: v.Verse}
}

type highlightRequest struct {
	verseRequest
	Text  string `json:"text"`
	Color string `json:"color"`
}

// HighlightHandler serves the caller's verse highlights.
type HighlightHandler struct {
	highlights *service.HighlightService
	decoder    *requestDecoder
	logger     *slog.Logger
}

func NewHighlightHandler(highlights *service.HighlightService, logger *slog.Logger) *HighlightHandler {
	return &HighlightHandler{
		highlights: highlights,
		decoder:    &requestDecoder{validate: newValidator()},
		logger:     logger,
	}
}

// HandleList returns the caller's highlights.
//
// HTTP: GET /api/highlights
func (h *HighlightHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	highlights, err := h.highlights.List(r.Context(), user.ID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, highlights)
}

// HandleCreate highlights a verse. Color defaults to yellow.
//
// HTTP: POST /api/highlights
// REQUEST BODY: {"book": "Psalms", "chapter": 23, "verse": 1, "text": "...", "color": "green"}
func (h *HighlightHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req highlightRequest
	if err := h.decoder.decode(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	highlight, err := h.highlights.Create(r.Context(), user.ID, service.HighlightInput{
		VerseRef: req.ref(),
		Text:     req.Text,
		Color:    req.Color,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, highlight)
}

// HandleDelete removes a highlight.
//
// HTTP: DELETE /api/highlights/{id}
func (h *HighlightHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.highlights.Delete(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeMessage(w, "Highlight deleted successfully")
}

// BookmarkHandler serves the caller's verse bookmarks.
type BookmarkHandler struct {
	bookmarks *service.BookmarkService
	decoder   *requestDecoder
	logger    *slog.Logger
}

func NewBookmarkHandler(bookmarks *service.BookmarkService, logger *slog.Logger) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarks: bookmarks,
		decoder:   &requestDecoder{validate: newValidator()},
		logger:    logger,
	}
}

// HandleList returns the caller's bookmarks.
//
// HTTP: GET /api/bookmarks
func (h *BookmarkHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	bookmarks, err := h.bookmarks.List(r.Context(), user.ID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, bookmarks)
}

// HandleCreate bookmarks a verse.
//
// HTTP: POST /api/bookmarks
func (h *BookmarkHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req verseRequest
	if err := h.decoder.decode(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	bookmark, err := h.bookmarks.Create(r.Context(), user.ID, req.ref())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, bookmark)
}

// HandleDelete removes a bookmark.
//
// HTTP: DELETE /api/bookmarks/{id}
func (h *BookmarkHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.bookmarks.Delete(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeMessage(w, "Bookmark deleted successfully")
}
