package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/bible-study/internal/model"
	"github.com/sakif/bible-study/internal/service"
)

// NoteHandler serves CRUD for the caller's study notes.
//
// Every route sits behind RequireAuth, and every service call is scoped by
// the caller's ID. Another user's note ID behaves exactly like an unknown
// one (404).
type NoteHandler struct {
	notes   *service.NoteService
	decoder *requestDecoder
	logger  *slog.Logger
}

func NewNoteHandler(notes *service.NoteService, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{
		notes:   notes,
		decoder: &requestDecoder{validate: newValidator()},
		logger:  logger,
	}
}

type noteRequest struct {
	Title   string `json:"title"   validate:"required"`
	Content string `json:"content"`
	Book    string `json:"book"`
	Chapter int    `json:"chapter" validate:"min=0"`
	Verse   int    `json:"verse"   validate:"min=0"`
}

// HandleList returns the caller's notes, oldest first.
//
// HTTP: GET /api/notes
func (h *NoteHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	notes, err := h.notes.List(r.Context(), user.ID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

// HandleCreate saves a new note.
//
// HTTP: POST /api/notes
// REQUEST BODY: {"title": "...", "content": "...", "book": "John", "chapter": 3, "verse": 16}
func (h *NoteHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req noteRequest
	if err := h.decoder.decode(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	note, err := h.notes.Create(r.Context(), user.ID, service.NoteInput{
		Title:   req.Title,
		Content: req.Content,
		Book:    req.Book,
		Chapter: req.Chapter,
		Verse:   req.Verse,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// HandleUpdate applies a partial update.
//
// HTTP: PUT /api/notes/{id}
//
// Fields missing from the body (or sent as null) keep their stored value.
func (h *NoteHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var upd model.NoteUpdate
	if err := h.decoder.decode(w, r, &upd); err != nil {
		writeError(w, h.logger, err)
		return
	}

	note, err := h.notes.Update(r.Context(), user.ID, chi.URLParam(r, "id"), upd)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// HandleDelete removes a note.
//
// HTTP: DELETE /api/notes/{id}
func (h *NoteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.notes.Delete(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeMessage(w, "Note deleted successfully")
}
