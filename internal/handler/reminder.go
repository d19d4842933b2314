package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/bible-study/internal/service"
)

// ReminderHandler serves the caller's study reminders.
type ReminderHandler struct {
	reminders *service.ReminderService
	decoder   *requestDecoder
	logger    *slog.Logger
}

func NewReminderHandler(reminders *service.ReminderService, logger *slog.Logger) *ReminderHandler {
	return &ReminderHandler{
		reminders: reminders,
		decoder:   &requestDecoder{validate: newValidator()},
		logger:    logger,
	}
}

type reminderRequest struct {
	Title        string    `json:"title"         validate:"required"`
	Description  string    `json:"description"`
	ReminderTime Timestamp `json:"reminder_time"`
	FriendID     *string   `json:"friend_id"`
}

// HandleList returns the caller's reminders, completed ones included.
//
// HTTP: GET /api/reminders
func (h *ReminderHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	reminders, err := h.reminders.List(r.Context(), user.ID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, reminders)
}

// HandleCreate schedules a reminder, optionally shared with a friend.
//
// HTTP: POST /api/reminders
// REQUEST BODY: {"title": "...", "description": "...", "reminder_time": "2026-01-02T07:30:00Z", "friend_id": null}
//
// Nothing is delivered at reminder_time; the time is stored for clients.
func (h *ReminderHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req reminderRequest
	if err := h.decoder.decode(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	reminder, err := h.reminders.Create(r.Context(), user.ID, service.ReminderInput{
		Title:        req.Title,
		Description:  req.Description,
		ReminderTime: req.ReminderTime.Time,
		FriendID:     req.FriendID,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, reminder)
}

// HandleComplete marks a reminder done. Completing twice is not an error.
//
// HTTP: POST /api/reminders/{id}/complete
func (h *ReminderHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.reminders.Complete(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeMessage(w, "Reminder completed")
}
