package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/bible-study/internal/service"
)

// ChatHandler serves direct conversations between users.
//
// Chats are only visible to their two participants. To everyone else a
// chat ID is a 404.
type ChatHandler struct {
	chats   *service.ChatService
	decoder *requestDecoder
	logger  *slog.Logger
}

func NewChatHandler(chats *service.ChatService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		chats:   chats,
		decoder: &requestDecoder{validate: newValidator()},
		logger:  logger,
	}
}

type createChatRequest struct {
	ParticipantID string `json:"participant_id" validate:"required"`
}

type sendMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// HandleList returns every chat the caller takes part in.
//
// HTTP: GET /api/chats
func (h *ChatHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	chats, err := h.chats.List(r.Context(), user.ID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, chats)
}

// HandleCreate opens a chat between the caller and participant_id.
//
// HTTP: POST /api/chats
func (h *ChatHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req createChatRequest
	if err := h.decoder.decode(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	chat, err := h.chats.Create(r.Context(), user.ID, req.ParticipantID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, chat)
}

// HandleMessages returns a chat's messages in the order they were sent.
//
// HTTP: GET /api/chats/{id}/messages
func (h *ChatHandler) HandleMessages(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	messages, err := h.chats.Messages(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// HandleSend posts a message as the caller.
//
// HTTP: POST /api/chats/{id}/messages
// REQUEST BODY: {"content": "..."}
func (h *ChatHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req sendMessageRequest
	if err := h.decoder.decode(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	msg, err := h.chats.Send(r.Context(), user.ID, chi.URLParam(r, "id"), req.Content)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}
