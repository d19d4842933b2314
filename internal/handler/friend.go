package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/bible-study/internal/service"
)

// FriendHandler serves the friend graph of the caller.
type FriendHandler struct {
	friends *service.FriendService
	decoder *requestDecoder
	logger  *slog.Logger
}

func NewFriendHandler(friends *service.FriendService, logger *slog.Logger) *FriendHandler {
	return &FriendHandler{
		friends: friends,
		decoder: &requestDecoder{validate: newValidator()},
		logger:  logger,
	}
}

type friendRequest struct {
	FriendEmail string `json:"friend_email" validate:"required"`
}

// HandleList returns the public profiles of accepted friends.
//
// HTTP: GET /api/friends
func (h *FriendHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	friends, err := h.friends.ListFriends(r.Context(), user.ID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, friends)
}

// HandleRequests returns the profiles of users waiting on the caller.
//
// HTTP: GET /api/friends/requests
func (h *FriendHandler) HandleRequests(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	requesters, err := h.friends.ListRequests(r.Context(), user.ID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, requesters)
}

// HandleSendRequest asks another user, found by email, to be friends.
//
// HTTP: POST /api/friends/request
// REQUEST BODY: {"friend_email": "bob@example.com"}
//
// Unknown email is 404. Asking yourself, or asking again while a request
// exists in either direction, is 400.
func (h *FriendHandler) HandleSendRequest(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req friendRequest
	if err := h.decoder.decode(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.friends.SendRequest(r.Context(), user.ID, req.FriendEmail); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeMessage(w, "Friend request sent")
}
