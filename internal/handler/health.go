// Package handler contains HTTP request handlers for the Bible study API.
//
// WHAT IS A HANDLER?
// In Go, an HTTP handler is anything that implements the http.Handler interface:
//
//	type Handler interface {
//	    ServeHTTP(ResponseWriter, *Request)
//	}
//
// We mostly use methods with the http.HandlerFunc signature, which chi's
// router accepts directly.
//
// HANDLER RESPONSIBILITIES:
// 1. Parse the incoming HTTP request (URL params, JSON body, the auth user)
// 2. Call the service layer
// 3. Write the HTTP response (status code, headers, JSON body)
//
// Handlers hold no business logic. Every domain failure comes back from the
// service as an apperror and is turned into a status by writeError.
package handler

import (
	"net/http"

	"github.com/sakif/bible-study/internal/bible"
)

// HealthHandler serves the unauthenticated informational endpoints.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// HandleRoot identifies the API.
//
// HTTP: GET /
func (h *HealthHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, "Bible Study API")
}

// HandleHealth is the liveness probe. It does not touch the store.
//
// HTTP: GET /health
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// BooksResponse lists the books of the canon.
type BooksResponse struct {
	Books []string `json:"books"`
}

// HandleBooks returns the 66 books in canonical order.
//
// HTTP: GET /api/bible/books
func (h *HealthHandler) HandleBooks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, BooksResponse{Books: bible.Books()})
}
