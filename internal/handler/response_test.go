package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/bible-study/internal/apperror"
)

func TestWriteError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantDetail string
	}{
		{"validation", apperror.ValidationFailed("title", "title is required"), http.StatusUnprocessableEntity, "validation_error", "title is required"},
		{"bad request", apperror.BadRequest("Invalid request body"), http.StatusBadRequest, "bad_request", "Invalid request body"},
		{"invalid request", apperror.InvalidRequest("Cannot send friend request to yourself"), http.StatusBadRequest, "invalid_request", "Cannot send friend request to yourself"},
		{"conflict", apperror.Conflict("Friend request already exists"), http.StatusBadRequest, "conflict", "Friend request already exists"},
		{"unauthorized", apperror.Unauthorized("Incorrect email or password"), http.StatusUnauthorized, "unauthorized", "Incorrect email or password"},
		{"not found", apperror.NotFoundMessage("Chat not found"), http.StatusNotFound, "not_found", "Chat not found"},
		{"wrapped", fmt.Errorf("updating note: %w", apperror.NotFoundMessage("Note not found")), http.StatusNotFound, "not_found", "Note not found"},
		{"unknown", errors.New("sql: database is locked"), http.StatusInternalServerError, "internal_error", "An internal error occurred"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			writeError(rr, logger, tt.err)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var body ErrorResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.Equal(t, tt.wantCode, body.Error)
			assert.Equal(t, tt.wantDetail, body.Detail)
		})
	}
}

func TestWriteError_UnauthorizedChallenge(t *testing.T) {
	rr := httptest.NewRecorder()
	writeError(rr, slog.New(slog.NewTextHandler(io.Discard, nil)), apperror.Unauthorized("no"))
	assert.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))
}

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{`"2026-01-02T07:30:00Z"`, time.Date(2026, 1, 2, 7, 30, 0, 0, time.UTC), false},
		{`"2026-01-02T07:30:00-05:00"`, time.Date(2026, 1, 2, 12, 30, 0, 0, time.UTC), false},
		{`"2026-01-02T07:30"`, time.Date(2026, 1, 2, 7, 30, 0, 0, time.UTC), false},
		{`"2026-01-02T07:30:15.5"`, time.Date(2026, 1, 2, 7, 30, 15, 500_000_000, time.UTC), false},
		{`"2026-01-02 07:30:00"`, time.Date(2026, 1, 2, 7, 30, 0, 0, time.UTC), false},
		{`""`, time.Time{}, false},
		{`"tomorrow"`, time.Time{}, true},
		{`1767339000`, time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var ts Timestamp
			err := json.Unmarshal([]byte(tt.in), &ts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(ts.Time), "got %v, want %v", ts.Time, tt.want)
		})
	}
}
