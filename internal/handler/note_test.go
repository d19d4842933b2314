package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/bible-study/internal/handler"
	"github.com/sakif/bible-study/internal/model"
	"github.com/sakif/bible-study/internal/service"
)

func TestNoteHandler_CRUD(t *testing.T) {
	db := newTestStore(t)
	h := handler.NewNoteHandler(service.NewNoteService(db.Notes(), testLogger()), testLogger())
	alice := &model.User{ID: "alice"}
	bob := &model.User{ID: "bob"}

	// Create
	rr := httptest.NewRecorder()
	h.HandleCreate(rr, newRequest(t, http.MethodPost, "/api/notes",
		`{"title":"Light","content":"In the beginning","book":"Genesis","chapter":1,"verse":3}`, alice, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	note := decodeBody[model.Note](t, rr)
	assert.Equal(t, "alice", note.UserID)
	assert.Equal(t, "Genesis", note.Book)

	// Partial update keeps the untouched fields.
	rr = httptest.NewRecorder()
	h.HandleUpdate(rr, newRequest(t, http.MethodPut, "/api/notes/"+note.ID,
		`{"content":"Let there be light"}`, alice, map[string]string{"id": note.ID}))
	require.Equal(t, http.StatusOK, rr.Code)
	updated := decodeBody[model.Note](t, rr)
	assert.Equal(t, "Light", updated.Title)
	assert.Equal(t, "Let there be light", updated.Content)
	assert.Equal(t, 3, updated.Verse)

	// Someone else's note does not exist for them.
	rr = httptest.NewRecorder()
	h.HandleDelete(rr, newRequest(t, http.MethodDelete, "/api/notes/"+note.ID, "", bob, map[string]string{"id": note.ID}))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	h.HandleList(rr, newRequest(t, http.MethodGet, "/api/notes", "", bob, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decodeBody[[]model.Note](t, rr))

	// Delete
	rr = httptest.NewRecorder()
	h.HandleDelete(rr, newRequest(t, http.MethodDelete, "/api/notes/"+note.ID, "", alice, map[string]string{"id": note.ID}))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Note deleted successfully", decodeBody[handler.MessageResponse](t, rr).Message)

	rr = httptest.NewRecorder()
	h.HandleList(rr, newRequest(t, http.MethodGet, "/api/notes", "", alice, nil))
	assert.Equal(t, "[]\n", rr.Body.String())
}

func TestNoteHandler_HandleCreate_Invalid(t *testing.T) {
	h := handler.NewNoteHandler(service.NewNoteService(newTestStore(t).Notes(), testLogger()), testLogger())
	user := &model.User{ID: "u1"}

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"missing title", `{"content":"x"}`, http.StatusUnprocessableEntity},
		{"negative chapter", `{"title":"t","chapter":-1}`, http.StatusUnprocessableEntity},
		{"chapter is a string", `{"title":"t","chapter":"three"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.HandleCreate(rr, newRequest(t, http.MethodPost, "/api/notes", tt.body, user, nil))
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}
