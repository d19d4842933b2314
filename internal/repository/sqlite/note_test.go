package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sakif/bible-study/internal/apperror"
	"github.com/sakif/bible-study/internal/model"
	"github.com/sakif/bible-study/internal/repository"
)

func createTestNote(t *testing.T, notes repository.NoteRepository, userID, title string) *model.Note {
	t.Helper()
	note := &model.Note{
		UserID:  userID,
		Title:   title,
		Content: "In the beginning",
		Book:    "Genesis",
		Chapter: 1,
		Verse:   1,
	}
	if err := notes.Create(context.Background(), note); err != nil {
		t.Fatalf("failed to create test note: %v", err)
	}
	return note
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestNoteCreate(t *testing.T) {
	notes := newTestDB(t).Notes()

	note := createTestNote(t, notes, "u1", "Creation")

	if note.ID == "" {
		t.Error("Create() did not set note.ID")
	}
	if !note.CreatedAt.Equal(note.UpdatedAt) {
		t.Errorf("CreatedAt %v != UpdatedAt %v on a new note", note.CreatedAt, note.UpdatedAt)
	}
}

func TestNoteListByUser_OwnerOnly(t *testing.T) {
	notes := newTestDB(t).Notes()
	ctx := context.Background()

	createTestNote(t, notes, "u1", "first")
	createTestNote(t, notes, "u1", "second")
	createTestNote(t, notes, "u2", "someone else's")

	got, err := notes.ListByUser(ctx, "u1", repository.ListOptions{})
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListByUser() returned %d notes, want 2", len(got))
	}
	// storage order
	if got[0].Title != "first" || got[1].Title != "second" {
		t.Errorf("titles = [%q %q], want [first second]", got[0].Title, got[1].Title)
	}

	empty, err := notes.ListByUser(ctx, "nobody", repository.ListOptions{})
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("ListByUser(nobody) = %v, want empty non-nil slice", empty)
	}
}

func TestNoteListByUser_Capped(t *testing.T) {
	notes := newTestDB(t).Notes()

	for i := 0; i < repository.MaxListLimit+5; i++ {
		createTestNote(t, notes, "u1", "n")
	}

	got, err := notes.ListByUser(context.Background(), "u1", repository.ListOptions{})
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(got) != repository.MaxListLimit {
		t.Errorf("ListByUser() returned %d notes, want %d", len(got), repository.MaxListLimit)
	}
}

func TestNoteUpdate_Partial(t *testing.T) {
	notes := newTestDB(t).Notes()
	original := createTestNote(t, notes, "u1", "Old title")

	// Make sure the clock moves past CreatedAt.
	time.Sleep(5 * time.Millisecond)

	got, err := notes.Update(context.Background(), original.ID, "u1", model.NoteUpdate{
		Title: strPtr("New title"),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if got.Title != "New title" {
		t.Errorf("Title = %q, want %q", got.Title, "New title")
	}
	if got.Content != original.Content || got.Book != original.Book ||
		got.Chapter != original.Chapter || got.Verse != original.Verse {
		t.Errorf("Update() changed fields it was not given: %+v", got)
	}
	if !got.UpdatedAt.After(original.UpdatedAt) {
		t.Errorf("UpdatedAt %v did not advance past %v", got.UpdatedAt, original.UpdatedAt)
	}
	if !got.CreatedAt.Equal(original.CreatedAt) {
		t.Errorf("CreatedAt changed: %v -> %v", original.CreatedAt, got.CreatedAt)
	}
}

func TestNoteUpdate_AllFields(t *testing.T) {
	notes := newTestDB(t).Notes()
	original := createTestNote(t, notes, "u1", "t")

	got, err := notes.Update(context.Background(), original.ID, "u1", model.NoteUpdate{
		Title:   strPtr("Psalm"),
		Content: strPtr("The Lord is my shepherd"),
		Book:    strPtr("Psalms"),
		Chapter: intPtr(23),
		Verse:   intPtr(1),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.Book != "Psalms" || got.Chapter != 23 || got.Verse != 1 || got.Content != "The Lord is my shepherd" {
		t.Errorf("Update() = %+v", got)
	}
}

func TestNoteUpdate_NotOwner(t *testing.T) {
	notes := newTestDB(t).Notes()
	note := createTestNote(t, notes, "u1", "mine")

	_, err := notes.Update(context.Background(), note.ID, "u2", model.NoteUpdate{Title: strPtr("stolen")})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("Update() by non-owner error = %v, want ErrNotFound", err)
	}

	list, _ := notes.ListByUser(context.Background(), "u1", repository.ListOptions{})
	if list[0].Title != "mine" {
		t.Errorf("non-owner update leaked through: title = %q", list[0].Title)
	}
}

func TestNoteDelete(t *testing.T) {
	notes := newTestDB(t).Notes()
	ctx := context.Background()
	note := createTestNote(t, notes, "u1", "doomed")

	if err := notes.Delete(ctx, note.ID, "u2"); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("Delete() by non-owner error = %v, want ErrNotFound", err)
	}
	if err := notes.Delete(ctx, note.ID, "u1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := notes.Delete(ctx, note.ID, "u1"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}
