package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sakif/bible-study/internal/apperror"
)

func TestReminderCreate(t *testing.T) {
	svc := NewReminderService(newTestStore(t).Reminders(), discardLogger())
	when := time.Date(2026, 3, 1, 6, 0, 0, 0, time.FixedZone("EST", -5*3600))

	tests := []struct {
		name       string
		friendID   *string
		wantFriend *string
	}{
		{"no friend", nil, nil},
		{"blank friend", ptr("  "), nil},
		{"with friend", ptr("friend-1"), ptr("friend-1")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := svc.Create(context.Background(), "u1", ReminderInput{
				Title:        "Morning reading",
				ReminderTime: when,
				FriendID:     tt.friendID,
			})
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if r.Completed {
				t.Error("new reminder is completed")
			}
			if !r.ReminderTime.Equal(when) {
				t.Errorf("ReminderTime = %v, want %v", r.ReminderTime, when)
			}
			switch {
			case tt.wantFriend == nil && r.FriendID != nil:
				t.Errorf("FriendID = %q, want nil", *r.FriendID)
			case tt.wantFriend != nil && (r.FriendID == nil || *r.FriendID != *tt.wantFriend):
				t.Errorf("FriendID = %v, want %q", r.FriendID, *tt.wantFriend)
			}
		})
	}
}

func TestReminderCreate_Validation(t *testing.T) {
	svc := NewReminderService(newTestStore(t).Reminders(), discardLogger())

	tests := []struct {
		name string
		in   ReminderInput
	}{
		{"missing title", ReminderInput{ReminderTime: time.Now()}},
		{"missing time", ReminderInput{Title: "Pray"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), "u1", tt.in); !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("Create() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestReminderComplete(t *testing.T) {
	svc := NewReminderService(newTestStore(t).Reminders(), discardLogger())
	ctx := context.Background()

	r, err := svc.Create(ctx, "u1", ReminderInput{Title: "Pray", ReminderTime: time.Now()})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Complete(ctx, "u2", r.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("cross-user Complete() error = %v, want ErrNotFound", err)
	}
	if err := svc.Complete(ctx, "u1", r.ID); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	list, err := svc.List(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || !list[0].Completed {
		t.Errorf("List() = %+v, want one completed reminder", list)
	}
}
