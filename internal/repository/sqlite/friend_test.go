package sqlite

import (
	"context"
	"testing"

	"github.com/sakif/bible-study/internal/model"
	"github.com/sakif/bible-study/internal/repository"
)

func TestFriendEdges(t *testing.T) {
	friends := newTestDB(t).Friends()
	ctx := context.Background()

	pending := &model.FriendEdge{UserID: "alice", FriendID: "bob", Status: model.FriendPending}
	accepted := &model.FriendEdge{UserID: "alice", FriendID: "carol", Status: model.FriendAccepted}
	for _, e := range []*model.FriendEdge{pending, accepted} {
		if err := friends.Create(ctx, e); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	tests := []struct {
		name    string
		list    func() ([]model.FriendEdge, error)
		wantIDs []string
	}{
		{
			name: "alice outgoing accepted",
			list: func() ([]model.FriendEdge, error) {
				return friends.ListOutgoing(ctx, "alice", model.FriendAccepted, repository.ListOptions{})
			},
			wantIDs: []string{accepted.ID},
		},
		{
			name: "alice outgoing pending",
			list: func() ([]model.FriendEdge, error) {
				return friends.ListOutgoing(ctx, "alice", model.FriendPending, repository.ListOptions{})
			},
			wantIDs: []string{pending.ID},
		},
		{
			name: "bob incoming pending",
			list: func() ([]model.FriendEdge, error) {
				return friends.ListIncoming(ctx, "bob", model.FriendPending, repository.ListOptions{})
			},
			wantIDs: []string{pending.ID},
		},
		{
			name: "alice incoming pending is empty",
			list: func() ([]model.FriendEdge, error) {
				return friends.ListIncoming(ctx, "alice", model.FriendPending, repository.ListOptions{})
			},
			wantIDs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.list()
			if err != nil {
				t.Fatalf("list error = %v", err)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d edges, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("edge[%d].ID = %q, want %q", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestFriendExistsBetween(t *testing.T) {
	friends := newTestDB(t).Friends()
	ctx := context.Background()

	if err := friends.Create(ctx, &model.FriendEdge{UserID: "alice", FriendID: "bob", Status: model.FriendPending}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tests := []struct {
		a, b string
		want bool
	}{
		{"alice", "bob", true},
		{"bob", "alice", true}, // reverse direction
		{"alice", "carol", false},
	}
	for _, tt := range tests {
		got, err := friends.ExistsBetween(ctx, tt.a, tt.b)
		if err != nil {
			t.Fatalf("ExistsBetween(%s, %s) error = %v", tt.a, tt.b, err)
		}
		if got != tt.want {
			t.Errorf("ExistsBetween(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
