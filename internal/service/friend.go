package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/bible-study/internal/apperror"
	"github.com/sakif/bible-study/internal/model"
	"github.com/sakif/bible-study/internal/repository"
)

// FriendService manages the friend graph.
//
// An edge is directed: UserID sent the request, FriendID received it. There
// is no accept endpoint yet, so edges only ever reach "accepted" through
// the store directly.
type FriendService struct {
	users   repository.UserRepository
	friends repository.FriendRepository
	logger  *slog.Logger
}

func NewFriendService(users repository.UserRepository, friends repository.FriendRepository, logger *slog.Logger) *FriendService {
	return &FriendService{users: users, friends: friends, logger: logger}
}

// ListFriends returns the public profiles of accepted friends, looking only
// at edges the caller sent.
func (s *FriendService) ListFriends(ctx context.Context, userID string) ([]model.PublicUser, error) {
	edges, err := s.friends.ListOutgoing(ctx, userID, model.FriendAccepted, repository.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing friends: %w", err)
	}
	return s.profiles(ctx, edges, func(e model.FriendEdge) string { return e.FriendID })
}

// ListRequests returns the profiles of users with a pending request to the
// caller.
func (s *FriendService) ListRequests(ctx context.Context, userID string) ([]model.PublicUser, error) {
	edges, err := s.friends.ListIncoming(ctx, userID, model.FriendPending, repository.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing friend requests: %w", err)
	}
	return s.profiles(ctx, edges, func(e model.FriendEdge) string { return e.UserID })
}

// SendRequest creates a pending edge from the caller to the user registered
// under friendEmail.
//
// The existence check and the insert are two separate operations, so two
// simultaneous requests between the same pair can both succeed.
func (s *FriendService) SendRequest(ctx context.Context, userID, friendEmail string) error {
	target, err := s.users.GetUserByEmail(ctx, NormalizeEmail(friendEmail))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.NotFoundMessage("User not found")
		}
		return fmt.Errorf("looking up friend: %w", err)
	}

	if target.ID == userID {
		return apperror.InvalidRequest("Cannot send friend request to yourself")
	}

	exists, err := s.friends.ExistsBetween(ctx, userID, target.ID)
	if err != nil {
		return fmt.Errorf("checking existing friend request: %w", err)
	}
	if exists {
		return apperror.Conflict("Friend request already exists")
	}

	edge := &model.FriendEdge{
		UserID:   userID,
		FriendID: target.ID,
		Status:   model.FriendPending,
	}
	if err := s.friends.Create(ctx, edge); err != nil {
		s.logger.Error("failed to create friend request", slog.String("error", err.Error()))
		return fmt.Errorf("creating friend request: %w", err)
	}

	s.logger.Info("friend request sent",
		slog.String("from", userID),
		slog.String("to", target.ID),
	)
	return nil
}

// profiles resolves the counterparty of each edge. Edges pointing at a user
// that no longer exists are skipped.
func (s *FriendService) profiles(ctx context.Context, edges []model.FriendEdge, other func(model.FriendEdge) string) ([]model.PublicUser, error) {
	out := make([]model.PublicUser, 0, len(edges))
	for _, e := range edges {
		id := other(e)
		user, err := s.users.GetUserByID(ctx, id)
		if errors.Is(err, apperror.ErrNotFound) {
			s.logger.Warn("friend edge points at missing user",
				slog.String("edgeID", e.ID),
				slog.String("userID", id),
			)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("loading user %s: %w", id, err)
		}
		out = append(out, user.Public())
	}
	return out, nil
}
