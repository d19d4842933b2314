package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/sakif/bible-study/internal/model"
	"github.com/sakif/bible-study/internal/repository"
)

type friendCollection struct {
	coll *mongo.Collection
}

var _ repository.FriendRepository = (*friendCollection)(nil)

func (f *friendCollection) Create(ctx context.Context, edge *model.FriendEdge) error {
	edge.ID = xid.New().String()
	edge.CreatedAt = time.Now().UTC()

	if _, err := f.coll.InsertOne(ctx, edge); err != nil {
		return fmt.Errorf("mongo: creating friend edge: %w", err)
	}
	return nil
}

func (f *friendCollection) ListOutgoing(ctx context.Context, userID string, status model.FriendStatus, opts repository.ListOptions) ([]model.FriendEdge, error) {
	return findAll[model.FriendEdge](ctx, f.coll, bson.M{"user_id": userID, "status": string(status)}, opts)
}

func (f *friendCollection) ListIncoming(ctx context.Context, userID string, status model.FriendStatus, opts repository.ListOptions) ([]model.FriendEdge, error) {
	return findAll[model.FriendEdge](ctx, f.coll, bson.M{"friend_id": userID, "status": string(status)}, opts)
}

func (f *friendCollection) ExistsBetween(ctx context.Context, a, b string) (bool, error) {
	n, err := f.coll.CountDocuments(ctx, bson.M{"$or": bson.A{
		bson.M{"user_id": a, "friend_id": b},
		bson.M{"user_id": b, "friend_id": a},
	}})
	if err != nil {
		return false, fmt.Errorf("mongo: checking friend edge: %w", err)
	}
	return n > 0, nil
}
