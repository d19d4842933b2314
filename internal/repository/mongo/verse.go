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

type highlightCollection struct {
	coll *mongo.Collection
}

var _ repository.HighlightRepository = (*highlightCollection)(nil)

func (h *highlightCollection) Create(ctx context.Context, hl *model.Highlight) error {
	hl.ID = xid.New().String()
	hl.CreatedAt = time.Now().UTC()

	if _, err := h.coll.InsertOne(ctx, hl); err != nil {
		return fmt.Errorf("mongo: creating highlight: %w", err)
	}
	return nil
}

func (h *highlightCollection) ListByUser(ctx context.Context, userID string, opts repository.ListOptions) ([]model.Highlight, error) {
	return findAll[model.Highlight](ctx, h.coll, bson.M{"user_id": userID}, opts)
}

func (h *highlightCollection) Delete(ctx context.Context, id, userID string) error {
	return deleteOwned(ctx, h.coll, "highlight", id, userID)
}

type bookmarkCollection struct {
	coll *mongo.Collection
}

var _ repository.BookmarkRepository = (*bookmarkCollection)(nil)

func (b *bookmarkCollection) Create(ctx context.Context, bm *model.Bookmark) error {
	bm.ID = xid.New().String()
	bm.CreatedAt = time.Now().UTC()

	if _, err := b.coll.InsertOne(ctx, bm); err != nil {
		return fmt.Errorf("mongo: creating bookmark: %w", err)
	}
	return nil
}

func (b *bookmarkCollection) ListByUser(ctx context.Context, userID string, opts repository.ListOptions) ([]model.Bookmark, error) {
	return findAll[model.Bookmark](ctx, b.coll, bson.M{"user_id": userID}, opts)
}

func (b *bookmarkCollection) Delete(ctx context.Context, id, userID string) error {
	return deleteOwned(ctx, b.coll, "bookmark", id, userID)
}
