package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/sakif/bible-study/internal/apperror"
	"github.com/sakif/bible-study/internal/model"
	"github.com/sakif/bible-study/internal/repository"
)

type noteCollection struct {
	coll *mongo.Collection
}

var _ repository.NoteRepository = (*noteCollection)(nil)

func (n *noteCollection) Create(ctx context.Context, note *model.Note) error {
	note.ID = xid.New().String()
	now := time.Now().UTC()
	note.CreatedAt = now
	note.UpdatedAt = now

	if _, err := n.coll.InsertOne(ctx, note); err != nil {
		return fmt.Errorf("mongo: creating note: %w", err)
	}
	return nil
}

func (n *noteCollection) ListByUser(ctx context.Context, userID string, opts repository.ListOptions) ([]model.Note, error) {
	return findAll[model.Note](ctx, n.coll, bson.M{"user_id": userID}, opts)
}

// Update $sets only the fields present in upd, plus updated_at, and returns
// the document as it is after the update.
func (n *noteCollection) Update(ctx context.Context, id, userID string, upd model.NoteUpdate) (*model.Note, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Content != nil {
		set["content"] = *upd.Content
	}
	if upd.Book != nil {
		set["book"] = *upd.Book
	}
	if upd.Chapter != nil {
		set["chapter"] = *upd.Chapter
	}
	if upd.Verse != nil {
		set["verse"] = *upd.Verse
	}

	var note model.Note
	err := n.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&note)
	if isNoDocuments(err) {
		return nil, apperror.NotFound("note", id)
	}
	if err != nil {
		return nil, fmt.Errorf("mongo: updating note %s: %w", id, err)
	}
	return &note, nil
}

func (n *noteCollection) Delete(ctx context.Context, id, userID string) error {
	return deleteOwned(ctx, n.coll, "note", id, userID)
}
