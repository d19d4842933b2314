package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/sakif/bible-study/internal/apperror"
	"github.com/sakif/bible-study/internal/model"
	"github.com/sakif/bible-study/internal/repository"
)

type reminderCollection struct {
	coll *mongo.Collection
}

var _ repository.ReminderRepository = (*reminderCollection)(nil)

func (r *reminderCollection) Create(ctx context.Context, rem *model.Reminder) error {
	rem.ID = xid.New().String()
	rem.CreatedAt = time.Now().UTC()

	if _, err := r.coll.InsertOne(ctx, rem); err != nil {
		return fmt.Errorf("mongo: creating reminder: %w", err)
	}
	return nil
}

func (r *reminderCollection) ListByUser(ctx context.Context, userID string, opts repository.ListOptions) ([]model.Reminder, error) {
	return findAll[model.Reminder](ctx, r.coll, bson.M{"user_id": userID}, opts)
}

// Complete checks MatchedCount, not ModifiedCount, so completing a reminder
// twice is not reported as missing.
func (r *reminderCollection) Complete(ctx context.Context, id, userID string) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$set": bson.M{"completed": true}},
	)
	if err != nil {
		return fmt.Errorf("mongo: completing reminder %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return apperror.NotFound("reminder", id)
	}
	return nil
}
