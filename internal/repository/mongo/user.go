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

type userCollection struct {
	coll *mongo.Collection
}

var _ repository.UserRepository = (*userCollection)(nil)

// Create relies on the unique index on email to reject duplicates.
func (u *userCollection) Create(ctx context.Context, user *model.User) error {
	user.ID = xid.New().String()
	user.CreatedAt = time.Now().UTC()

	if _, err := u.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.Conflict("Email already registered")
		}
		return fmt.Errorf("mongo: inserting user %s: %w", user.Email, err)
	}
	return nil
}

func (u *userCollection) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := u.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if isNoDocuments(err) {
		return nil, apperror.NotFound("user", id)
	}
	if err != nil {
		return nil, fmt.Errorf("mongo: getting user %s: %w", id, err)
	}
	return &user, nil
}

func (u *userCollection) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := u.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if isNoDocuments(err) {
		return nil, apperror.NotFoundMessage("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("mongo: getting user by email: %w", err)
	}
	return &user, nil
}
