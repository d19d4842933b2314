// Package mongo implements the repository interfaces on MongoDB.
//
// Each entity lives in its own collection keyed by "_id", which holds the
// same xid string the SQLite backend uses as its primary key. Ownership and
// membership are enforced in the filter of every query, exactly like the
// WHERE clauses of the SQLite backend.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/sakif/bible-study/internal/apperror"
	"github.com/sakif/bible-study/internal/repository"
)

const (
	usersCollection      = "users"
	notesCollection      = "notes"
	highlightsCollection = "highlights"
	bookmarksCollection  = "bookmarks"
	friendsCollection    = "friends"
	remindersCollection  = "reminders"
	chatsCollection      = "chats"
	messagesCollection   = "chat_messages"
)

// Store is the MongoDB-backed repository.Store.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ repository.Store = (*Store)(nil)

// New connects to uri, pings the server, and makes sure every index exists.
func New(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo: connecting: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo: pinging server: %w", err)
	}

	s := &Store{client: client, db: client.Database(database)}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return s, nil
}

// ensureIndexes is the MongoDB counterpart of the SQLite migrations.
// CreateMany is idempotent for identical index specs.
func (s *Store) ensureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		notesCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
		},
		highlightsCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
		},
		bookmarksCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
		},
		friendsCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "friend_id", Value: 1}, {Key: "status", Value: 1}}},
		},
		remindersCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
		},
		chatsCollection: {
			{Keys: bson.D{{Key: "participants", Value: 1}}},
		},
		messagesCollection: {
			{Keys: bson.D{{Key: "chat_id", Value: 1}}},
		},
	}

	for name, models := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("mongo: creating indexes for %s: %w", name, err)
		}
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close() error {
	return s.client.Disconnect(context.Background())
}

func (s *Store) Users() repository.UserRepository {
	return &userCollection{coll: s.db.Collection(usersCollection)}
}

func (s *Store) Notes() repository.NoteRepository {
	return &noteCollection{coll: s.db.Collection(notesCollection)}
}

func (s *Store) Highlights() repository.HighlightRepository {
	return &highlightCollection{coll: s.db.Collection(highlightsCollection)}
}

func (s *Store) Bookmarks() repository.BookmarkRepository {
	return &bookmarkCollection{coll: s.db.Collection(bookmarksCollection)}
}

func (s *Store) Friends() repository.FriendRepository {
	return &friendCollection{coll: s.db.Collection(friendsCollection)}
}

func (s *Store) Reminders() repository.ReminderRepository {
	return &reminderCollection{coll: s.db.Collection(remindersCollection)}
}

func (s *Store) Chats() repository.ChatRepository {
	return &chatCollection{
		chats:    s.db.Collection(chatsCollection),
		messages: s.db.Collection(messagesCollection),
	}
}

// findOptions caps the result and sorts by _id. xids start with a
// timestamp, so this is insertion order.
func findOptions(opts repository.ListOptions) *options.FindOptionsBuilder {
	return options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(opts.EffectiveLimit()))
}

// findAll runs a find and decodes every document into a non-nil slice.
func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts repository.ListOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, findOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("mongo: finding in %s: %w", coll.Name(), err)
	}

	out := make([]T, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("mongo: decoding %s: %w", coll.Name(), err)
	}
	return out, nil
}

// deleteOwned removes the document matching both id and user_id.
func deleteOwned(ctx context.Context, coll *mongo.Collection, resource, id, userID string) error {
	result, err := coll.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("mongo: deleting %s %s: %w", resource, id, err)
	}
	if result.DeletedCount == 0 {
		return apperror.NotFound(resource, id)
	}
	return nil
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
