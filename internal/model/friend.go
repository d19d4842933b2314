package model

import "time"

// FriendStatus is the state of a friend edge.
type FriendStatus string

const (
	FriendPending  FriendStatus = "pending"
	FriendAccepted FriendStatus = "accepted"
)

// FriendEdge is a directed relationship: UserID asked FriendID to be friends.
// At most one edge exists per unordered pair of users.
type FriendEdge struct {
	ID        string       `json:"id"         db:"id"         bson:"_id"`
	UserID    string       `json:"user_id"    db:"user_id"    bson:"user_id"`
	FriendID  string       `json:"friend_id"  db:"friend_id"  bson:"friend_id"`
	Status    FriendStatus `json:"status"     db:"status"     bson:"status"`
	CreatedAt time.Time    `json:"created_at" db:"created_at" bson:"created_at"`
}
