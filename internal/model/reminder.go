package model

import "time"

// Reminder is a scheduled study prompt. FriendID optionally names a friend
// the reminder concerns; it is nil when absent.
type Reminder struct {
	ID           string    `json:"id"            db:"id"            bson:"_id"`
	UserID       string    `json:"user_id"       db:"user_id"       bson:"user_id"`
	Title        string    `json:"title"         db:"title"         bson:"title"`
	Description  string    `json:"description"   db:"description"   bson:"description"`
	ReminderTime time.Time `json:"reminder_time" db:"reminder_time" bson:"reminder_time"`
	Completed    bool      `json:"completed"     db:"completed"     bson:"completed"`
	FriendID     *string   `json:"friend_id"     db:"friend_id"     bson:"friend_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"    db:"created_at"    bson:"created_at"`
}
