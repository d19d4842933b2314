package model

import "time"

// Chat is a direct conversation between exactly two users.
// Participants is ordered: the creator first, then the invited user.
type Chat struct {
	ID           string    `json:"id"           db:"id"         bson:"_id"`
	Participants []string  `json:"participants"                 bson:"participants"`
	CreatedAt    time.Time `json:"created_at"   db:"created_at" bson:"created_at"`
}

// ChatMessage is one message in a chat, authored by a participant.
type ChatMessage struct {
	ID        string    `json:"id"         db:"id"         bson:"_id"`
	ChatID    string    `json:"chat_id"    db:"chat_id"    bson:"chat_id"`
	SenderID  string    `json:"sender_id"  db:"sender_id"  bson:"sender_id"`
	Content   string    `json:"content"    db:"content"    bson:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at" bson:"created_at"`
}
