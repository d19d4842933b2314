package model

import "time"

// DefaultHighlightColor is applied when a highlight is created without a color.
const DefaultHighlightColor = "yellow"

// Highlight marks a verse with a color. Highlights are immutable once created.
type Highlight struct {
	ID        string    `json:"id"         db:"id"         bson:"_id"`
	UserID    string    `json:"user_id"    db:"user_id"    bson:"user_id"`
	Book      string    `json:"book"       db:"book"       bson:"book"`
	Chapter   int       `json:"chapter"    db:"chapter"    bson:"chapter"`
	Verse     int       `json:"verse"      db:"verse"      bson:"verse"`
	Text      string    `json:"text"       db:"text"       bson:"text"`
	Color     string    `json:"color"      db:"color"      bson:"color"`
	CreatedAt time.Time `json:"created_at" db:"created_at" bson:"created_at"`
}

// Bookmark remembers a verse location.
type Bookmark struct {
	ID        string    `json:"id"         db:"id"         bson:"_id"`
	UserID    string    `json:"user_id"    db:"user_id"    bson:"user_id"`
	Book      string    `json:"book"       db:"book"       bson:"book"`
	Chapter   int       `json:"chapter"    db:"chapter"    bson:"chapter"`
	Verse     int       `json:"verse"      db:"verse"      bson:"verse"`
	CreatedAt time.Time `json:"created_at" db:"created_at" bson:"created_at"`
}
