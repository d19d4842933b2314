package model

import "time"

// Note is a free-form study note, optionally anchored to a verse.
type Note struct {
	ID        string    `json:"id"         db:"id"         bson:"_id"`
	UserID    string    `json:"user_id"    db:"user_id"    bson:"user_id"`
	Title     string    `json:"title"      db:"title"      bson:"title"`
	Content   string    `json:"content"    db:"content"    bson:"content"`
	Book      string    `json:"book"       db:"book"       bson:"book"`
	Chapter   int       `json:"chapter"    db:"chapter"    bson:"chapter"`
	Verse     int       `json:"verse"      db:"verse"      bson:"verse"`
	CreatedAt time.Time `json:"created_at" db:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" bson:"updated_at"`
}

// NoteUpdate is a partial update. A nil field means "leave unchanged";
// it never clears the stored value.
type NoteUpdate struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
	Book    *string `json:"book,omitempty"`
	Chapter *int    `json:"chapter,omitempty"`
	Verse   *int    `json:"verse,omitempty"`
}
