// Package model defines the data structures used throughout the application.
//
// Each entity carries three sets of struct tags:
//   - json: the API representation
//   - db:   the SQLite column name
//   - bson: the MongoDB field name (ids are stored as "_id")
package model

import "time"

// User represents a registered user account.
//
// PasswordHash is the bcrypt output and is never serialized to JSON.
// Email is stored trimmed and lower-cased; the store enforces uniqueness.
type User struct {
	ID           string    `json:"id"         db:"id"            bson:"_id"`
	Name         string    `json:"name"       db:"name"          bson:"name"`
	Email        string    `json:"email"      db:"email"         bson:"email"`
	PasswordHash string    `json:"-"          db:"password_hash" bson:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"    bson:"created_at"`
}

// PublicUser is the profile other users are allowed to see.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Public strips everything but the public profile fields.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}
