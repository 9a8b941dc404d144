package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user record in the database.
// PasswordHash is never serialized into API responses.
type UserDB struct {
	UserID       uuid.UUID `json:"id" db:"user_id"`             // Primary key
	Username     string    `json:"username" db:"username"`      // Unique username
	Email        string    `json:"email" db:"email"`            // Unique email
	PasswordHash string    `json:"-" db:"password_hash"`        // Hashed password, internal only
	CreatedAt    time.Time `json:"created_at" db:"created_at"`  // Creation timestamp
}
