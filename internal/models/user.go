package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a row of the users table.
type UserDB struct {
	UserID       uuid.UUID `json:"user_id" db:"user_id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Identity is the authenticated caller attached to a request context.
type Identity struct {
	UserID   uuid.UUID
	Username string
}
