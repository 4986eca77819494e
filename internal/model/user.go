package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of user roles.
type Role string

const (
	// RoleAdmin may manage every user and task.
	RoleAdmin Role = "admin"
	// RoleUser may manage only tasks they created or were assigned.
	RoleUser Role = "user"
)

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}

// User represents an authenticated user in the system.
type User struct {
	ID           uuid.UUID `json:"uuid" gorm:"type:char(36);primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:100;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role      `json:"role" gorm:"size:20;not null;default:'user'"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserCreate is the input schema for creating a user. The plain password only
// lives here; it is hashed before anything is persisted.
type UserCreate struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     Role   `json:"role" validate:"omitempty,oneof=admin user"`
}

// UserUpdate is the partial-merge input schema for updating a user.
// Nil fields are left untouched.
type UserUpdate struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	Role     *Role   `json:"role" validate:"omitempty,oneof=admin user"`
}
