package domain

import (
	"time"

	"github.com/google/uuid"
)

// Roles recognized by the authorization layer.
const (
	RoleUser   = "user"
	RoleEditor = "editor"
	RoleAdmin  = "admin"
)

// User is an account in the catalog. Credential material is stored as a
// bcrypt hash; verification lives in the auth feature.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

func NewUser(username, email, passwordHash, role string) *User {
	if role == "" {
		role = RoleUser
	}
	return &User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
}
