package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// User is an account that owns assessments. The password is stored only as a
// bcrypt hash; the domain never sees the plaintext.
type User struct {
	createdAt    time.Time
	username     string
	passwordHash string
	id           uuid.UUID
}

// NewUser creates a user with an already-hashed password.
func NewUser(username, passwordHash string) (*User, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}

	return &User{
		id:           uuid.New(),
		username:     username,
		passwordHash: passwordHash,
		createdAt:    time.Now().UTC(),
	}, nil
}

// ReconstructUser rebuilds a User from persisted data.
func ReconstructUser(id uuid.UUID, username, passwordHash string, createdAt time.Time) *User {
	return &User{
		id:           id,
		username:     username,
		passwordHash: passwordHash,
		createdAt:    createdAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Username() string     { return u.username }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) CreatedAt() time.Time { return u.createdAt }
