package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User is the ownership root: every list, and transitively every task,
// belongs to exactly one user.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string // argon2id
	CreatedAt    time.Time
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
