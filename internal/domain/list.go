package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// List is a named collection of tasks owned by one user. Deleting a list
// deletes every task transitively under it.
type List struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	CreatedAt time.Time
}

// NewList creates a List with validated required fields. The name is trimmed.
func NewList(userID uuid.UUID, name string) (*List, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("list: user: %w", ErrNotFound)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("list: %w", ErrInvalidTitle)
	}
	return &List{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now(),
	}, nil
}

type ListRepository interface {
	Create(ctx context.Context, l *List) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*List, error)
	// GetByName looks a list up by exact name within one user's lists.
	GetByName(ctx context.Context, userID uuid.UUID, name string) (*List, error)
	List(ctx context.Context, userID uuid.UUID) ([]*List, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
