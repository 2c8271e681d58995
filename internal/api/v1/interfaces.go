package v1

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskgrove/taskgrove/internal/domain"
	"github.com/taskgrove/taskgrove/internal/todo"
	"github.com/taskgrove/taskgrove/internal/tree"
)

// TodoService abstracts list and task mutations for handler testing.
// *todo.Service satisfies this interface.
type TodoService interface {
	CreateList(ctx context.Context, userID uuid.UUID, name string) (*domain.List, error)
	Lists(ctx context.Context, userID uuid.UUID) ([]*todo.ListSummary, error)
	GetList(ctx context.Context, userID, listID uuid.UUID) (*todo.ListTree, error)
	DeleteList(ctx context.Context, userID, listID uuid.UUID) error

	CreateTask(ctx context.Context, userID uuid.UUID, in todo.CreateTaskInput) (*tree.Node, error)
	UpdateTask(ctx context.Context, userID, taskID uuid.UUID, upd domain.TaskUpdate) (*tree.Node, error)
	ToggleCompletion(ctx context.Context, userID, taskID uuid.UUID) (*todo.ToggleOutcome, error)
	SetCollapsed(ctx context.Context, userID, taskID uuid.UUID, collapsed *bool) (bool, error)
	MoveTask(ctx context.Context, userID, taskID, newListID uuid.UUID) (*tree.Node, error)
	ReparentTask(ctx context.Context, userID, taskID uuid.UUID, newParentID *uuid.UUID) (*tree.Node, error)
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error
}

// AuthService abstracts authentication operations for handler testing.
// *auth.Service satisfies this interface.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (accessToken, refreshToken string, err error)
	RefreshToken(ctx context.Context, refreshToken string) (string, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}
