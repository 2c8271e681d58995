package v1_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskgrove/taskgrove/internal/domain"
	"github.com/taskgrove/taskgrove/internal/server/middleware"
	"github.com/taskgrove/taskgrove/internal/todo"
	"github.com/taskgrove/taskgrove/internal/tree"
)

// ---------------------------------------------------------------------------
// Context helper — inject a user into context for DoCtx
// ---------------------------------------------------------------------------

func userCtx(userID uuid.UUID) context.Context {
	return context.WithValue(context.Background(), middleware.ContextKeyUserID, userID)
}

// ---------------------------------------------------------------------------
// Mock TodoService
// ---------------------------------------------------------------------------

type mockTodoService struct {
	createListFunc func(ctx context.Context, userID uuid.UUID, name string) (*domain.List, error)
	listsFunc      func(ctx context.Context, userID uuid.UUID) ([]*todo.ListSummary, error)
	getListFunc    func(ctx context.Context, userID, listID uuid.UUID) (*todo.ListTree, error)
	deleteListFunc func(ctx context.Context, userID, listID uuid.UUID) error

	createTaskFunc   func(ctx context.Context, userID uuid.UUID, in todo.CreateTaskInput) (*tree.Node, error)
	updateTaskFunc   func(ctx context.Context, userID, taskID uuid.UUID, upd domain.TaskUpdate) (*tree.Node, error)
	toggleFunc       func(ctx context.Context, userID, taskID uuid.UUID) (*todo.ToggleOutcome, error)
	setCollapsedFunc func(ctx context.Context, userID, taskID uuid.UUID, collapsed *bool) (bool, error)
	moveTaskFunc     func(ctx context.Context, userID, taskID, newListID uuid.UUID) (*tree.Node, error)
	reparentFunc     func(ctx context.Context, userID, taskID uuid.UUID, newParentID *uuid.UUID) (*tree.Node, error)
	deleteTaskFunc   func(ctx context.Context, userID, taskID uuid.UUID) error
}

func (m *mockTodoService) CreateList(ctx context.Context, userID uuid.UUID, name string) (*domain.List, error) {
	return m.createListFunc(ctx, userID, name)
}

func (m *mockTodoService) Lists(ctx context.Context, userID uuid.UUID) ([]*todo.ListSummary, error) {
	return m.listsFunc(ctx, userID)
}

func (m *mockTodoService) GetList(ctx context.Context, userID, listID uuid.UUID) (*todo.ListTree, error) {
	return m.getListFunc(ctx, userID, listID)
}

func (m *mockTodoService) DeleteList(ctx context.Context, userID, listID uuid.UUID) error {
	return m.deleteListFunc(ctx, userID, listID)
}

func (m *mockTodoService) CreateTask(ctx context.Context, userID uuid.UUID, in todo.CreateTaskInput) (*tree.Node, error) {
	return m.createTaskFunc(ctx, userID, in)
}

func (m *mockTodoService) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, upd domain.TaskUpdate) (*tree.Node, error) {
	return m.updateTaskFunc(ctx, userID, taskID, upd)
}

func (m *mockTodoService) ToggleCompletion(ctx context.Context, userID, taskID uuid.UUID) (*todo.ToggleOutcome, error) {
	return m.toggleFunc(ctx, userID, taskID)
}

func (m *mockTodoService) SetCollapsed(ctx context.Context, userID, taskID uuid.UUID, collapsed *bool) (bool, error) {
	return m.setCollapsedFunc(ctx, userID, taskID, collapsed)
}

func (m *mockTodoService) MoveTask(ctx context.Context, userID, taskID, newListID uuid.UUID) (*tree.Node, error) {
	return m.moveTaskFunc(ctx, userID, taskID, newListID)
}

func (m *mockTodoService) ReparentTask(ctx context.Context, userID, taskID uuid.UUID, newParentID *uuid.UUID) (*tree.Node, error) {
	return m.reparentFunc(ctx, userID, taskID, newParentID)
}

func (m *mockTodoService) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	return m.deleteTaskFunc(ctx, userID, taskID)
}

// ---------------------------------------------------------------------------
// Mock AuthService
// ---------------------------------------------------------------------------

type mockAuthService struct {
	registerFunc     func(ctx context.Context, username, email, password string) (*domain.User, error)
	loginFunc        func(ctx context.Context, username, password string) (string, string, error)
	refreshTokenFunc func(ctx context.Context, refreshToken string) (string, error)
	getUserFunc      func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

func (m *mockAuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	return m.registerFunc(ctx, username, email, password)
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (accessToken, refreshToken string, err error) {
	return m.loginFunc(ctx, username, password)
}

func (m *mockAuthService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	return m.refreshTokenFunc(ctx, refreshToken)
}

func (m *mockAuthService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return m.getUserFunc(ctx, userID)
}
