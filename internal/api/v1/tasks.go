package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/taskgrove/taskgrove/internal/domain"
	"github.com/taskgrove/taskgrove/internal/server/middleware"
	"github.com/taskgrove/taskgrove/internal/todo"
	"github.com/taskgrove/taskgrove/internal/tree"
)

type CreateTaskInput struct {
	Body struct {
		ListID      uuid.UUID  `json:"list_id" doc:"List ID"`
		Title       string     `json:"title" minLength:"1" maxLength:"500" doc:"Task title"`
		Description string     `json:"description,omitempty" doc:"Task description"`
		Priority    string     `json:"priority,omitempty" doc:"Task priority: low, medium, or high (defaults to medium)"`
		ParentID    *uuid.UUID `json:"parent_id,omitempty" doc:"Optional parent task ID"`
	}
}

type CreateTaskOutput struct {
	Body *tree.Node
}

type UpdateTaskInput struct {
	ID   uuid.UUID `path:"id" doc:"Task ID"`
	Body struct {
		Title       *string `json:"title,omitempty" maxLength:"500" doc:"Task title"`
		Description *string `json:"description,omitempty" doc:"Task description"`
		Priority    *string `json:"priority,omitempty" doc:"Task priority"`
	}
}

type UpdateTaskOutput struct {
	Body *tree.Node
}

type ToggleTaskInput struct {
	ID uuid.UUID `path:"id" doc:"Task ID"`
}

type ToggleTaskOutput struct {
	Body *todo.ToggleOutcome
}

type CollapseTaskInput struct {
	ID   uuid.UUID `path:"id" doc:"Task ID"`
	Body struct {
		Collapsed *bool `json:"collapsed,omitempty" doc:"Collapse state; omit to flip the current value"`
	}
}

type CollapseTaskOutput struct {
	Body struct {
		Collapsed bool `json:"collapsed"`
	}
}

type MoveTaskInput struct {
	ID   uuid.UUID `path:"id" doc:"Task ID"`
	Body struct {
		ListID uuid.UUID `json:"list_id" doc:"Destination list ID"`
	}
}

type MoveTaskOutput struct {
	Body *tree.Node
}

type ReparentTaskInput struct {
	ID   uuid.UUID `path:"id" doc:"Task ID"`
	Body struct {
		ParentID *uuid.UUID `json:"parent_id" nullable:"true" doc:"New parent task ID; null moves the task to the top level"`
	}
}

type ReparentTaskOutput struct {
	Body *tree.Node
}

type DeleteTaskInput struct {
	ID uuid.UUID `path:"id" doc:"Task ID"`
}

// mapTodoError translates service errors into HTTP problem responses.
func mapTodoError(err error, noun string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return huma.Error404NotFound(noun + " not found")
	case errors.Is(err, domain.ErrDuplicateName):
		return huma.Error409Conflict("a sibling with this name already exists")
	case errors.Is(err, domain.ErrDepthLimitExceeded),
		errors.Is(err, domain.ErrInvalidTitle),
		errors.Is(err, domain.ErrInvalidPriority),
		errors.Is(err, domain.ErrInvalidMove),
		errors.Is(err, domain.ErrCyclicReparent):
		return huma.Error400BadRequest(err.Error())
	default:
		return huma.Error500InternalServerError("operation failed", err)
	}
}

func RegisterTaskRoutes(api huma.API, svc TodoService) {
	huma.Register(api, huma.Operation{
		OperationID: "create-task",
		Method:      http.MethodPost,
		Path:        "/tasks",
		Summary:     "Create a new task",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *CreateTaskInput) (*CreateTaskOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		node, err := svc.CreateTask(ctx, userID, todo.CreateTaskInput{
			ListID:      input.Body.ListID,
			Title:       input.Body.Title,
			Description: input.Body.Description,
			Priority:    domain.Priority(input.Body.Priority),
			ParentID:    input.Body.ParentID,
		})
		if err != nil {
			return nil, mapTodoError(err, "task")
		}

		return &CreateTaskOutput{Body: node}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-task",
		Method:      http.MethodPut,
		Path:        "/tasks/{id}",
		Summary:     "Update a task's title, description, or priority",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *UpdateTaskInput) (*UpdateTaskOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		var upd domain.TaskUpdate
		upd.Title = input.Body.Title
		upd.Description = input.Body.Description
		if input.Body.Priority != nil {
			p := domain.Priority(*input.Body.Priority)
			upd.Priority = &p
		}

		node, err := svc.UpdateTask(ctx, userID, input.ID, upd)
		if err != nil {
			return nil, mapTodoError(err, "task")
		}

		return &UpdateTaskOutput{Body: node}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "toggle-task",
		Method:      http.MethodPatch,
		Path:        "/tasks/{id}/toggle",
		Summary:     "Toggle a task's completion state with cascades",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *ToggleTaskInput) (*ToggleTaskOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		outcome, err := svc.ToggleCompletion(ctx, userID, input.ID)
		if err != nil {
			return nil, mapTodoError(err, "task")
		}

		return &ToggleTaskOutput{Body: outcome}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "collapse-task",
		Method:      http.MethodPatch,
		Path:        "/tasks/{id}/collapse",
		Summary:     "Set or flip a task's collapse state",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *CollapseTaskInput) (*CollapseTaskOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		collapsed, err := svc.SetCollapsed(ctx, userID, input.ID, input.Body.Collapsed)
		if err != nil {
			return nil, mapTodoError(err, "task")
		}

		out := &CollapseTaskOutput{}
		out.Body.Collapsed = collapsed
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "move-task",
		Method:      http.MethodPatch,
		Path:        "/tasks/{id}/move",
		Summary:     "Move a top-level task to another list",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *MoveTaskInput) (*MoveTaskOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		node, err := svc.MoveTask(ctx, userID, input.ID, input.Body.ListID)
		if err != nil {
			return nil, mapTodoError(err, "task")
		}

		return &MoveTaskOutput{Body: node}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "reparent-task",
		Method:      http.MethodPatch,
		Path:        "/tasks/{id}/parent",
		Summary:     "Nest a task under a new parent",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *ReparentTaskInput) (*ReparentTaskOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		node, err := svc.ReparentTask(ctx, userID, input.ID, input.Body.ParentID)
		if err != nil {
			return nil, mapTodoError(err, "task")
		}

		return &ReparentTaskOutput{Body: node}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-task",
		Method:      http.MethodDelete,
		Path:        "/tasks/{id}",
		Summary:     "Delete a task and its subtree",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *DeleteTaskInput) (*struct{}, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		if err := svc.DeleteTask(ctx, userID, input.ID); err != nil {
			return nil, mapTodoError(err, "task")
		}

		return nil, nil
	})
}
