package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/taskgrove/taskgrove/internal/domain"
	"github.com/taskgrove/taskgrove/internal/server/middleware"
	"github.com/taskgrove/taskgrove/internal/todo"
)

type CreateListInput struct {
	Body struct {
		Name string `json:"name" minLength:"1" maxLength:"255" doc:"List name"`
	}
}

type CreateListOutput struct {
	Body *domain.List
}

type ListListsOutput struct {
	Body []*todo.ListSummary
}

type GetListInput struct {
	ID uuid.UUID `path:"id" doc:"List ID"`
}

type GetListOutput struct {
	Body *todo.ListTree
}

type DeleteListInput struct {
	ID uuid.UUID `path:"id" doc:"List ID"`
}

func RegisterListRoutes(api huma.API, svc TodoService) {
	huma.Register(api, huma.Operation{
		OperationID: "create-list",
		Method:      http.MethodPost,
		Path:        "/lists",
		Summary:     "Create a new list",
		Tags:        []string{"Lists"},
	}, func(ctx context.Context, input *CreateListInput) (*CreateListOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		l, err := svc.CreateList(ctx, userID, input.Body.Name)
		if err != nil {
			return nil, mapTodoError(err, "list")
		}

		return &CreateListOutput{Body: l}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-lists",
		Method:      http.MethodGet,
		Path:        "/lists",
		Summary:     "List all lists with task statistics",
		Tags:        []string{"Lists"},
	}, func(ctx context.Context, _ *struct{}) (*ListListsOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		lists, err := svc.Lists(ctx, userID)
		if err != nil {
			return nil, mapTodoError(err, "list")
		}

		return &ListListsOutput{Body: lists}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-list",
		Method:      http.MethodGet,
		Path:        "/lists/{id}",
		Summary:     "Get a list with its task tree",
		Tags:        []string{"Lists"},
	}, func(ctx context.Context, input *GetListInput) (*GetListOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		lt, err := svc.GetList(ctx, userID, input.ID)
		if err != nil {
			return nil, mapTodoError(err, "list")
		}

		return &GetListOutput{Body: lt}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-list",
		Method:      http.MethodDelete,
		Path:        "/lists/{id}",
		Summary:     "Delete a list and all its tasks",
		Tags:        []string{"Lists"},
	}, func(ctx context.Context, input *DeleteListInput) (*struct{}, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		if err := svc.DeleteList(ctx, userID, input.ID); err != nil {
			return nil, mapTodoError(err, "list")
		}

		return nil, nil
	})
}
