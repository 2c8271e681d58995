package server

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	v1 "github.com/taskgrove/taskgrove/internal/api/v1"
	"github.com/taskgrove/taskgrove/internal/api/ws"
	"github.com/taskgrove/taskgrove/internal/auth"
	"github.com/taskgrove/taskgrove/internal/todo"
)

func registerAuthRoutes(api huma.API, authSvc *auth.Service) {
	v1.RegisterAuthRoutes(api, authSvc)
}

func registerAPIRoutes(api huma.API, authSvc *auth.Service, todoSvc *todo.Service) {
	v1.RegisterMeRoutes(api, authSvc)
	v1.RegisterListRoutes(api, todoSvc)
	v1.RegisterTaskRoutes(api, todoSvc)
}

func registerWSRoutes(r chi.Router, hub *ws.Hub) {
	r.Get("/lists/{listID}", hub.ServeList)
}
