package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/todoapp/todo-api/internal/api"
	apiMiddleware "github.com/todoapp/todo-api/internal/api/middleware"
	"github.com/todoapp/todo-api/internal/store"
)

// newRouter configures the application router with all routes and middleware.
// Every request flows validate → authenticate → authorize → store → response;
// the ordering of the route groups below is what guarantees authentication
// runs before any repository work.
func newRouter(
	users store.UserStore,
	lists store.TodolistStore,
	items store.TodoitemStore,
	log *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)

	auth := apiMiddleware.NewAuthMiddleware(users, log)
	todolistHandler := api.NewTodolistHandler(lists, items, log)
	todoitemHandler := api.NewTodoitemHandler(lists, items, log)

	// Public
	r.Get("/", api.Root)

	// Protected
	r.Group(func(r chi.Router) {
		r.Use(auth.Authenticate)

		r.Get("/todos", todolistHandler.List)
		r.Post("/todos", todolistHandler.Create)
		r.Put("/todos/{todolistId}", todolistHandler.Update)
		r.Delete("/todos/{todolistId}", todolistHandler.Delete)

		r.Get("/todos/{todolistId}/items", todoitemHandler.List)
		r.Post("/todos/{todolistId}/items", todoitemHandler.BulkCreate)

		r.Patch("/items", todoitemHandler.BulkUpdate)
		r.Delete("/items", todoitemHandler.BulkRemove)
	})

	return r
}
