package api

import (
	"github.com/google/uuid"
	"github.com/todoapp/todo-api/internal/domain"
)

// Common request/response structures

// MessageResponse is a plain informational body, e.g. the root endpoint's
// hello message.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreateTodolistRequest defines the payload for creating a todolist,
// optionally seeding it with items.
type CreateTodolistRequest struct {
	Title string   `json:"title" validate:"required"`
	Items []string `json:"items,omitempty"`
}

// UpdateTodolistRequest defines the payload for renaming a todolist.
type UpdateTodolistRequest struct {
	Title string `json:"title" validate:"required"`
}

// TodolistResponse is the public shape of a todolist.
type TodolistResponse struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

// TodolistPageResponse is one page of todolists plus the total count across
// all pages.
type TodolistPageResponse struct {
	Total int                `json:"total"`
	Data  []TodolistResponse `json:"data"`
}

// TodoitemResponse is the public shape of a todoitem.
type TodoitemResponse struct {
	ID          uuid.UUID `json:"id"`
	Completed   bool      `json:"completed"`
	Description string    `json:"description"`
}

// TodoitemPageResponse is one page of todoitems plus the total count across
// all pages.
type TodoitemPageResponse struct {
	Total int                `json:"total"`
	Data  []TodoitemResponse `json:"data"`
}

// TodoitemPatchRequest is one element of the bulk update payload. Absent
// fields leave the stored value untouched.
type TodoitemPatchRequest struct {
	ID          string  `json:"id" validate:"required"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

func todolistToResponse(list *domain.Todolist) TodolistResponse {
	return TodolistResponse{ID: list.ID, Title: list.Title}
}

func todoitemToResponse(item *domain.Todoitem) TodoitemResponse {
	return TodoitemResponse{
		ID:          item.ID,
		Completed:   item.Completed,
		Description: item.Description,
	}
}

func todoitemsToResponse(items []domain.Todoitem) []TodoitemResponse {
	out := make([]TodoitemResponse, 0, len(items))
	for i := range items {
		out = append(out, todoitemToResponse(&items[i]))
	}
	return out
}
