package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/todoapp/todo-api/internal/domain"
)

// TodolistStore defines the interface for todolist persistence.
type TodolistStore interface {
	// ListForUser returns the requested page of the user's lists plus the
	// total count across all pages. Ordering is by insertion and is
	// deterministic for a given store state.
	ListForUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Todolist, int, error)

	// GetByID retrieves a todolist by its unique ID.
	// Returns ErrTodolistNotFound if the list does not exist.
	// It does NOT check ownership; callers must authorize separately.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Todolist, error)

	// Create saves a new todolist and returns the stored row with its
	// generated timestamps.
	Create(ctx context.Context, list *domain.Todolist) (*domain.Todolist, error)

	// Update persists the list's mutable fields (title) and returns the
	// reloaded canonical row. Returns ErrTodolistNotFound if the list no
	// longer exists.
	Update(ctx context.Context, list *domain.Todolist) (*domain.Todolist, error)

	// Delete removes the list. Deletion cascades to all of its todoitems
	// through the storage layer's foreign-key rule, not application code.
	// Returns ErrTodolistNotFound if the list does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
