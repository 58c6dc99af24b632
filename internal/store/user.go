package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/todoapp/todo-api/internal/domain"
)

// UserStore defines the interface for user data persistence. Users are
// provisioned out-of-band; the application itself only reads them.
type UserStore interface {
	// GetByAPIKey retrieves a user by exact API-key match.
	// Returns ErrUserNotFound if no user holds the key. Callers must not
	// distinguish lookup failures from "key not found" when reporting to
	// clients, to avoid leaking key existence.
	GetByAPIKey(ctx context.Context, apiKey string) (*domain.User, error)

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// List returns a page of users plus the total count across all pages.
	// Used by development tooling to surface sample API keys.
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)

	// Create saves a new user to the store.
	// Returns ErrUsernameExists if the username is already taken.
	Create(ctx context.Context, user *domain.User) error
}
