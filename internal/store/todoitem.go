package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/todoapp/todo-api/internal/domain"
)

// TodoitemStore defines the interface for todoitem persistence.
//
// The bulk operations have partial-match, not partial-failure, semantics:
// requested IDs that do not resolve to lists owned by the user are silently
// excluded from the result set, never reported as per-ID errors. Each bulk
// operation executes as a single logical unit; if the store rejects it, no
// partial write is observable.
type TodoitemStore interface {
	// ListForUser returns a page of items scoped to the given list AND the
	// given owner, plus the total count for that scope. Items from other
	// lists or other users are never matched.
	ListForUser(ctx context.Context, userID, todolistID uuid.UUID, offset, limit int) ([]domain.Todoitem, int, error)

	// BulkCreate inserts one item per description under the given list,
	// each with Completed=false, in a single statement. Returns the stored
	// rows with their generated IDs.
	BulkCreate(ctx context.Context, todolistID uuid.UUID, descriptions []string) ([]domain.Todoitem, error)

	// BulkUpdateForUser applies the patches to the subset of requested items
	// that belong to lists owned by userID. Ownership is re-derived by
	// joining through todolists at update time, never from cached state.
	// Unresolved IDs are dropped without error. For each resolved item only
	// the fields present in its patch are applied. Returns the post-update
	// canonical rows.
	BulkUpdateForUser(ctx context.Context, userID uuid.UUID, patches []domain.TodoitemPatch) ([]domain.Todoitem, error)

	// BulkRemoveForUser deletes the subset of requested items that belong
	// to lists owned by userID and returns the count actually deleted,
	// which may be less than len(ids).
	BulkRemoveForUser(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int, error)
}
