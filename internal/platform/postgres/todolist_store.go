package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/todoapp/todo-api/internal/domain"
	"github.com/todoapp/todo-api/internal/platform/logger"
	"github.com/todoapp/todo-api/internal/store"
)

// TodolistStore implements the store.TodolistStore interface using PostgreSQL.
type TodolistStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTodolistStore creates a new PostgreSQL implementation of
// store.TodolistStore. If log is nil, the default logger is used.
func NewTodolistStore(db store.DBTX, log *slog.Logger) *TodolistStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &TodolistStore{
		db:     db,
		logger: log.With(slog.String("component", "todolist_store")),
	}
}

// Ensure TodolistStore implements store.TodolistStore
var _ store.TodolistStore = (*TodolistStore)(nil)

// ListForUser implements store.TodolistStore.ListForUser.
// The page is ordered by insertion (created_at, then id as tiebreaker) so the
// order is deterministic for a given store state.
func (s *TodolistStore) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]domain.Todolist, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var total int
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM todolists WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		log.Error("failed to count todolists",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, 0, MapError(err)
	}

	query := `
		SELECT id, user_id, title, created_at, updated_at
		FROM todolists
		WHERE user_id = $1
		ORDER BY created_at, id
		OFFSET $2 LIMIT $3
	`

	rows, err := s.db.Query(ctx, query, userID, offset, limit)
	if err != nil {
		log.Error("failed to list todolists",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, 0, MapError(err)
	}
	defer rows.Close()

	var lists []domain.Todolist
	for rows.Next() {
		var l domain.Todolist
		if err := rows.Scan(&l.ID, &l.UserID, &l.Title, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, 0, MapError(err)
		}
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, MapError(err)
	}

	return lists, total, nil
}

// GetByID implements store.TodolistStore.GetByID.
// Returns store.ErrTodolistNotFound if the list does not exist. Ownership is
// deliberately not checked here; the caller authorizes separately.
func (s *TodolistStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Todolist, error) {
	query := `
		SELECT id, user_id, title, created_at, updated_at
		FROM todolists
		WHERE id = $1
	`

	var l domain.Todolist
	err := s.db.QueryRow(ctx, query, id).
		Scan(&l.ID, &l.UserID, &l.Title, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrTodolistNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get todolist",
			slog.String("error", err.Error()),
			slog.String("todolist_id", id.String()))
		return nil, MapError(err)
	}

	return &l, nil
}

// Create implements store.TodolistStore.Create.
func (s *TodolistStore) Create(ctx context.Context, list *domain.Todolist) (*domain.Todolist, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := list.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO todolists (id, user_id, title, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, title, created_at, updated_at
	`

	var created domain.Todolist
	err := s.db.QueryRow(ctx, query,
		list.ID, list.UserID, list.Title, list.CreatedAt, list.UpdatedAt).
		Scan(&created.ID, &created.UserID, &created.Title, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		log.Error("failed to create todolist",
			slog.String("error", err.Error()),
			slog.String("todolist_id", list.ID.String()),
			slog.String("user_id", list.UserID.String()))
		return nil, MapError(err)
	}

	log.Info("todolist created",
		slog.String("todolist_id", created.ID.String()),
		slog.String("user_id", created.UserID.String()))
	return &created, nil
}

// Update implements store.TodolistStore.Update.
// Only the title is mutable. The reloaded canonical row is returned so the
// caller observes any store-applied timestamps.
func (s *TodolistStore) Update(ctx context.Context, list *domain.Todolist) (*domain.Todolist, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := list.Validate(); err != nil {
		return nil, err
	}

	query := `
		UPDATE todolists
		SET title = $1, updated_at = now()
		WHERE id = $2
		RETURNING id, user_id, title, created_at, updated_at
	`

	var updated domain.Todolist
	err := s.db.QueryRow(ctx, query, list.Title, list.ID).
		Scan(&updated.ID, &updated.UserID, &updated.Title, &updated.CreatedAt, &updated.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrTodolistNotFound
		}
		log.Error("failed to update todolist",
			slog.String("error", err.Error()),
			slog.String("todolist_id", list.ID.String()))
		return nil, MapError(err)
	}

	log.Debug("todolist updated", slog.String("todolist_id", updated.ID.String()))
	return &updated, nil
}

// Delete implements store.TodolistStore.Delete.
// Items under the list are removed by the ON DELETE CASCADE rule on
// todoitems.todolist_id; no application-level iteration happens here.
func (s *TodolistStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tag, err := s.db.Exec(ctx, `DELETE FROM todolists WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete todolist",
			slog.String("error", err.Error()),
			slog.String("todolist_id", id.String()))
		return MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrTodolistNotFound
	}

	log.Info("todolist deleted", slog.String("todolist_id", id.String()))
	return nil
}
