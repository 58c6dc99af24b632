package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/todoapp/todo-api/internal/domain"
	"github.com/todoapp/todo-api/internal/platform/logger"
	"github.com/todoapp/todo-api/internal/store"
)

// TodoitemStore implements the store.TodoitemStore interface using PostgreSQL.
//
// Ownership of an item is always re-derived by joining through its todolist's
// user_id inside the query; it is never taken from the caller's view of the
// item. That keeps cross-user tampering impossible even with stale input.
type TodoitemStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTodoitemStore creates a new PostgreSQL implementation of
// store.TodoitemStore. If log is nil, the default logger is used.
func NewTodoitemStore(db store.DBTX, log *slog.Logger) *TodoitemStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &TodoitemStore{
		db:     db,
		logger: log.With(slog.String("component", "todoitem_store")),
	}
}

// Ensure TodoitemStore implements store.TodoitemStore
var _ store.TodoitemStore = (*TodoitemStore)(nil)

const todoitemColumns = `item.id, item.todolist_id, item.description, item.completed, item.created_at, item.updated_at`

// ListForUser implements store.TodoitemStore.ListForUser.
func (s *TodoitemStore) ListForUser(
	ctx context.Context,
	userID, todolistID uuid.UUID,
	offset, limit int,
) ([]domain.Todoitem, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	countQuery := `
		SELECT COUNT(*)
		FROM todoitems item
		JOIN todolists list ON list.id = item.todolist_id
		WHERE item.todolist_id = $1 AND list.user_id = $2
	`

	var total int
	if err := s.db.QueryRow(ctx, countQuery, todolistID, userID).Scan(&total); err != nil {
		log.Error("failed to count todoitems",
			slog.String("error", err.Error()),
			slog.String("todolist_id", todolistID.String()))
		return nil, 0, MapError(err)
	}

	query := `
		SELECT ` + todoitemColumns + `
		FROM todoitems item
		JOIN todolists list ON list.id = item.todolist_id
		WHERE item.todolist_id = $1 AND list.user_id = $2
		ORDER BY item.created_at, item.id
		OFFSET $3 LIMIT $4
	`

	rows, err := s.db.Query(ctx, query, todolistID, userID, offset, limit)
	if err != nil {
		log.Error("failed to list todoitems",
			slog.String("error", err.Error()),
			slog.String("todolist_id", todolistID.String()))
		return nil, 0, MapError(err)
	}

	items, err := collectTodoitems(rows)
	if err != nil {
		return nil, 0, MapError(err)
	}

	return items, total, nil
}

// BulkCreate implements store.TodoitemStore.BulkCreate.
// All rows are inserted by a single statement, so a rejected batch leaves no
// partial write behind.
func (s *TodoitemStore) BulkCreate(
	ctx context.Context,
	todolistID uuid.UUID,
	descriptions []string,
) ([]domain.Todoitem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(descriptions) == 0 {
		return []domain.Todoitem{}, nil
	}

	ids := make([]uuid.UUID, len(descriptions))
	for i := range descriptions {
		ids[i] = uuid.New()
	}

	query := `
		INSERT INTO todoitems (id, todolist_id, description, completed)
		SELECT input.id, $1, input.description, false
		FROM unnest($2::uuid[], $3::text[]) AS input(id, description)
		RETURNING id, todolist_id, description, completed, created_at, updated_at
	`

	rows, err := s.db.Query(ctx, query, todolistID, ids, descriptions)
	if err != nil {
		log.Error("failed to bulk create todoitems",
			slog.String("error", err.Error()),
			slog.String("todolist_id", todolistID.String()),
			slog.Int("count", len(descriptions)))
		return nil, MapError(err)
	}

	items, err := collectTodoitems(rows)
	if err != nil {
		return nil, MapError(err)
	}

	log.Info("todoitems created",
		slog.String("todolist_id", todolistID.String()),
		slog.Int("count", len(items)))
	return items, nil
}

// BulkUpdateForUser implements store.TodoitemStore.BulkUpdateForUser.
//
// The requested IDs are first resolved to the subset owned by userID (left
// join through todolists, locked FOR UPDATE), then each resolved row gets its
// patch applied. IDs that do not resolve are dropped silently; a resolved row
// without a matching patch means the invariants are broken and surfaces as
// store.ErrInternal.
func (s *TodoitemStore) BulkUpdateForUser(
	ctx context.Context,
	userID uuid.UUID,
	patches []domain.TodoitemPatch,
) (items []domain.Todoitem, err error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	byID := make(map[uuid.UUID]domain.TodoitemPatch, len(patches))
	ids := make([]uuid.UUID, 0, len(patches))
	for _, p := range patches {
		if p.IsEmpty() {
			continue
		}
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}
	if len(ids) == 0 {
		return []domain.Todoitem{}, nil
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrTransactionFailed, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = fmt.Errorf("%w: %v", store.ErrTransactionFailed, e)
			items = nil
		}
	}()

	resolveQuery := `
		SELECT ` + todoitemColumns + `
		FROM todoitems item
		LEFT JOIN todolists list ON list.id = item.todolist_id
		WHERE item.id = ANY($1) AND list.user_id = $2
		ORDER BY item.created_at, item.id
		FOR UPDATE OF item
	`

	rows, err := tx.Query(ctx, resolveQuery, ids, userID)
	if err != nil {
		return nil, MapError(err)
	}
	resolved, err := collectTodoitems(rows)
	if err != nil {
		return nil, MapError(err)
	}

	updateQuery := `
		UPDATE todoitems
		SET description = $1, completed = $2, updated_at = now()
		WHERE id = $3
		RETURNING id, todolist_id, description, completed, created_at, updated_at
	`

	items = make([]domain.Todoitem, 0, len(resolved))
	for _, item := range resolved {
		patch, ok := byID[item.ID]
		if !ok {
			// A resolved row must have come from a requested patch.
			return nil, fmt.Errorf("%w: resolved item %s has no matching patch",
				store.ErrInternal, item.ID)
		}
		patch.Apply(&item)

		var updated domain.Todoitem
		err = tx.QueryRow(ctx, updateQuery, item.Description, item.Completed, item.ID).
			Scan(&updated.ID, &updated.TodolistID, &updated.Description,
				&updated.Completed, &updated.CreatedAt, &updated.UpdatedAt)
		if err != nil {
			return nil, MapError(err)
		}
		items = append(items, updated)
	}

	log.Debug("todoitems updated",
		slog.String("user_id", userID.String()),
		slog.Int("requested", len(ids)),
		slog.Int("updated", len(items)))
	return items, nil
}

// BulkRemoveForUser implements store.TodoitemStore.BulkRemoveForUser.
// A single owner-scoped DELETE resolves and removes the owned subset; the
// returned count is whatever actually matched.
func (s *TodoitemStore) BulkRemoveForUser(
	ctx context.Context,
	userID uuid.UUID,
	ids []uuid.UUID,
) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(ids) == 0 {
		return 0, nil
	}

	query := `
		DELETE FROM todoitems item
		USING todolists list
		WHERE list.id = item.todolist_id AND item.id = ANY($1) AND list.user_id = $2
	`

	tag, err := s.db.Exec(ctx, query, ids, userID)
	if err != nil {
		log.Error("failed to bulk remove todoitems",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int("requested", len(ids)))
		return 0, MapError(err)
	}

	deleted := int(tag.RowsAffected())
	log.Debug("todoitems deleted",
		slog.String("user_id", userID.String()),
		slog.Int("requested", len(ids)),
		slog.Int("deleted", deleted))
	return deleted, nil
}

func collectTodoitems(rows pgx.Rows) ([]domain.Todoitem, error) {
	defer rows.Close()

	var items []domain.Todoitem
	for rows.Next() {
		var it domain.Todoitem
		if err := rows.Scan(&it.ID, &it.TodolistID, &it.Description,
			&it.Completed, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
