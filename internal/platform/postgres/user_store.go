package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/todoapp/todo-api/internal/domain"
	"github.com/todoapp/todo-api/internal/platform/logger"
	"github.com/todoapp/todo-api/internal/store"
)

// UserStore implements the store.UserStore interface using PostgreSQL.
type UserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewUserStore creates a new PostgreSQL implementation of store.UserStore.
// If log is nil, the default logger is used.
func NewUserStore(db store.DBTX, log *slog.Logger) *UserStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &UserStore{
		db:     db,
		logger: log.With(slog.String("component", "user_store")),
	}
}

// Ensure UserStore implements store.UserStore
var _ store.UserStore = (*UserStore)(nil)

// GetByAPIKey implements store.UserStore.GetByAPIKey.
// Returns store.ErrUserNotFound if no user holds the key.
func (s *UserStore) GetByAPIKey(ctx context.Context, apiKey string) (*domain.User, error) {
	query := `
		SELECT id, username, api_key, created_at, updated_at
		FROM users
		WHERE api_key = $1
	`

	user, err := scanUser(s.db.QueryRow(ctx, query, apiKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		// Never log the key itself; its absence or presence is all we need.
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get user by API key",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return user, nil
}

// GetByID implements store.UserStore.GetByID.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `
		SELECT id, username, api_key, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	user, err := scanUser(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get user by ID",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, MapError(err)
	}

	return user, nil
}

// List implements store.UserStore.List.
func (s *UserStore) List(ctx context.Context, offset, limit int) ([]domain.User, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var total int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		log.Error("failed to count users", slog.String("error", err.Error()))
		return nil, 0, MapError(err)
	}

	query := `
		SELECT id, username, api_key, created_at, updated_at
		FROM users
		ORDER BY created_at, id
		OFFSET $1 LIMIT $2
	`

	rows, err := s.db.Query(ctx, query, offset, limit)
	if err != nil {
		log.Error("failed to list users", slog.String("error", err.Error()))
		return nil, 0, MapError(err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.APIKey, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, MapError(err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, MapError(err)
	}

	return users, total, nil
}

// Create implements store.UserStore.Create.
// Returns store.ErrUsernameExists if the username is already taken.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO users (id, username, api_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.db.Exec(ctx, query,
		user.ID, user.Username, user.APIKey, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("%w: %v", store.ErrUsernameExists, err)
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return MapError(err)
	}

	log.Info("user created", slog.String("user_id", user.ID.String()))
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.APIKey, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
