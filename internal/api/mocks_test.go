package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/todoapp/todo-api/internal/api/shared"
	"github.com/todoapp/todo-api/internal/domain"
	"github.com/todoapp/todo-api/internal/store"
)

// mockTodolistStore implements store.TodolistStore via configurable funcs.
// Unset funcs fail the calling test.
type mockTodolistStore struct {
	t           *testing.T
	listForUser func(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Todolist, int, error)
	getByID     func(ctx context.Context, id uuid.UUID) (*domain.Todolist, error)
	create      func(ctx context.Context, list *domain.Todolist) (*domain.Todolist, error)
	update      func(ctx context.Context, list *domain.Todolist) (*domain.Todolist, error)
	delete      func(ctx context.Context, id uuid.UUID) error
}

var _ store.TodolistStore = (*mockTodolistStore)(nil)

func (m *mockTodolistStore) ListForUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Todolist, int, error) {
	if m.listForUser == nil {
		m.t.Fatal("unexpected call to TodolistStore.ListForUser")
	}
	return m.listForUser(ctx, userID, offset, limit)
}

func (m *mockTodolistStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Todolist, error) {
	if m.getByID == nil {
		m.t.Fatal("unexpected call to TodolistStore.GetByID")
	}
	return m.getByID(ctx, id)
}

func (m *mockTodolistStore) Create(ctx context.Context, list *domain.Todolist) (*domain.Todolist, error) {
	if m.create == nil {
		m.t.Fatal("unexpected call to TodolistStore.Create")
	}
	return m.create(ctx, list)
}

func (m *mockTodolistStore) Update(ctx context.Context, list *domain.Todolist) (*domain.Todolist, error) {
	if m.update == nil {
		m.t.Fatal("unexpected call to TodolistStore.Update")
	}
	return m.update(ctx, list)
}

func (m *mockTodolistStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.delete == nil {
		m.t.Fatal("unexpected call to TodolistStore.Delete")
	}
	return m.delete(ctx, id)
}

// mockTodoitemStore implements store.TodoitemStore via configurable funcs.
type mockTodoitemStore struct {
	t                 *testing.T
	listForUser       func(ctx context.Context, userID, todolistID uuid.UUID, offset, limit int) ([]domain.Todoitem, int, error)
	bulkCreate        func(ctx context.Context, todolistID uuid.UUID, descriptions []string) ([]domain.Todoitem, error)
	bulkUpdateForUser func(ctx context.Context, userID uuid.UUID, patches []domain.TodoitemPatch) ([]domain.Todoitem, error)
	bulkRemoveForUser func(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int, error)
}

var _ store.TodoitemStore = (*mockTodoitemStore)(nil)

func (m *mockTodoitemStore) ListForUser(ctx context.Context, userID, todolistID uuid.UUID, offset, limit int) ([]domain.Todoitem, int, error) {
	if m.listForUser == nil {
		m.t.Fatal("unexpected call to TodoitemStore.ListForUser")
	}
	return m.listForUser(ctx, userID, todolistID, offset, limit)
}

func (m *mockTodoitemStore) BulkCreate(ctx context.Context, todolistID uuid.UUID, descriptions []string) ([]domain.Todoitem, error) {
	if m.bulkCreate == nil {
		m.t.Fatal("unexpected call to TodoitemStore.BulkCreate")
	}
	return m.bulkCreate(ctx, todolistID, descriptions)
}

func (m *mockTodoitemStore) BulkUpdateForUser(ctx context.Context, userID uuid.UUID, patches []domain.TodoitemPatch) ([]domain.Todoitem, error) {
	if m.bulkUpdateForUser == nil {
		m.t.Fatal("unexpected call to TodoitemStore.BulkUpdateForUser")
	}
	return m.bulkUpdateForUser(ctx, userID, patches)
}

func (m *mockTodoitemStore) BulkRemoveForUser(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int, error) {
	if m.bulkRemoveForUser == nil {
		m.t.Fatal("unexpected call to TodoitemStore.BulkRemoveForUser")
	}
	return m.bulkRemoveForUser(ctx, userID, ids)
}

// testUser returns a fully populated user for authenticated requests.
func testUser() *domain.User {
	return &domain.User{ID: uuid.New(), Username: "user1", APIKey: "key-alpha"}
}

// newTestLogger returns a logger that swallows output.
func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestRouter mounts the handlers on the real route tree with the given
// user already authenticated, so path parameters resolve exactly as in
// production.
func newTestRouter(user *domain.User, lists *TodolistHandler, items *TodoitemHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(shared.WithUser(req.Context(), user)))
		})
	})
	if lists != nil {
		r.Get("/todos", lists.List)
		r.Post("/todos", lists.Create)
		r.Put("/todos/{todolistId}", lists.Update)
		r.Delete("/todos/{todolistId}", lists.Delete)
	}
	if items != nil {
		r.Get("/todos/{todolistId}/items", items.List)
		r.Post("/todos/{todolistId}/items", items.BulkCreate)
		r.Patch("/items", items.BulkUpdate)
		r.Delete("/items", items.BulkRemove)
	}
	return r
}

func doRequest(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
