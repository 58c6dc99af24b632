package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todoapp/todo-api/internal/domain"
	"github.com/todoapp/todo-api/internal/store"
)

func newTodoitemTestSetup(t *testing.T) (*domain.User, *mockTodolistStore, *mockTodoitemStore, http.Handler) {
	t.Helper()
	user := testUser()
	lists := &mockTodolistStore{t: t}
	items := &mockTodoitemStore{t: t}
	handler := NewTodoitemHandler(lists, items, newTestLogger())
	return user, lists, items, newTestRouter(user, nil, handler)
}

func ownedList(user *domain.User, listID uuid.UUID) func(context.Context, uuid.UUID) (*domain.Todolist, error) {
	return func(_ context.Context, _ uuid.UUID) (*domain.Todolist, error) {
		return &domain.Todolist{ID: listID, UserID: user.ID, Title: "Trip"}, nil
	}
}

func TestTodoitemHandler_List(t *testing.T) {
	user, lists, items, router := newTodoitemTestSetup(t)

	listID := uuid.New()
	now := time.Now().UTC()
	lists.getByID = ownedList(user, listID)
	items.listForUser = func(_ context.Context, userID, todolistID uuid.UUID, offset, limit int) ([]domain.Todoitem, int, error) {
		assert.Equal(t, user.ID, userID)
		assert.Equal(t, listID, todolistID)
		assert.Equal(t, DefaultOffset, offset)
		assert.Equal(t, DefaultLimit, limit)
		return []domain.Todoitem{
			{ID: uuid.New(), TodolistID: listID, Description: "pack bags", Completed: true, CreatedAt: now, UpdatedAt: now},
		}, 1, nil
	}

	w := doRequest(router, http.MethodGet, "/todos/"+listID.String()+"/items", "")

	require.Equal(t, http.StatusOK, w.Code)
	var page TodoitemPageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "pack bags", page.Data[0].Description)
	assert.True(t, page.Data[0].Completed)
}

func TestTodoitemHandler_List_ListNotFound(t *testing.T) {
	_, lists, _, router := newTodoitemTestSetup(t)

	lists.getByID = func(_ context.Context, _ uuid.UUID) (*domain.Todolist, error) {
		return nil, store.ErrTodolistNotFound
	}

	w := doRequest(router, http.MethodGet, "/todos/"+uuid.NewString()+"/items", "")

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Todo list not found"}`, w.Body.String())
}

func TestTodoitemHandler_List_ForeignList(t *testing.T) {
	_, lists, _, router := newTodoitemTestSetup(t)

	listID := uuid.New()
	lists.getByID = func(_ context.Context, _ uuid.UUID) (*domain.Todolist, error) {
		return &domain.Todolist{ID: listID, UserID: uuid.New(), Title: "Not Yours"}, nil
	}

	w := doRequest(router, http.MethodGet, "/todos/"+listID.String()+"/items", "")

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"message":"You do not have access to this resource"}`, w.Body.String())
}

func TestTodoitemHandler_BulkCreate(t *testing.T) {
	user, lists, items, router := newTodoitemTestSetup(t)

	listID := uuid.New()
	now := time.Now().UTC()
	lists.getByID = ownedList(user, listID)
	items.bulkCreate = func(_ context.Context, todolistID uuid.UUID, descriptions []string) ([]domain.Todoitem, error) {
		assert.Equal(t, listID, todolistID)
		assert.Equal(t, []string{"pack bags", "book hotel"}, descriptions)
		return []domain.Todoitem{
			{ID: uuid.New(), TodolistID: listID, Description: "pack bags", CreatedAt: now, UpdatedAt: now},
			{ID: uuid.New(), TodolistID: listID, Description: "book hotel", CreatedAt: now, UpdatedAt: now},
		}, nil
	}

	w := doRequest(router, http.MethodPost, "/todos/"+listID.String()+"/items",
		`["pack bags","book hotel"]`)

	require.Equal(t, http.StatusCreated, w.Code)
	var created []TodoitemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Len(t, created, 2)
	assert.False(t, created[0].Completed)
	assert.Equal(t, "book hotel", created[1].Description)
}

func TestTodoitemHandler_BulkCreate_Validation(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantMessage string
	}{
		{
			name:        "empty batch",
			body:        `[]`,
			wantMessage: "items must contain at least 1 item",
		},
		{
			name:        "element too short",
			body:        `["valid item","ab"]`,
			wantMessage: fmt.Sprintf("items[1] must be at least %d characters long", domain.MinTextLength),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, router := newTodoitemTestSetup(t)

			w := doRequest(router, http.MethodPost, "/todos/"+uuid.NewString()+"/items", tt.body)

			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"message":%q}`, tt.wantMessage), w.Body.String())
		})
	}
}

func TestTodoitemHandler_BulkCreate_ForeignList(t *testing.T) {
	_, lists, _, router := newTodoitemTestSetup(t)

	listID := uuid.New()
	lists.getByID = func(_ context.Context, _ uuid.UUID) (*domain.Todolist, error) {
		return &domain.Todolist{ID: listID, UserID: uuid.New(), Title: "Not Yours"}, nil
	}

	w := doRequest(router, http.MethodPost, "/todos/"+listID.String()+"/items", `["pack bags"]`)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestTodoitemHandler_BulkUpdate(t *testing.T) {
	user, _, items, router := newTodoitemTestSetup(t)

	itemID := uuid.New()
	otherID := uuid.New()
	now := time.Now().UTC()
	items.bulkUpdateForUser = func(_ context.Context, userID uuid.UUID, patches []domain.TodoitemPatch) ([]domain.Todoitem, error) {
		assert.Equal(t, user.ID, userID)
		require.Len(t, patches, 2)
		assert.Equal(t, itemID, patches[0].ID)
		require.NotNil(t, patches[0].Completed)
		assert.True(t, *patches[0].Completed)
		assert.Nil(t, patches[0].Description)
		require.NotNil(t, patches[1].Description)
		assert.Equal(t, "pack warm clothes", *patches[1].Description)
		return []domain.Todoitem{
			{ID: itemID, Description: "pack bags", Completed: true, CreatedAt: now, UpdatedAt: now},
			{ID: otherID, Description: "pack warm clothes", CreatedAt: now, UpdatedAt: now},
		}, nil
	}

	body := fmt.Sprintf(`[{"id":%q,"completed":true},{"id":%q,"description":"pack warm clothes"}]`,
		itemID, otherID)
	w := doRequest(router, http.MethodPatch, "/items", body)

	require.Equal(t, http.StatusOK, w.Code)
	var updated []TodoitemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.Len(t, updated, 2)
	assert.True(t, updated[0].Completed)
	assert.Equal(t, "pack warm clothes", updated[1].Description)
}

func TestTodoitemHandler_BulkUpdate_ForeignItemsDropOut(t *testing.T) {
	_, _, items, router := newTodoitemTestSetup(t)

	// The store resolves none of the requested IDs to this user.
	items.bulkUpdateForUser = func(_ context.Context, _ uuid.UUID, _ []domain.TodoitemPatch) ([]domain.Todoitem, error) {
		return []domain.Todoitem{}, nil
	}

	body := fmt.Sprintf(`[{"id":%q,"completed":true}]`, uuid.NewString())
	w := doRequest(router, http.MethodPatch, "/items", body)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestTodoitemHandler_BulkUpdate_Validation(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantMessage string
	}{
		{
			name:        "empty batch",
			body:        `[]`,
			wantMessage: "items must contain at least 1 item",
		},
		{
			name:        "malformed id",
			body:        `[{"id":"not-a-uuid","completed":true}]`,
			wantMessage: "items[0].id must be a valid UUID",
		},
		{
			name:        "description too short",
			body:        fmt.Sprintf(`[{"id":%q,"description":"ab"}]`, uuid.NewString()),
			wantMessage: fmt.Sprintf("items[0].description must be at least %d characters long", domain.MinTextLength),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, router := newTodoitemTestSetup(t)

			w := doRequest(router, http.MethodPatch, "/items", tt.body)

			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"message":%q}`, tt.wantMessage), w.Body.String())
		})
	}
}

func TestTodoitemHandler_BulkRemove(t *testing.T) {
	user, _, items, router := newTodoitemTestSetup(t)

	ids := []uuid.UUID{uuid.New(), uuid.New()}
	items.bulkRemoveForUser = func(_ context.Context, userID uuid.UUID, gotIDs []uuid.UUID) (int, error) {
		assert.Equal(t, user.ID, userID)
		assert.Equal(t, ids, gotIDs)
		// Only one of the two belonged to this user.
		return 1, nil
	}

	body := fmt.Sprintf(`[%q,%q]`, ids[0], ids[1])
	w := doRequest(router, http.MethodDelete, "/items", body)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestTodoitemHandler_BulkRemove_Validation(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantMessage string
	}{
		{
			name:        "empty batch",
			body:        `[]`,
			wantMessage: "itemIds must contain at least 1 item",
		},
		{
			name:        "malformed id",
			body:        `["not-a-uuid"]`,
			wantMessage: "itemIds[0] must be a valid UUID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, router := newTodoitemTestSetup(t)

			w := doRequest(router, http.MethodDelete, "/items", tt.body)

			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"message":%q}`, tt.wantMessage), w.Body.String())
		})
	}
}
