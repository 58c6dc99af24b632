package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/todoapp/todo-api/internal/api/shared"
	"github.com/todoapp/todo-api/internal/domain"
	"github.com/todoapp/todo-api/internal/platform/logger"
	"github.com/todoapp/todo-api/internal/store"
)

// TodolistHandler handles todolist-related HTTP requests.
type TodolistHandler struct {
	lists     store.TodolistStore
	items     store.TodoitemStore
	validator *validator.Validate
	logger    *slog.Logger
}

// NewTodolistHandler creates a new TodolistHandler with the given dependencies.
func NewTodolistHandler(
	lists store.TodolistStore,
	items store.TodoitemStore,
	log *slog.Logger,
) *TodolistHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TodolistHandler")
	}

	return &TodolistHandler{
		lists:     lists,
		items:     items,
		validator: validator.New(),
		logger:    log.With(slog.String("component", "todolist_handler")),
	}
}

// List handles GET /todos requests.
// It returns one page of the authenticated user's todolists plus the total
// count across all pages.
func (h *TodolistHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.UserFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User not found in request context")
		return
	}

	offset, limit := paginationParams(r)

	lists, total, err := h.lists.ListForUser(r.Context(), user.ID, offset, limit)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	data := make([]TodolistResponse, 0, len(lists))
	for i := range lists {
		data = append(data, todolistToResponse(&lists[i]))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TodolistPageResponse{
		Total: total,
		Data:  data,
	})
}

// Create handles POST /todos requests.
// It creates a todolist for the authenticated user and, when the payload
// carries seed items, bulk-creates those under the new list.
func (h *TodolistHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	user, ok := shared.UserFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User not found in request context")
		return
	}

	var req CreateTodolistRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		HandleError(w, r, domain.NewValidationError("title", "is required", domain.ErrValidation))
		return
	}
	if err := domain.ValidateText("title", req.Title); err != nil {
		HandleError(w, r, err)
		return
	}
	for i, description := range req.Items {
		if err := domain.ValidateText(fmt.Sprintf("items[%d]", i), description); err != nil {
			HandleError(w, r, err)
			return
		}
	}

	list, err := domain.NewTodolist(user.ID, req.Title)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	created, err := h.lists.Create(r.Context(), list)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	if len(req.Items) > 0 {
		if _, err := h.items.BulkCreate(r.Context(), created.ID, req.Items); err != nil {
			HandleError(w, r, err)
			return
		}
	}

	log.Debug("todolist created",
		slog.String("todolist_id", created.ID.String()),
		slog.Int("seed_items", len(req.Items)))
	shared.RespondWithJSON(w, r, http.StatusCreated, todolistToResponse(created))
}

// Update handles PUT /todos/{todolistId} requests.
// The list is fetched first and ownership verified before any mutation.
func (h *TodolistHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.UserFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User not found in request context")
		return
	}

	listID, err := pathUUID(r, "todolistId")
	if err != nil {
		HandleError(w, r, err)
		return
	}

	var req UpdateTodolistRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		HandleError(w, r, domain.NewValidationError("title", "is required", domain.ErrValidation))
		return
	}
	if err := domain.ValidateText("title", req.Title); err != nil {
		HandleError(w, r, err)
		return
	}

	list, err := h.lists.GetByID(r.Context(), listID)
	if err != nil {
		HandleError(w, r, err)
		return
	}
	if !list.OwnedBy(user.ID) {
		HandleError(w, r, domain.ErrForbidden)
		return
	}

	list.Title = req.Title
	updated, err := h.lists.Update(r.Context(), list)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, todolistToResponse(updated))
}

// Delete handles DELETE /todos/{todolistId} requests.
// Deleting a list cascades to its items at the storage layer.
func (h *TodolistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.UserFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User not found in request context")
		return
	}

	listID, err := pathUUID(r, "todolistId")
	if err != nil {
		HandleError(w, r, err)
		return
	}

	list, err := h.lists.GetByID(r.Context(), listID)
	if err != nil {
		HandleError(w, r, err)
		return
	}
	if !list.OwnedBy(user.ID) {
		HandleError(w, r, domain.ErrForbidden)
		return
	}

	if err := h.lists.Delete(r.Context(), list.ID); err != nil {
		HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
