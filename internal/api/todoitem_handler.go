package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/todoapp/todo-api/internal/api/shared"
	"github.com/todoapp/todo-api/internal/domain"
	"github.com/todoapp/todo-api/internal/platform/logger"
	"github.com/todoapp/todo-api/internal/store"
)

// TodoitemHandler handles todoitem-related HTTP requests, including the
// bulk endpoints.
type TodoitemHandler struct {
	lists  store.TodolistStore
	items  store.TodoitemStore
	logger *slog.Logger
}

// NewTodoitemHandler creates a new TodoitemHandler with the given dependencies.
func NewTodoitemHandler(
	lists store.TodolistStore,
	items store.TodoitemStore,
	log *slog.Logger,
) *TodoitemHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TodoitemHandler")
	}

	return &TodoitemHandler{
		lists:  lists,
		items:  items,
		logger: log.With(slog.String("component", "todoitem_handler")),
	}
}

// List handles GET /todos/{todolistId}/items requests.
// The list must exist and belong to the authenticated user; the item query
// itself is additionally scoped to both, so foreign items can never leak in.
func (h *TodoitemHandler) List(w http.ResponseWriter, r *http.Request) {
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
	offset, limit := paginationParams(r)

	list, err := h.lists.GetByID(r.Context(), listID)
	if err != nil {
		HandleError(w, r, err)
		return
	}
	if !list.OwnedBy(user.ID) {
		HandleError(w, r, domain.ErrForbidden)
		return
	}

	items, total, err := h.items.ListForUser(r.Context(), user.ID, listID, offset, limit)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TodoitemPageResponse{
		Total: total,
		Data:  todoitemsToResponse(items),
	})
}

// BulkCreate handles POST /todos/{todolistId}/items requests.
// The body is a bare JSON array of descriptions; the whole batch is rejected
// if it is empty or any element is out of bounds.
func (h *TodoitemHandler) BulkCreate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

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

	var descriptions []string
	if err := shared.DecodeJSON(r, &descriptions); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if len(descriptions) == 0 {
		HandleError(w, r, domain.NewValidationError("items", "must contain at least 1 item", domain.ErrValidation))
		return
	}
	for i, description := range descriptions {
		if err := domain.ValidateText(fmt.Sprintf("items[%d]", i), description); err != nil {
			HandleError(w, r, err)
			return
		}
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

	items, err := h.items.BulkCreate(r.Context(), list.ID, descriptions)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	log.Debug("todoitems created",
		slog.String("todolist_id", list.ID.String()),
		slog.Int("count", len(items)))
	shared.RespondWithJSON(w, r, http.StatusCreated, todoitemsToResponse(items))
}

// BulkUpdate handles PATCH /items requests.
// The body is a bare JSON array of patches. Ownership is enforced by scoping
// the store query to the authenticated user: foreign or unknown IDs drop out
// of the result silently rather than producing a 403.
func (h *TodoitemHandler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.UserFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User not found in request context")
		return
	}

	var reqs []TodoitemPatchRequest
	if err := shared.DecodeJSON(r, &reqs); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if len(reqs) == 0 {
		HandleError(w, r, domain.NewValidationError("items", "must contain at least 1 item", domain.ErrValidation))
		return
	}

	patches := make([]domain.TodoitemPatch, 0, len(reqs))
	for i, req := range reqs {
		id, err := uuid.Parse(req.ID)
		if err != nil {
			HandleError(w, r, domain.NewValidationError(
				fmt.Sprintf("items[%d].id", i), "must be a valid UUID", domain.ErrInvalidID))
			return
		}
		if req.Description != nil {
			if err := domain.ValidateText(fmt.Sprintf("items[%d].description", i), *req.Description); err != nil {
				HandleError(w, r, err)
				return
			}
		}
		patches = append(patches, domain.TodoitemPatch{
			ID:          id,
			Description: req.Description,
			Completed:   req.Completed,
		})
	}

	items, err := h.items.BulkUpdateForUser(r.Context(), user.ID, patches)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, todoitemsToResponse(items))
}

// BulkRemove handles DELETE /items requests.
// The body is a bare JSON array of item IDs. IDs outside the user's
// ownership are skipped without error; the response is 204 either way.
func (h *TodoitemHandler) BulkRemove(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	user, ok := shared.UserFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User not found in request context")
		return
	}

	var rawIDs []string
	if err := shared.DecodeJSON(r, &rawIDs); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if len(rawIDs) == 0 {
		HandleError(w, r, domain.NewValidationError("itemIds", "must contain at least 1 item", domain.ErrValidation))
		return
	}

	ids := make([]uuid.UUID, 0, len(rawIDs))
	for i, raw := range rawIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			HandleError(w, r, domain.NewValidationError(
				fmt.Sprintf("itemIds[%d]", i), "must be a valid UUID", domain.ErrInvalidID))
			return
		}
		ids = append(ids, id)
	}

	deleted, err := h.items.BulkRemoveForUser(r.Context(), user.ID, ids)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	log.Debug("todoitems removed",
		slog.Int("requested", len(ids)),
		slog.Int("deleted", deleted))
	w.WriteHeader(http.StatusNoContent)
}
