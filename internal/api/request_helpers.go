package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/todoapp/todo-api/internal/domain"
)

// Pagination defaults applied when a value is absent or fails to parse.
// Unparseable values fall back rather than reject, so "?limit=abc" quietly
// means "limit=10".
const (
	DefaultOffset = 0
	DefaultLimit  = 10
)

// paginationParams extracts offset and limit from the query string, coercing
// each to an integer and falling back to its default when missing, malformed,
// or negative.
func paginationParams(r *http.Request) (offset, limit int) {
	offset = DefaultOffset
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			offset = v
		}
	}

	limit = DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			limit = v
		}
	}

	return offset, limit
}

// pathUUID extracts and parses a UUID path parameter. Malformed IDs are
// rejected here, before any store access.
func pathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "must be a valid UUID", domain.ErrInvalidID)
	}

	return id, nil
}
