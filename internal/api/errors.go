package api

import (
	"errors"
	"net/http"

	"github.com/todoapp/todo-api/internal/api/shared"
	"github.com/todoapp/todo-api/internal/domain"
	"github.com/todoapp/todo-api/internal/store"
)

// Fixed user-facing messages. Forbidden and not-found responses carry the
// same message regardless of the resource's actual state so nothing leaks
// about other users' data.
const (
	MsgForbidden        = "You do not have access to this resource"
	MsgTodolistNotFound = "Todo list not found"
	MsgUnexpectedError  = "An unexpected error occurred"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. Anything unrecognized defaults to 500 so internal
// failure details never pick their own status.
func MapErrorToStatusCode(err error) int {
	var validationErr *domain.ValidationError

	switch {
	// Validation errors
	case errors.As(err, &validationErr),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest

	// Authentication errors
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the user-facing message for an error.
// Validation errors surface their field and reason; everything else maps to a
// fixed message for its class.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MsgUnexpectedError
	}

	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Error()

	case errors.Is(err, domain.ErrForbidden):
		return MsgForbidden

	case errors.Is(err, store.ErrTodolistNotFound):
		return MsgTodolistNotFound

	case errors.Is(err, store.ErrTodoitemNotFound):
		return "Todo item not found"

	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	default:
		return MsgUnexpectedError
	}
}

// HandleError maps err to a status code and safe message and writes the error
// response, logging full (redacted) details server-side for 5xx.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)

	if status >= http.StatusInternalServerError {
		shared.RespondWithErrorAndLog(w, r, status, message, err)
		return
	}
	shared.RespondWithError(w, r, status, message)
}
