package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"sync/atomic"

	"github.com/todoapp/todo-api/internal/redact"
)

// ErrorResponse is the error body returned by every endpoint: a message, plus
// a stack trace on 500s when the server runs in development mode.
type ErrorResponse struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// includeStack controls whether 500 responses carry a stack trace.
// Enabled once at startup in development mode, mirroring how the default
// slog logger is installed process-wide.
var includeStack atomic.Bool

// SetIncludeStack toggles stack traces in internal error responses.
// Call once during startup; enable only in development.
func SetIncludeStack(enabled bool) {
	includeStack.Store(enabled)
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes a JSON error response with the given status code
// and message.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	slog.Debug("sending error response",
		"status_code", status,
		"message", message,
		"trace_id", GetTraceID(r.Context()),
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, ErrorResponse{Message: message})
}

// RespondWithErrorAndLog writes a sanitized JSON error response and logs the
// detailed error server-side. The raw error never reaches the client; it is
// redacted and logged with the request's trace ID for correlation.
//
// 5xx responses are logged at ERROR level and, in development mode, carry the
// current stack trace in the body. 4xx responses are logged at DEBUG level.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
) {
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	response := ErrorResponse{Message: userMessage}
	if status >= http.StatusInternalServerError && includeStack.Load() {
		response.Stack = string(debug.Stack())
	}

	RespondWithJSON(w, r, status, response)
}
