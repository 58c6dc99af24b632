package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/todoapp/todo-api/internal/domain"
)

// ContextKey is the key type for request context values.
type ContextKey string

// Context keys for various values
const (
	// UserContextKey is the context key under which the authenticated
	// *domain.User is attached by the auth middleware.
	UserContextKey ContextKey = "user"

	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the number of bytes used to generate the trace ID
	TraceIDLength = 16 // 32 hex characters
)

// SetTraceID adds a freshly generated trace ID to the context.
// This is used for correlating logs across a single request.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// WithUser returns a new context carrying the authenticated user.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}

// UserFromRequest extracts the authenticated user placed in the request
// context by the auth middleware. Returns false if no user is attached.
func UserFromRequest(r *http.Request) (*domain.User, bool) {
	user, ok := r.Context().Value(UserContextKey).(*domain.User)
	return user, ok && user != nil
}

// generateTraceID creates a random trace ID for request tracking.
// Returns a 32-character hex string.
func generateTraceID() string {
	b := make([]byte, TraceIDLength)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing is not worth taking a request down for;
		// an empty trace ID only degrades log correlation.
		return ""
	}
	return hex.EncodeToString(b)
}
