package api

import (
	"net/http"

	"github.com/todoapp/todo-api/internal/api/shared"
)

// Root handles GET / requests. It requires no authentication and doubles as
// a liveness check.
func Root(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Hello World"})
}
