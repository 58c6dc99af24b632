package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Length bounds shared by Todolist titles and Todoitem descriptions.
// Enforced at the boundary before anything reaches the store.
const (
	MinTextLength = 3
	MaxTextLength = 255
)

// Todolist is a named collection of Todoitems owned by a single User.
// Deleting a Todolist cascades to its items at the storage layer.
type Todolist struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTodolist creates a new Todolist owned by the given user.
// It generates a new UUID for the list ID and sets the timestamps.
// Returns a validation error if the title is out of bounds.
func NewTodolist(userID uuid.UUID, title string) (*Todolist, error) {
	list := &Todolist{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := list.Validate(); err != nil {
		return nil, err
	}

	return list, nil
}

// Validate checks if the Todolist has valid data.
func (l *Todolist) Validate() error {
	if l.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}
	if l.UserID == uuid.Nil {
		return NewValidationError("userId", "cannot be empty", ErrInvalidID)
	}
	return ValidateText("title", l.Title)
}

// OwnedBy reports whether the list belongs to the given user.
func (l *Todolist) OwnedBy(userID uuid.UUID) bool {
	return l.UserID == userID
}

// ValidateText checks that a title or description has a trimmed length
// within [MinTextLength, MaxTextLength]. The field name is carried in the
// returned ValidationError so the boundary can name the offending field.
func ValidateText(field, value string) error {
	length := len(strings.TrimSpace(value))
	if length < MinTextLength {
		return NewValidationError(
			field,
			fmt.Sprintf("must be at least %d characters long", MinTextLength),
			ErrValidation,
		)
	}
	if length > MaxTextLength {
		return NewValidationError(
			field,
			fmt.Sprintf("must be at most %d characters long", MaxTextLength),
			ErrValidation,
		)
	}
	return nil
}
