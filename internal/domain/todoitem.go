package domain

import (
	"time"

	"github.com/google/uuid"
)

// Todoitem is a single task entry belonging to exactly one Todolist.
// Its effective owner is always derived through the list's UserID; the
// item itself never caches an owner.
type Todoitem struct {
	ID          uuid.UUID `json:"id"`
	TodolistID  uuid.UUID `json:"todolist_id"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTodoitem creates a new Todoitem under the given list with
// Completed defaulting to false.
func NewTodoitem(todolistID uuid.UUID, description string) (*Todoitem, error) {
	item := &Todoitem{
		ID:          uuid.New(),
		TodolistID:  todolistID,
		Description: description,
		Completed:   false,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate checks if the Todoitem has valid data.
func (i *Todoitem) Validate() error {
	if i.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}
	if i.TodolistID == uuid.Nil {
		return NewValidationError("todolistId", "cannot be empty", ErrInvalidID)
	}
	return ValidateText("description", i.Description)
}

// TodoitemPatch is a partial update for a single Todoitem. Only fields
// that are non-nil are applied; absent fields leave the stored value
// untouched.
type TodoitemPatch struct {
	ID          uuid.UUID
	Description *string
	Completed   *bool
}

// IsEmpty reports whether the patch carries no mutable fields. Empty
// patches are dropped before ownership resolution, mirroring how the
// bulk update treats them as no-ops.
func (p TodoitemPatch) IsEmpty() bool {
	return p.Description == nil && p.Completed == nil
}

// Apply overwrites the item's mutable fields with the patch's present
// fields and bumps UpdatedAt.
func (p TodoitemPatch) Apply(item *Todoitem) {
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Completed != nil {
		item.Completed = *p.Completed
	}
	item.UpdatedAt = time.Now().UTC()
}
