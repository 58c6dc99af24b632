package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common user validation errors
var (
	ErrEmptyUserID   = errors.New("user ID cannot be empty")
	ErrEmptyUsername = errors.New("username cannot be empty")
	ErrEmptyAPIKey   = errors.New("API key cannot be empty")
)

// User represents a registered user of the Todo API. Users are provisioned
// out-of-band (seed data or an operator); this application only verifies
// their API key and anchors ownership checks on their ID.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	APIKey    string    `json:"-"` // Never expose the API key in JSON
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given username and API key.
// It generates a new UUID for the user ID and sets the timestamps.
// Returns an error if validation fails.
func NewUser(username, apiKey string) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Username:  username,
		APIKey:    apiKey,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}
	if u.Username == "" {
		return ErrEmptyUsername
	}
	if u.APIKey == "" {
		return ErrEmptyAPIKey
	}
	return nil
}
