package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidID = errors.New("invalid issue id")
	ErrNotFound  = errors.New("issue not found")
)

// ParseID validates an issue id without touching a store and returns its
// canonical form.
func ParseID(s string) (string, error) {
	u, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return u.String(), nil
}

// NewID issues a fresh id for stores that do not generate their own.
func NewID() string { return uuid.NewString() }
