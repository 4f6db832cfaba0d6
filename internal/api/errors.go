package api

import (
	"errors"
	"fmt"

	"github.com/abhisek/lectern/internal/auth"
)

// ErrNotFound indicates the requested resource does not exist (404).
var ErrNotFound = errors.New("not found")

// ErrUnauthorized indicates the backend rejected the credentials (401).
var ErrUnauthorized = auth.ErrUnauthorized

// ErrForbidden indicates the credentials are valid but lack access (403).
var ErrForbidden = errors.New("forbidden")

// ErrUnavailable indicates a transport failure or an unexpected status.
type ErrUnavailable struct {
	Status int // 0 for transport errors
	Err    error
}

func (e *ErrUnavailable) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("backend unavailable (status %d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("backend unavailable: %v", e.Err)
}

func (e *ErrUnavailable) Unwrap() error { return e.Err }
