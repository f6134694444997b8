// Package apperrors holds the error taxonomy shared by the store, the
// security helpers and the HTTP layer. Callers wrap these with %w and the
// routes map them to status codes with errors.Is.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrAuth       = errors.New("could not validate credentials")
	ErrNotFound   = errors.New("not found")
)

// ErrInvalidEmail is a validation error the registration endpoint reports
// with its own status code.
var ErrInvalidEmail = fmt.Errorf("%w: invalid email", ErrValidation)
