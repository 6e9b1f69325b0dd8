// Package apperrors defines the sentinel errors shared by repositories,
// services and controllers. Callers wrap them with fmt.Errorf("%w: ...")
// and match with errors.Is.
package apperrors

import (
	"errors"
	"strings"
)

var (
	// ErrValidation marks malformed or missing required input.
	ErrValidation = errors.New("validation error")

	// ErrConflict marks a uniqueness or other integrity violation at the storage layer.
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized marks a missing or invalid session, or bad credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned by repositories when no row matches.
	ErrNotFound = errors.New("not found")
)

// Message returns the human-readable part of err, dropping the sentinel
// prefix added by fmt.Errorf("%w: ...").
func Message(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{ErrValidation, ErrConflict, ErrUnauthorized, ErrNotFound} {
		if rest, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok && errors.Is(err, sentinel) {
			return rest
		}
	}
	return msg
}
