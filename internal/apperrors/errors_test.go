package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation", fmt.Errorf("%w: username is required", ErrValidation), "username is required"},
		{"conflict", fmt.Errorf("%w: username must be unique", ErrConflict), "username must be unique"},
		{"unauthorized", fmt.Errorf("%w: no active session", ErrUnauthorized), "no active session"},
		{"bare sentinel", ErrUnauthorized, "unauthorized"},
		{"plain", errors.New("conflict: not really"), "conflict: not really"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message(tt.err))
		})
	}
}
