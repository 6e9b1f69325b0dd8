package entities

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"recipes-be/internal/apperrors"
)

func TestUser_SetPasswordAndCheck(t *testing.T) {
	u := &User{Username: "alice"}
	require.NoError(t, u.SetPassword("s3cret", bcrypt.MinCost))

	assert.NotEmpty(t, u.PasswordHash)
	assert.NotContains(t, u.PasswordHash, "s3cret")
	assert.True(t, u.CheckPassword("s3cret"))
	assert.False(t, u.CheckPassword("wrong"))
	assert.False(t, u.CheckPassword(""))
}

func TestUser_SetPassword_FreshSaltEachCall(t *testing.T) {
	a := &User{}
	b := &User{}
	require.NoError(t, a.SetPassword("same", bcrypt.MinCost))
	require.NoError(t, b.SetPassword("same", bcrypt.MinCost))

	assert.NotEqual(t, a.PasswordHash, b.PasswordHash)
	assert.True(t, a.CheckPassword("same"))
	assert.True(t, b.CheckPassword("same"))
}

func TestUser_SetPassword_TooLong(t *testing.T) {
	u := &User{}
	err := u.SetPassword(strings.Repeat("x", 73), bcrypt.MinCost)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	assert.Empty(t, u.PasswordHash)
}

func TestUser_CheckPassword_NoHash(t *testing.T) {
	u := &User{}
	assert.False(t, u.CheckPassword("anything"))
}
