package entities

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"recipes-be/internal/apperrors"
)

// User represents a user entity in the database
type User struct {
	ID           string  `json:"id"` // UUID
	Username     string  `json:"username"`
	PasswordHash string  `json:"-"` // Never exposed in JSON
	Bio          *string `json:"bio"`
	ImageURL     *string `json:"image_url"`
}

// SetPassword derives a salted bcrypt hash from the plaintext password and
// stores it on the user. Every call generates a fresh salt.
func (u *User) SetPassword(password string, cost int) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return fmt.Errorf("%w: password must be at most 72 bytes", apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
