// Package session keeps the server side of login sessions: an opaque random
// id mapped to the user it belongs to, expiring after a TTL.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"recipes-be/internal/apperrors"
	"recipes-be/internal/cache"
)

const keyPrefix = "session:"

type record struct {
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Store struct {
	cache cache.Cache
}

func NewStore(c cache.Cache) *Store {
	return &Store{cache: c}
}

// Create starts a session for userID and returns its id.
func (s *Store) Create(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	sid, err := newID()
	if err != nil {
		return "", err
	}

	rec := record{UserID: userID, CreatedAt: time.Now().UTC()}
	if err := cache.SetJSON(ctx, s.cache, keyPrefix+sid, rec, ttl); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return sid, nil
}

// UserID returns the user bound to sid, or apperrors.ErrNotFound when the
// session is unknown or expired.
func (s *Store) UserID(ctx context.Context, sid string) (string, error) {
	var rec record
	err := cache.GetJSON(ctx, s.cache, keyPrefix+sid, &rec)
	if errors.Is(err, cache.ErrMiss) {
		return "", fmt.Errorf("%w: session", apperrors.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}
	return rec.UserID, nil
}

// Delete ends the session and reports whether it was active.
func (s *Store) Delete(ctx context.Context, sid string) (bool, error) {
	ok, err := s.cache.Delete(ctx, keyPrefix+sid)
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}
	return ok, nil
}

// newID returns 128 random bits, hex encoded.
func newID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}
