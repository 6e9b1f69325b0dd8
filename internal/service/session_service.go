package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"recipes-be/internal/apperrors"
	"recipes-be/internal/database"
	"recipes-be/internal/entities"
	"recipes-be/internal/jwt"
	"recipes-be/internal/repository"
	"recipes-be/internal/session"
)

// SessionService manages login sessions. Tokens handed to clients carry only
// a signed session id; the user binding lives in the session store.
type SessionService interface {
	Establish(ctx context.Context, user *entities.User) (string, error)
	Resolve(ctx context.Context, token string) (*entities.User, error)
	Terminate(ctx context.Context, token string) error
}

type sessionService struct {
	db     *sql.DB
	repos  repository.Manager
	store  *session.Store
	tokens *jwt.JWTService
}

func NewSessionService(db *sql.DB, repos repository.Manager, store *session.Store, tokens *jwt.JWTService) SessionService {
	return &sessionService{db: db, repos: repos, store: store, tokens: tokens}
}

// Establish opens a session for user and returns the client token.
func (s *sessionService) Establish(ctx context.Context, user *entities.User) (string, error) {
	sid, err := s.store.Create(ctx, user.ID, s.tokens.TTL())
	if err != nil {
		return "", err
	}

	token, err := s.tokens.GenerateToken(sid)
	if err != nil {
		_, _ = s.store.Delete(ctx, sid)
		return "", err
	}
	return token, nil
}

// Resolve returns the user the token's session belongs to.
func (s *sessionService) Resolve(ctx context.Context, token string) (*entities.User, error) {
	sid, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}

	userID, err := s.store.UserID(ctx, sid)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("%w: no active session", apperrors.ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}

	var user *entities.User
	err = database.WithTx(ctx, s.db, database.ReadOnly, func(ctx context.Context, tx database.DBTX) error {
		var err error
		user, err = s.repos.Users(tx).FindByID(ctx, userID)
		return err
	})
	if errors.Is(err, apperrors.ErrNotFound) {
		// The account is gone; the session can never resolve again.
		_, _ = s.store.Delete(ctx, sid)
		return nil, fmt.Errorf("%w: no active session", apperrors.ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Terminate ends the token's session. Ending a session that is not active
// is an Unauthorized error.
func (s *sessionService) Terminate(ctx context.Context, token string) error {
	sid, err := s.tokens.ParseToken(token)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}

	ok, err := s.store.Delete(ctx, sid)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: no active session", apperrors.ErrUnauthorized)
	}
	return nil
}
