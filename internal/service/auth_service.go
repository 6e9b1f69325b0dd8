package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"recipes-be/internal/apperrors"
	"recipes-be/internal/database"
	"recipes-be/internal/entities"
	"recipes-be/internal/models"
	"recipes-be/internal/repository"
)

// ErrInvalidCredentials is returned by Authenticate for an unknown username
// or a wrong password alike.
var ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)

// AuthService defines the interface for account and credential logic
type AuthService interface {
	Register(ctx context.Context, req *models.SignupRequest) (*entities.User, error)
	Authenticate(ctx context.Context, username, password string) (*entities.User, error)
}

type authService struct {
	db         *sql.DB
	repos      repository.Manager
	bcryptCost int

	// Hash compared against when the username is unknown, so that path costs
	// one bcrypt verification like a wrong password does.
	dummy entities.User
}

// NewAuthService creates a new auth service hashing passwords at bcryptCost
func NewAuthService(db *sql.DB, repos repository.Manager, bcryptCost int) (AuthService, error) {
	s := &authService{db: db, repos: repos, bcryptCost: bcryptCost}
	if err := s.dummy.SetPassword("not-a-real-password", bcryptCost); err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}
	return s, nil
}

// Register creates a new user account
func (s *authService) Register(ctx context.Context, req *models.SignupRequest) (*entities.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: Username is required", apperrors.ErrValidation)
	}
	if req.Password == "" {
		return nil, fmt.Errorf("%w: Password is required", apperrors.ErrValidation)
	}
	if err := rejectNUL(
		textField{"Username", &username},
		textField{"Bio", req.Bio},
		textField{"Image url", req.ImageURL},
	); err != nil {
		return nil, err
	}

	user := &entities.User{
		Username: username,
		Bio:      req.Bio,
		ImageURL: req.ImageURL,
	}
	if err := user.SetPassword(req.Password, s.bcryptCost); err != nil {
		return nil, err
	}

	err := database.WithTx(ctx, s.db, nil, func(ctx context.Context, tx database.DBTX) error {
		return s.repos.Users(tx).Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate verifies a username and password pair. Empty fields, an
// unknown username and a wrong password all yield ErrInvalidCredentials.
func (s *authService) Authenticate(ctx context.Context, username, password string) (*entities.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		s.dummy.CheckPassword(password)
		return nil, ErrInvalidCredentials
	}

	var user *entities.User
	err := database.WithTx(ctx, s.db, database.ReadOnly, func(ctx context.Context, tx database.DBTX) error {
		var err error
		user, err = s.repos.Users(tx).FindByUsername(ctx, username)
		return err
	})

	if errors.Is(err, apperrors.ErrNotFound) {
		s.dummy.CheckPassword(password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// textField is a user-supplied string and the label used in error messages.
type textField struct {
	label string
	value *string
}

// rejectNUL fails on the first field containing a NUL character, which
// Postgres text columns cannot store.
func rejectNUL(fields ...textField) error {
	for _, f := range fields {
		if f.value != nil && strings.ContainsRune(*f.value, 0) {
			return fmt.Errorf("%w: %s must not contain NUL characters", apperrors.ErrValidation, f.label)
		}
	}
	return nil
}
