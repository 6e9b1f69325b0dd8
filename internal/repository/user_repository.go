package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"recipes-be/internal/apperrors"
	"recipes-be/internal/database"
	"recipes-be/internal/entities"
)

// UserRepository defines the interface for user database operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
	FindByID(ctx context.Context, id string) (*entities.User, error)
}

type userRepository struct {
	db database.DBTX
}

// NewUserRepository creates a user repository bound to db
func NewUserRepository(db database.DBTX) UserRepository {
	return &userRepository{db: db}
}

// Create inserts user, assigning it a fresh ID
func (r *userRepository) Create(ctx context.Context, user *entities.User) error {
	query := `
		INSERT INTO users (id, username, password_hash, bio, image_url)
		VALUES ($1, $2, $3, $4, $5)
	`

	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, query, id, user.Username, user.PasswordHash, user.Bio, user.ImageURL)
	if err != nil {
		if database.IsIntegrityViolation(err) {
			return fmt.Errorf("%w: username must be unique", apperrors.ErrConflict)
		}
		if database.IsDataException(err) {
			return fmt.Errorf("%w: invalid user data", apperrors.ErrValidation)
		}
		return fmt.Errorf("db error: %w", err)
	}

	user.ID = id
	return nil
}

// FindByUsername finds a user by exact username
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	query := `
		SELECT id, username, password_hash, bio, image_url
		FROM users
		WHERE username = $1
	`
	return r.findOne(ctx, query, username)
}

// FindByID finds a user by ID
func (r *userRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	query := `
		SELECT id, username, password_hash, bio, image_url
		FROM users
		WHERE id = $1
	`
	return r.findOne(ctx, query, id)
}

func (r *userRepository) findOne(ctx context.Context, query string, arg any) (*entities.User, error) {
	var user entities.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Bio,
		&user.ImageURL,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user", apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &user, nil
}
