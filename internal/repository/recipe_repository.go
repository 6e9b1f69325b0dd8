package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"recipes-be/internal/apperrors"
	"recipes-be/internal/database"
	"recipes-be/internal/entities"
)

// RecipeRepository defines the interface for recipe database operations
type RecipeRepository interface {
	Create(ctx context.Context, recipe *entities.Recipe) error
	ListByUser(ctx context.Context, userID string) ([]entities.Recipe, error)
}

type recipeRepository struct {
	db database.DBTX
}

// NewRecipeRepository creates a recipe repository bound to db
func NewRecipeRepository(db database.DBTX) RecipeRepository {
	return &recipeRepository{db: db}
}

// Create inserts recipe, assigning it a fresh ID
func (r *recipeRepository) Create(ctx context.Context, recipe *entities.Recipe) error {
	query := `
		INSERT INTO recipes (id, title, instructions, minutes_to_complete, user_id)
		VALUES ($1, $2, $3, $4, $5)
	`

	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, query,
		id, recipe.Title, recipe.Instructions, recipe.MinutesToComplete, recipe.UserID)
	if err != nil {
		if database.IsIntegrityViolation(err) {
			return fmt.Errorf("%w: invalid recipe data", apperrors.ErrConflict)
		}
		if database.IsDataException(err) {
			return fmt.Errorf("%w: invalid recipe data", apperrors.ErrValidation)
		}
		return fmt.Errorf("db error: %w", err)
	}

	recipe.ID = id
	return nil
}

// ListByUser returns every recipe owned by userID, never nil
func (r *recipeRepository) ListByUser(ctx context.Context, userID string) ([]entities.Recipe, error) {
	query := `
		SELECT id, title, instructions, minutes_to_complete, user_id
		FROM recipes
		WHERE user_id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	recipes := []entities.Recipe{}
	for rows.Next() {
		var recipe entities.Recipe
		if err := rows.Scan(
			&recipe.ID,
			&recipe.Title,
			&recipe.Instructions,
			&recipe.MinutesToComplete,
			&recipe.UserID,
		); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return recipes, nil
}
