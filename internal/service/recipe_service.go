package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"unicode/utf8"

	"recipes-be/internal/apperrors"
	"recipes-be/internal/database"
	"recipes-be/internal/entities"
	"recipes-be/internal/models"
	"recipes-be/internal/repository"
)

// RecipeService defines the interface for recipe business logic. Every
// operation is scoped to the owning user.
type RecipeService interface {
	ListOwn(ctx context.Context, userID string) ([]entities.Recipe, error)
	Create(ctx context.Context, userID string, req *models.CreateRecipeRequest) (*entities.Recipe, error)
}

type recipeService struct {
	db    *sql.DB
	repos repository.Manager
}

// NewRecipeService creates a new recipe service
func NewRecipeService(db *sql.DB, repos repository.Manager) RecipeService {
	return &recipeService{db: db, repos: repos}
}

// ListOwn returns the recipes owned by userID in storage order
func (s *recipeService) ListOwn(ctx context.Context, userID string) ([]entities.Recipe, error) {
	var recipes []entities.Recipe
	err := database.WithTx(ctx, s.db, database.ReadOnly, func(ctx context.Context, tx database.DBTX) error {
		var err error
		recipes, err = s.repos.Recipes(tx).ListByUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if recipes == nil {
		recipes = []entities.Recipe{}
	}
	return recipes, nil
}

// Create validates and stores a new recipe owned by userID
func (s *recipeService) Create(ctx context.Context, userID string, req *models.CreateRecipeRequest) (*entities.Recipe, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: Title is required", apperrors.ErrValidation)
	}
	if utf8.RuneCountInString(req.Instructions) < entities.MinInstructionsLength {
		return nil, fmt.Errorf("%w: Instructions must be at least %d characters long",
			apperrors.ErrValidation, entities.MinInstructionsLength)
	}
	if req.MinutesToComplete != nil && *req.MinutesToComplete < 0 {
		return nil, fmt.Errorf("%w: Minutes to complete must not be negative", apperrors.ErrValidation)
	}
	if err := rejectNUL(
		textField{"Title", &req.Title},
		textField{"Instructions", &req.Instructions},
	); err != nil {
		return nil, err
	}

	recipe := &entities.Recipe{
		Title:             req.Title,
		Instructions:      req.Instructions,
		MinutesToComplete: req.MinutesToComplete,
		UserID:            userID,
	}

	err := database.WithTx(ctx, s.db, nil, func(ctx context.Context, tx database.DBTX) error {
		return s.repos.Recipes(tx).Create(ctx, recipe)
	})
	if err != nil {
		return nil, err
	}
	return recipe, nil
}
