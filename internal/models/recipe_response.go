package models

import "recipes-be/internal/entities"

// RecipeResponse is the JSON view of a recipe
type RecipeResponse struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Instructions      string `json:"instructions"`
	MinutesToComplete *int   `json:"minutes_to_complete"`
	UserID            string `json:"user_id"`
}

func NewRecipeResponse(r *entities.Recipe) RecipeResponse {
	return RecipeResponse{
		ID:                r.ID,
		Title:             r.Title,
		Instructions:      r.Instructions,
		MinutesToComplete: r.MinutesToComplete,
		UserID:            r.UserID,
	}
}

// NewRecipeListResponse maps recipes to responses; an empty input yields an
// empty, non-nil slice so it encodes as [].
func NewRecipeListResponse(recipes []entities.Recipe) []RecipeResponse {
	out := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		out = append(out, NewRecipeResponse(&recipes[i]))
	}
	return out
}
