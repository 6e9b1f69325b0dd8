package models

// CreateRecipeRequest represents the request body for POST /recipes
type CreateRecipeRequest struct {
	Title             string `json:"title" binding:"required"`
	Instructions      string `json:"instructions" binding:"required,min=50"` // min counts characters, not bytes
	MinutesToComplete *int   `json:"minutes_to_complete" binding:"omitempty,min=0"`
}
