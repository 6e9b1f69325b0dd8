package entities

// MinInstructionsLength is the minimum number of characters a recipe's
// instructions must contain.
const MinInstructionsLength = 50

// Recipe represents a recipe entity in the database
type Recipe struct {
	ID                string `json:"id"` // UUID
	Title             string `json:"title"`
	Instructions      string `json:"instructions"`
	MinutesToComplete *int   `json:"minutes_to_complete"` // Pointer allows nil (not provided)
	UserID            string `json:"user_id"`
}
