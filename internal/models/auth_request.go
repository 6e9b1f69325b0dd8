package models

// SignupRequest represents the request body for POST /signup
type SignupRequest struct {
	Username string  `json:"username" binding:"required"`
	Password string  `json:"password" binding:"required"`
	Bio      *string `json:"bio"`
	ImageURL *string `json:"image_url"`
}

// LoginRequest represents the request body for POST /login. Fields are not
// bound as required: missing credentials fail like wrong ones.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
