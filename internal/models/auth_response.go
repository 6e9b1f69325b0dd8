package models

import "recipes-be/internal/entities"

// UserResponse is the public view of a user. It never carries the password hash.
type UserResponse struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Bio      *string `json:"bio"`
	ImageURL *string `json:"image_url"`
}

func NewUserResponse(u *entities.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Bio:      u.Bio,
		ImageURL: u.ImageURL,
	}
}
