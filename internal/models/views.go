package models

import "time"

// UserView is the read-optimised projection of a user.
// It never exposes PasswordHash and is what the cache and the API serve.
type UserView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdTimestamp"`
	UpdatedAt time.Time `json:"updatedTimestamp"`
}
