package models

import "time"

// User is the write model for an account. The id is chosen by the user at
// registration and is immutable afterwards. PasswordHash holds the bcrypt
// digest and is never serialised.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdTimestamp"`
	UpdatedAt    time.Time `json:"updatedTimestamp"`
}
