package cqrs

// RegisterUserCommand creates a new account with a caller-chosen id.
type RegisterUserCommand struct {
	UserID   string
	Password string
	Email    string
}

// UpdateUserCommand rewrites the password and email of an existing account.
// UserID is always resolved from the session, never from the request body.
type UpdateUserCommand struct {
	UserID   string
	Password string
	Email    string
}

// DeleteUserCommand removes the account named in the request body after the
// supplied password has been verified against the stored credential.
type DeleteUserCommand struct {
	UserID   string
	Password string
}
