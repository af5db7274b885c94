package cqrs

// GetUserQuery fetches a single user by id. No ownership check: the lookup
// endpoint is public.
type GetUserQuery struct {
	UserID string
}

// GetCurrentUserQuery re-fetches the record referenced by the active session.
type GetCurrentUserQuery struct {
	SessionUserID string
}

// LoginQuery verifies credentials before a session is opened.
type LoginQuery struct {
	UserID   string
	Password string
}
