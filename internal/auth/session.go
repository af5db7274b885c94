// Package auth wraps the cookie session used to track the logged-in user.
package auth

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const (
	// SessionCookieName is the name of the session cookie.
	SessionCookieName = "ds_session"

	// sessionKeyUser stores the id of the authenticated user.
	sessionKeyUser = "loginUser"
)

var maxSessionLifetime = 12 * time.Hour

// NewStore builds the cookie-backed session store registered on the router.
// secure should be true whenever the service runs in release mode.
func NewStore(secret string, secure bool) sessions.Store {
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(maxSessionLifetime.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
	return store
}

// CurrentUserID returns the id stored in the request's session, if any.
func CurrentUserID(c *gin.Context) (string, bool) {
	session := sessions.Default(c)
	userID, ok := session.Get(sessionKeyUser).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// SignIn records the user id in the session and persists the cookie.
func SignIn(c *gin.Context, userID string) error {
	session := sessions.Default(c)
	session.Set(sessionKeyUser, userID)
	return session.Save()
}

// SignOut invalidates the session.
func SignOut(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	return session.Save()
}
