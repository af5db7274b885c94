package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

func newSessionTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions(SessionCookieName, NewStore("test-secret", false)))

	r.POST("/signin", func(c *gin.Context) {
		if err := SignIn(c, "alice01"); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNoContent)
	})
	r.POST("/signout", func(c *gin.Context) {
		if err := SignOut(c); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNoContent)
	})
	r.GET("/whoami", func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			c.Status(http.StatusUnauthorized)
			return
		}
		c.String(http.StatusOK, userID)
	})
	return r
}

func do(router *gin.Engine, method, url string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSessionRoundTrip(t *testing.T) {
	router := newSessionTestRouter()

	// No cookie: not signed in.
	if w := do(router, http.MethodGet, "/whoami", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a session, got %d", w.Code)
	}

	// Sign in and replay the cookie.
	w := do(router, http.MethodPost, "/signin", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("sign in failed: %d", w.Code)
	}
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie")
	}

	w = do(router, http.MethodGet, "/whoami", cookies)
	if w.Code != http.StatusOK || w.Body.String() != "alice01" {
		t.Fatalf("expected alice01 with the session cookie, got %d %q", w.Code, w.Body.String())
	}
}

func TestSignOutClearsSession(t *testing.T) {
	router := newSessionTestRouter()

	w := do(router, http.MethodPost, "/signin", nil)
	cookies := w.Result().Cookies()

	w = do(router, http.MethodPost, "/signout", cookies)
	if w.Code != http.StatusNoContent {
		t.Fatalf("sign out failed: %d", w.Code)
	}
	cleared := w.Result().Cookies()
	if len(cleared) > 0 {
		cookies = cleared
	}

	w = do(router, http.MethodGet, "/whoami", cookies)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after sign out, got %d", w.Code)
	}
}
