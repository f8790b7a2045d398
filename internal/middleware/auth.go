package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Context keys set by CurrentUser and read by handlers.
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
)

// Session keys bound at login.
const (
	sessionUserID   = "userID"
	sessionUsername = "username"
)

// CurrentUser resolves the caller's identity from the session cookie and
// passes it to handlers through the request context. Requests without a
// valid session simply carry no identity; RequireAuth enforces presence.
func CurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		id, ok := session.Get(sessionUserID).(int64)
		if !ok {
			c.Next()
			return
		}
		username, _ := session.Get(sessionUsername).(string)

		c.Set(ContextUserID, id)
		c.Set(ContextUsername, username)
		c.Next()
	}
}

// RequireAuth rejects the request with 401 before any handler logic runs
// when no identity was resolved.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(ContextUserID); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated caller's id. Only valid behind
// RequireAuth.
func UserID(c *gin.Context) int64 {
	id, _ := c.Get(ContextUserID)
	v, _ := id.(int64)
	return v
}

// Login binds the identity to the server-side session and writes the opaque
// cookie.
func Login(c *gin.Context, userID int64, username string) error {
	session := sessions.Default(c)
	session.Set(sessionUserID, userID)
	session.Set(sessionUsername, username)
	return session.Save()
}

// Logout destroys the session.
func Logout(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	return session.Save()
}
