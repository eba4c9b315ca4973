package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lll-backend/internal/common/session"
)

const sessionContextKey = "session"

// Session decodes the session cookie into the request context. It never
// rejects: an unreadable cookie simply yields an unauthenticated state.
func Session(mgr *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(sessionContextKey, mgr.Read(c.Request))
		c.Next()
	}
}

// GetSession returns the session state loaded by Session.
func GetSession(c *gin.Context) session.State {
	if v, exists := c.Get(sessionContextKey); exists {
		if s, ok := v.(session.State); ok {
			return s
		}
	}
	return session.State{}
}

// RequireSession gates handlers that need an authenticated caller.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetSession(c).Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		c.Next()
	}
}
