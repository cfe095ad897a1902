package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// SessionValidator reports whether an admin session token is still usable.
type SessionValidator interface {
	IsValidSession(token string) bool
}

// AdminAuth rejects requests that do not carry a valid admin session in the
// Authorization header. Preflight OPTIONS requests always pass.
func AdminAuth(sessions SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		token := BearerToken(c.GetHeader("Authorization"))
		if token == "" || !sessions.IsValidSession(token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "admin authentication required"})
			return
		}
		c.Next()
	}
}

// BearerToken extracts the token of an "Authorization: Bearer <token>"
// header value. It returns "" for any other scheme.
func BearerToken(header string) string {
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
