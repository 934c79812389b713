package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"transientmap/internal/auth"
	"transientmap/internal/session"
)

// SessionAuthMiddleware validates the bearer token and then requires the
// session it names to still be live in the store. A structurally valid JWT
// whose session has aged out of the transient map is rejected: the map, not
// the token, is the source of truth for liveness.
//
// A hit refreshes the session, so active clients keep their sessions young.
func SessionAuthMiddleware(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
		if tokenString == "" {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization token is required",
			})
			c.Abort()
			return
		}

		claims, err := auth.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		sess, ok := store.Lookup(claims.SessionID, true)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Session has expired",
			})
			c.Abort()
			return
		}

		c.Set("session_id", sess.ID)
		c.Set("user_id", sess.UserID)
		c.Set("username", sess.Username)

		c.Next()
	}
}
