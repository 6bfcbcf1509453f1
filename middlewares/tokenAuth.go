package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/L1nkStart/cgm-system-v1-sub000/utils"
	"github.com/L1nkStart/cgm-system-v1-sub000/workflow"
)

const sessionKey = "session"

// extractAccessToken pulls the token from the accessToken cookie, the
// Authorization header or the accessToken query parameter, in that order.
func extractAccessToken(c *gin.Context) string {
	if token, err := c.Cookie(utils.AccessTokenCookie); err == nil && token != "" {
		return token
	}
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.DefaultQuery("accessToken", "")
}

// SessionAuthMiddleware validates the token and stores the resulting session
// in the request context. The assigned states ride in the token, so scoping
// needs no user lookup.
func SessionAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractAccessToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing access token"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(sessionKey, workflow.Session{
			UserID:         claims.UserID,
			Role:           claims.Role,
			AssignedStates: claims.AssignedStates,
		})
		c.Next()
	}
}

// RoleAuthMiddleware restricts access to the listed roles.
func RoleAuthMiddleware(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := SessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found in context"})
			c.Abort()
			return
		}

		for _, role := range requiredRoles {
			if session.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient privileges"})
		c.Abort()
	}
}

// SessionFromContext retrieves the session stored by SessionAuthMiddleware.
func SessionFromContext(c *gin.Context) (workflow.Session, bool) {
	value, exists := c.Get(sessionKey)
	if !exists {
		return workflow.Session{}, false
	}
	session, ok := value.(workflow.Session)
	return session, ok
}
