// Package middleware contains any custom middleware used in the app
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dormhub/room-api/internal/store"
	"dormhub/room-api/pkg/security"
)

// NewAuthMiddleware gates protected routes. It validates the bearer token
// first and only then re-fetches the user, so a request with a missing or
// forged token never touches the database. The verified flag is re-checked
// per request because it can change after a session was issued
func NewAuthMiddleware(sessions *security.Sessions, users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "missing_authorization_header",
				"requestID": requestID,
			})
			return
		}

		// Fields, not Split, so a header without a scheme prefix can't
		// index past the end
		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "malformed_authorization_header",
				"requestID": requestID,
			})
			return
		}

		claims, err := sessions.Verify(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "token_invalid",
				"requestID": requestID,
			})
			return
		}

		user, err := users.ByID(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "internal_server_error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to check if user exists", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "user_not_found",
				"requestID": requestID,
			})
			return
		}

		if !user.Verified {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":     "email_not_verified",
				"requestID": requestID,
			})
			return
		}

		c.Set("userID", user.ID)
		c.Set("userEmail", user.Email)
		c.Next()
	}
}
