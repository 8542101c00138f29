package api

import (
	"errors"
	"net/http"
	"strings"

	"fitplan/training-planner/internal/domain"
	"fitplan/training-planner/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Constants for context keys
const (
	ContextUserKey = "currentUser"
)

// Error codes the client can branch on. SessionExpiredCode in a 401
// body tells the client to clear its persisted auth state and reprompt
// for credentials instead of showing a generic failure.
const (
	SessionExpiredCode = "session_expired"
)

// AuthMiddleware creates a Gin middleware for bearer-token authentication.
// The token is verified and the profile is re-resolved on every request,
// so a deactivated user is locked out immediately, not at token expiry.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}

		userID, err := authService.VerifyToken(parts[1])
		if err != nil {
			if errors.Is(err, service.ErrSessionExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "session expired, please sign in again",
					"code":  SessionExpiredCode,
				})
				return
			}
			abortWithError(c, http.StatusUnauthorized, "invalid token")
			return
		}

		user, err := authService.ResolveUser(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, service.ErrUnauthenticated) {
				abortWithError(c, http.StatusUnauthorized, "account is not active")
				return
			}
			log.WithError(err).WithField("userId", userID).Error("failed to resolve user")
			abortWithError(c, http.StatusInternalServerError, "failed to resolve user")
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// RequireManageUsers only admits owners and admins. Must run AFTER
// AuthMiddleware.
func RequireManageUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := getUserFromContext(c)
		if user == nil {
			abortWithError(c, http.StatusInternalServerError, "user not found in context")
			return
		}
		if !user.Capabilities().CanManageUsers {
			abortWithError(c, http.StatusForbidden, "insufficient permission to manage users")
			return
		}
		c.Next()
	}
}

// getUserFromContext returns the resolved user set by AuthMiddleware,
// or nil when the middleware did not run.
func getUserFromContext(c *gin.Context) *domain.User {
	raw, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	user, ok := raw.(*domain.User)
	if !ok {
		return nil
	}
	return user
}
