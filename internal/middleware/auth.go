package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sakurakids/nursery-api/internal/constants"
	apierrors "github.com/sakurakids/nursery-api/internal/errors"
)

// RequireAuth checks if the user is authenticated via session
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(constants.ContextKeyUserID)

		if userID == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)

		if orgID := session.Get(constants.ContextKeyActiveOrgID); orgID != nil {
			c.Set(constants.ContextKeyActiveOrgID, orgID)
		}
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	return toUint64(userID)
}

// GetActiveOrganizationID retrieves the caller's active organization from context.
// A session without an active organization is valid; callers must handle the
// false case explicitly.
func GetActiveOrganizationID(c *gin.Context) (uint64, bool) {
	orgID, exists := c.Get(constants.ContextKeyActiveOrgID)
	if !exists {
		return 0, false
	}

	return toUint64(orgID)
}

func toUint64(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint64:
		return n, true
	case uint:
		return uint64(n), true
	case int64:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case int:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	default:
		return 0, false
	}
}
