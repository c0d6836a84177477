package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sakurakids/nursery-api/internal/constants"
	"github.com/sakurakids/nursery-api/internal/database"
	apierrors "github.com/sakurakids/nursery-api/internal/errors"
	"github.com/sakurakids/nursery-api/internal/models"
)

// RequireClassOwnership loads a class and verifies, through its parent nursery,
// that the caller may act on it. A class under a nursery the caller does not
// own answers 404, never 403, so ids cannot be probed.
func RequireClassOwnership() gin.HandlerFunc {
	return func(c *gin.Context) {
		classIDStr := c.Param("id")
		classID, err := strconv.ParseUint(classIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid class ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		query := database.GetDB().
			Preload("Nursery").
			Joins("JOIN nurseries ON nurseries.id = classes.nursery_id").
			Where("classes.id = ? AND nurseries.created_by = ?", classID, userID)

		// An active organization narrows ownership further; a session without
		// one falls back to created_by alone.
		if orgID, ok := GetActiveOrganizationID(c); ok {
			query = query.Where("nurseries.organization_id = ?", orgID)
		}

		var class models.Class
		if err := query.First(&class).Error; err != nil {
			apierrors.NotFound(c, "Class not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyClass, class)
		c.Next()
	}
}
