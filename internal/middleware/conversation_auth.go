package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sakurakids/nursery-api/internal/constants"
	"github.com/sakurakids/nursery-api/internal/database"
	apierrors "github.com/sakurakids/nursery-api/internal/errors"
	"github.com/sakurakids/nursery-api/internal/models"
)

// RequireConversationAccess checks that the caller belongs to the conversation
// named by the :conversation_id (or :id) route parameter.
func RequireConversationAccess(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		convIDStr := c.Param(param)
		convID, err := strconv.ParseUint(convIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid conversation ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var conv models.Conversation
		if err := database.GetDB().First(&conv, convID).Error; err != nil {
			apierrors.NotFound(c, "Conversation not found")
			c.Abort()
			return
		}

		var member models.ChatMember
		err = database.GetDB().
			Where("conversation_id = ? AND user_id = ?", convID, userID).
			First(&member).Error
		if err != nil {
			// Return 404 instead of 403 to avoid leaking conversation existence
			apierrors.NotFound(c, "Conversation not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyConversation, conv)
		c.Next()
	}
}
