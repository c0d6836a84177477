package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sakurakids/nursery-api/internal/constants"
	"github.com/sakurakids/nursery-api/internal/database"
	apierrors "github.com/sakurakids/nursery-api/internal/errors"
	"github.com/sakurakids/nursery-api/internal/models"
	"gorm.io/gorm"
)

// ChatMemberHandler manages conversation membership rows, addressed by their
// natural key (conversation_id, user_id).
type ChatMemberHandler struct{}

func NewChatMemberHandler() *ChatMemberHandler {
	return &ChatMemberHandler{}
}

// ListMembers returns the members of a conversation
func (h *ChatMemberHandler) ListMembers(c *gin.Context) {
	convInterface, _ := c.Get(constants.ContextKeyConversation)
	conv := convInterface.(models.Conversation)

	var members []models.ChatMember
	if err := database.GetDB().
		Preload("User").
		Where("conversation_id = ?", conv.ID).
		Find(&members).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch members")
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": members})
}

// AddMember adds a user to a conversation
func (h *ChatMemberHandler) AddMember(c *gin.Context) {
	convInterface, _ := c.Get(constants.ContextKeyConversation)
	conv := convInterface.(models.Conversation)

	type AddMemberRequest struct {
		UserID uint64 `json:"user_id" binding:"required"`
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var user models.User
	if err := database.GetDB().First(&user, req.UserID).Error; err != nil {
		apierrors.NotFound(c, "User not found")
		return
	}

	var existing models.ChatMember
	err := database.GetDB().
		Where("conversation_id = ? AND user_id = ?", conv.ID, req.UserID).
		First(&existing).Error
	if err == nil {
		apierrors.Conflict(c, "Already a member of this conversation")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		apierrors.InternalError(c, "Failed to add member")
		return
	}

	member := models.ChatMember{
		ConversationID: conv.ID,
		UserID:         req.UserID,
		JoinedAt:       time.Now(),
	}

	if err := database.GetDB().Create(&member).Error; err != nil {
		apierrors.InternalError(c, "Failed to add member")
		return
	}

	c.JSON(http.StatusCreated, member)
}

// GetMember returns one membership row by its composite key
func (h *ChatMemberHandler) GetMember(c *gin.Context) {
	convInterface, _ := c.Get(constants.ContextKeyConversation)
	conv := convInterface.(models.Conversation)

	targetUserID, ok := pathID(c, "user_id", "user ID")
	if !ok {
		return
	}

	var member models.ChatMember
	if err := database.GetDB().
		Preload("User").
		Where("conversation_id = ? AND user_id = ?", conv.ID, targetUserID).
		First(&member).Error; err != nil {
		apierrors.NotFound(c, "Member not found")
		return
	}

	c.JSON(http.StatusOK, member)
}

// RemoveMember removes a membership row by its composite key
func (h *ChatMemberHandler) RemoveMember(c *gin.Context) {
	convInterface, _ := c.Get(constants.ContextKeyConversation)
	conv := convInterface.(models.Conversation)

	targetUserID, ok := pathID(c, "user_id", "user ID")
	if !ok {
		return
	}

	result := database.GetDB().
		Where("conversation_id = ? AND user_id = ?", conv.ID, targetUserID).
		Delete(&models.ChatMember{})
	if result.Error != nil {
		apierrors.InternalError(c, "Failed to remove member")
		return
	}
	if result.RowsAffected == 0 {
		apierrors.NotFound(c, "Member not found")
		return
	}

	respondDeleted(c, "Member removed successfully")
}
