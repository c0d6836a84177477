package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sakurakids/nursery-api/internal/constants"
	"github.com/sakurakids/nursery-api/internal/database"
	apierrors "github.com/sakurakids/nursery-api/internal/errors"
	"github.com/sakurakids/nursery-api/internal/models"
	"github.com/sakurakids/nursery-api/internal/utils"
	"gorm.io/gorm"
)

type ConversationHandler struct{}

func NewConversationHandler() *ConversationHandler {
	return &ConversationHandler{}
}

// ListConversations returns conversations the caller is a member of
func (h *ConversationHandler) ListConversations(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	query := database.GetDB().
		Model(&models.Conversation{}).
		Joins("JOIN chat_members ON chat_members.conversation_id = conversations.id").
		Where("chat_members.user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch conversations")
		return
	}

	var conversations []models.Conversation
	if err := query.
		Scopes(database.Paginate(params)).
		Order("conversations.updated_at DESC").
		Find(&conversations).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch conversations")
		return
	}

	respondList(c, conversations, params, total)
}

// CreateConversation creates a conversation with the caller as first member.
// Extra member ids may be supplied up front.
func (h *ConversationHandler) CreateConversation(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}

	type CreateConversationRequest struct {
		Title     string   `json:"title"`
		MemberIDs []uint64 `json:"member_ids"`
	}

	var req CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	conv := models.Conversation{
		OrganizationID: orgID,
		Title:          req.Title,
		CreatedBy:      userID,
	}

	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&conv).Error; err != nil {
			return err
		}

		members := []models.ChatMember{{ConversationID: conv.ID, UserID: userID, JoinedAt: time.Now()}}
		for _, id := range req.MemberIDs {
			if id == userID {
				continue
			}
			members = append(members, models.ChatMember{ConversationID: conv.ID, UserID: id, JoinedAt: time.Now()})
		}
		return tx.Create(&members).Error
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to create conversation")
		return
	}

	c.JSON(http.StatusCreated, conv)
}

// GetConversation returns one conversation with members preloaded
func (h *ConversationHandler) GetConversation(c *gin.Context) {
	convInterface, _ := c.Get(constants.ContextKeyConversation)
	conv := convInterface.(models.Conversation)

	var members []models.ChatMember
	database.GetDB().
		Preload("User").
		Where("conversation_id = ?", conv.ID).
		Find(&members)

	c.JSON(http.StatusOK, gin.H{
		"conversation": conv,
		"members":      members,
	})
}

// DeleteConversation removes a conversation, its members and messages
func (h *ConversationHandler) DeleteConversation(c *gin.Context) {
	convInterface, _ := c.Get(constants.ContextKeyConversation)
	conv := convInterface.(models.Conversation)

	if err := database.GetDB().Where("conversation_id = ?", conv.ID).Delete(&models.Message{}).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete conversation messages")
		return
	}
	if err := database.GetDB().Where("conversation_id = ?", conv.ID).Delete(&models.ChatMember{}).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete conversation members")
		return
	}
	if err := database.GetDB().Delete(&conv).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete conversation")
		return
	}

	respondDeleted(c, "Conversation deleted successfully")
}
