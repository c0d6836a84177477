package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sakurakids/nursery-api/internal/constants"
	"github.com/sakurakids/nursery-api/internal/database"
	apierrors "github.com/sakurakids/nursery-api/internal/errors"
	"github.com/sakurakids/nursery-api/internal/models"
	"github.com/sakurakids/nursery-api/internal/utils"
)

type MessageHandler struct{}

func NewMessageHandler() *MessageHandler {
	return &MessageHandler{}
}

// ListMessages returns messages in a conversation, newest first
func (h *MessageHandler) ListMessages(c *gin.Context) {
	convInterface, _ := c.Get(constants.ContextKeyConversation)
	conv := convInterface.(models.Conversation)

	params := utils.GetPaginationParams(c)

	query := database.GetDB().Model(&models.Message{}).Where("conversation_id = ?", conv.ID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch messages")
		return
	}

	var messages []models.Message
	if err := query.
		Preload("Sender").
		Scopes(database.Paginate(params)).
		Order("created_at DESC").
		Find(&messages).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch messages")
		return
	}

	respondList(c, messages, params, total)
}

// CreateMessage sends a message; the sender comes from the session, never the body
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	convInterface, _ := c.Get(constants.ContextKeyConversation)
	conv := convInterface.(models.Conversation)

	type CreateMessageRequest struct {
		Body string `json:"body" binding:"required"`
	}

	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	message := models.Message{
		ConversationID: conv.ID,
		SenderID:       userID,
		Body:           req.Body,
	}

	if err := database.GetDB().Create(&message).Error; err != nil {
		apierrors.InternalError(c, "Failed to send message")
		return
	}

	c.JSON(http.StatusCreated, message)
}

// GetMessage returns one message in the conversation
func (h *MessageHandler) GetMessage(c *gin.Context) {
	convInterface, _ := c.Get(constants.ContextKeyConversation)
	conv := convInterface.(models.Conversation)

	id, ok := pathID(c, "message_id", "message ID")
	if !ok {
		return
	}

	var message models.Message
	if err := database.GetDB().
		Preload("Sender").
		Preload("Receipts").
		Where("conversation_id = ?", conv.ID).
		First(&message, id).Error; err != nil {
		apierrors.NotFound(c, "Message not found")
		return
	}

	c.JSON(http.StatusOK, message)
}

// UpdateMessage edits the body of the caller's own message
func (h *MessageHandler) UpdateMessage(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	convInterface, _ := c.Get(constants.ContextKeyConversation)
	conv := convInterface.(models.Conversation)

	id, ok := pathID(c, "message_id", "message ID")
	if !ok {
		return
	}

	var message models.Message
	if err := database.GetDB().
		Where("conversation_id = ?", conv.ID).
		First(&message, id).Error; err != nil {
		apierrors.NotFound(c, "Message not found")
		return
	}

	if message.SenderID != userID {
		apierrors.Forbidden(c, "Only the sender can edit this message")
		return
	}

	type UpdateMessageRequest struct {
		Body string `json:"body" binding:"required"`
	}

	var req UpdateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	message.Body = req.Body
	if err := database.GetDB().Save(&message).Error; err != nil {
		apierrors.InternalError(c, "Failed to update message")
		return
	}

	c.JSON(http.StatusOK, message)
}

// DeleteMessage removes the caller's own message
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	convInterface, _ := c.Get(constants.ContextKeyConversation)
	conv := convInterface.(models.Conversation)

	id, ok := pathID(c, "message_id", "message ID")
	if !ok {
		return
	}

	var message models.Message
	if err := database.GetDB().
		Where("conversation_id = ?", conv.ID).
		First(&message, id).Error; err != nil {
		apierrors.NotFound(c, "Message not found")
		return
	}

	if message.SenderID != userID {
		apierrors.Forbidden(c, "Only the sender can delete this message")
		return
	}

	if err := database.GetDB().Where("message_id = ?", message.ID).Delete(&models.Receipt{}).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete message receipts")
		return
	}
	if err := database.GetDB().Delete(&message).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete message")
		return
	}

	respondDeleted(c, "Message deleted successfully")
}
