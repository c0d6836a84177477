package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sakurakids/nursery-api/internal/constants"
	"github.com/sakurakids/nursery-api/internal/database"
	apierrors "github.com/sakurakids/nursery-api/internal/errors"
	"github.com/sakurakids/nursery-api/internal/models"
	"gorm.io/gorm/clause"
)

// ReceiptHandler manages read receipts, addressed by their natural key
// (message_id, user_id).
type ReceiptHandler struct{}

func NewReceiptHandler() *ReceiptHandler {
	return &ReceiptHandler{}
}

// ListReceipts returns the receipts for one message
func (h *ReceiptHandler) ListReceipts(c *gin.Context) {
	convInterface, _ := c.Get(constants.ContextKeyConversation)
	conv := convInterface.(models.Conversation)

	messageID, ok := pathID(c, "message_id", "message ID")
	if !ok {
		return
	}

	var message models.Message
	if err := database.GetDB().
		Where("conversation_id = ?", conv.ID).
		First(&message, messageID).Error; err != nil {
		apierrors.NotFound(c, "Message not found")
		return
	}

	var receipts []models.Receipt
	if err := database.GetDB().
		Preload("User").
		Where("message_id = ?", messageID).
		Find(&receipts).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch receipts")
		return
	}

	c.JSON(http.StatusOK, gin.H{"receipts": receipts})
}

// MarkRead upserts the caller's receipt; a second read refreshes read_at
func (h *ReceiptHandler) MarkRead(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	convInterface, _ := c.Get(constants.ContextKeyConversation)
	conv := convInterface.(models.Conversation)

	messageID, ok := pathID(c, "message_id", "message ID")
	if !ok {
		return
	}

	var message models.Message
	if err := database.GetDB().
		Where("conversation_id = ?", conv.ID).
		First(&message, messageID).Error; err != nil {
		apierrors.NotFound(c, "Message not found")
		return
	}

	receipt := models.Receipt{
		MessageID: messageID,
		UserID:    userID,
		ReadAt:    time.Now(),
	}

	if err := database.GetDB().
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "message_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"read_at"}),
		}).
		Create(&receipt).Error; err != nil {
		apierrors.InternalError(c, "Failed to record receipt")
		return
	}

	c.JSON(http.StatusOK, receipt)
}

// GetReceipt returns one receipt by its composite key
func (h *ReceiptHandler) GetReceipt(c *gin.Context) {
	messageID, ok := pathID(c, "message_id", "message ID")
	if !ok {
		return
	}
	targetUserID, ok := pathID(c, "user_id", "user ID")
	if !ok {
		return
	}

	var receipt models.Receipt
	if err := database.GetDB().
		Where("message_id = ? AND user_id = ?", messageID, targetUserID).
		First(&receipt).Error; err != nil {
		apierrors.NotFound(c, "Receipt not found")
		return
	}

	c.JSON(http.StatusOK, receipt)
}

// DeleteReceipt removes one receipt by its composite key
func (h *ReceiptHandler) DeleteReceipt(c *gin.Context) {
	messageID, ok := pathID(c, "message_id", "message ID")
	if !ok {
		return
	}
	targetUserID, ok := pathID(c, "user_id", "user ID")
	if !ok {
		return
	}

	result := database.GetDB().
		Where("message_id = ? AND user_id = ?", messageID, targetUserID).
		Delete(&models.Receipt{})
	if result.Error != nil {
		apierrors.InternalError(c, "Failed to delete receipt")
		return
	}
	if result.RowsAffected == 0 {
		apierrors.NotFound(c, "Receipt not found")
		return
	}

	respondDeleted(c, "Receipt deleted successfully")
}
