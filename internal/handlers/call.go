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
)

type CallHandler struct{}

func NewCallHandler() *CallHandler {
	return &CallHandler{}
}

// ListCalls returns the call history of a conversation
func (h *CallHandler) ListCalls(c *gin.Context) {
	convInterface, _ := c.Get(constants.ContextKeyConversation)
	conv := convInterface.(models.Conversation)

	params := utils.GetPaginationParams(c)

	query := database.GetDB().Model(&models.Call{}).Where("conversation_id = ?", conv.ID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch calls")
		return
	}

	var calls []models.Call
	if err := query.
		Scopes(database.Paginate(params)).
		Order("created_at DESC").
		Find(&calls).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch calls")
		return
	}

	respondList(c, calls, params, total)
}

// CreateCall starts a call in a conversation
func (h *CallHandler) CreateCall(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	convInterface, _ := c.Get(constants.ContextKeyConversation)
	conv := convInterface.(models.Conversation)

	now := time.Now()
	call := models.Call{
		ConversationID: conv.ID,
		CallerID:       userID,
		Status:         models.CallStatusRinging,
		StartedAt:      &now,
	}

	if err := database.GetDB().Create(&call).Error; err != nil {
		apierrors.InternalError(c, "Failed to create call")
		return
	}

	c.JSON(http.StatusCreated, call)
}

// GetCall returns one call in the conversation
func (h *CallHandler) GetCall(c *gin.Context) {
	convInterface, _ := c.Get(constants.ContextKeyConversation)
	conv := convInterface.(models.Conversation)

	id, ok := pathID(c, "call_id", "call ID")
	if !ok {
		return
	}

	var call models.Call
	if err := database.GetDB().
		Where("conversation_id = ?", conv.ID).
		First(&call, id).Error; err != nil {
		apierrors.NotFound(c, "Call not found")
		return
	}

	c.JSON(http.StatusOK, call)
}

// UpdateCall transitions a call's status; ending a call stamps ended_at
func (h *CallHandler) UpdateCall(c *gin.Context) {
	convInterface, _ := c.Get(constants.ContextKeyConversation)
	conv := convInterface.(models.Conversation)

	id, ok := pathID(c, "call_id", "call ID")
	if !ok {
		return
	}

	var call models.Call
	if err := database.GetDB().
		Where("conversation_id = ?", conv.ID).
		First(&call, id).Error; err != nil {
		apierrors.NotFound(c, "Call not found")
		return
	}

	type UpdateCallRequest struct {
		Status models.CallStatus `json:"status" binding:"required"`
	}

	var req UpdateCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	switch req.Status {
	case models.CallStatusRinging, models.CallStatusActive, models.CallStatusEnded, models.CallStatusMissed:
	default:
		apierrors.BadRequest(c, "Invalid call status")
		return
	}

	if (req.Status == models.CallStatusEnded || req.Status == models.CallStatusMissed) && call.EndedAt == nil {
		now := time.Now()
		call.EndedAt = &now
	}
	call.Status = req.Status

	if err := database.GetDB().Save(&call).Error; err != nil {
		apierrors.InternalError(c, "Failed to update call")
		return
	}

	c.JSON(http.StatusOK, call)
}

// DeleteCall removes one call record
func (h *CallHandler) DeleteCall(c *gin.Context) {
	convInterface, _ := c.Get(constants.ContextKeyConversation)
	conv := convInterface.(models.Conversation)

	id, ok := pathID(c, "call_id", "call ID")
	if !ok {
		return
	}

	result := database.GetDB().
		Where("conversation_id = ?", conv.ID).
		Delete(&models.Call{}, id)
	if result.Error != nil {
		apierrors.InternalError(c, "Failed to delete call")
		return
	}
	if result.RowsAffected == 0 {
		apierrors.NotFound(c, "Call not found")
		return
	}

	respondDeleted(c, "Call deleted successfully")
}
