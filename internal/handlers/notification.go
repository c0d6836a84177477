package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sakurakids/nursery-api/internal/database"
	apierrors "github.com/sakurakids/nursery-api/internal/errors"
	"github.com/sakurakids/nursery-api/internal/models"
	"github.com/sakurakids/nursery-api/internal/utils"
)

type NotificationHandler struct{}

func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{}
}

// ListNotifications returns the session user's notifications in the active
// organization, newest first. unread=true narrows to unread ones.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	query := database.GetDB().Model(&models.Notification{}).
		Scopes(database.InOrganization(orgID)).
		Where("user_id = ?", userID)
	if c.Query("unread") == "true" {
		query = query.Where("read_at IS NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch notifications")
		return
	}

	var notifications []models.Notification
	if err := query.
		Scopes(database.Paginate(params)).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch notifications")
		return
	}

	respondList(c, notifications, params, total)
}

// CreateNotification delivers a notification to a member of the active
// organization
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}

	type CreateNotificationRequest struct {
		UserID uint64 `json:"user_id" binding:"required"`
		Title  string `json:"title" binding:"required"`
		Body   string `json:"body"`
	}

	var req CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var member models.OrganizationMember
	if err := database.GetDB().
		Where("organization_id = ? AND user_id = ?", orgID, req.UserID).
		First(&member).Error; err != nil {
		apierrors.NotFound(c, "User not found in organization")
		return
	}

	notification := models.Notification{
		OrganizationID: orgID,
		UserID:         req.UserID,
		Title:          req.Title,
		Body:           req.Body,
	}

	if err := database.GetDB().Create(&notification).Error; err != nil {
		apierrors.InternalError(c, "Failed to create notification")
		return
	}

	c.JSON(http.StatusCreated, notification)
}

// notificationForUser loads one of the session user's notifications or
// answers 404.
func notificationForUser(c *gin.Context) (*models.Notification, bool) {
	userID, ok := requireUser(c)
	if !ok {
		return nil, false
	}
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return nil, false
	}
	id, ok := pathID(c, "id", "notification ID")
	if !ok {
		return nil, false
	}

	var notification models.Notification
	if err := database.GetDB().
		Scopes(database.InOrganization(orgID)).
		Where("user_id = ?", userID).
		First(&notification, id).Error; err != nil {
		apierrors.NotFound(c, "Notification not found")
		return nil, false
	}
	return &notification, true
}

// GetNotification returns one of the session user's notifications
func (h *NotificationHandler) GetNotification(c *gin.Context) {
	notification, ok := notificationForUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, notification)
}

// MarkRead stamps read_at. Marking an already read notification is a no-op.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notification, ok := notificationForUser(c)
	if !ok {
		return
	}

	if notification.ReadAt == nil {
		now := time.Now()
		notification.ReadAt = &now
		if err := database.GetDB().Save(notification).Error; err != nil {
			apierrors.InternalError(c, "Failed to mark notification read")
			return
		}
	}

	c.JSON(http.StatusOK, notification)
}

// DeleteNotification removes one of the session user's notifications
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	notification, ok := notificationForUser(c)
	if !ok {
		return
	}

	if err := database.GetDB().Delete(notification).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete notification")
		return
	}

	respondDeleted(c, "Notification deleted successfully")
}
