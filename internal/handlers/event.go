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

type EventHandler struct{}

func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// ListEvents returns events in the active organization, soonest first. The
// from/to query filters bound the start time.
func (h *EventHandler) ListEvents(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	query := database.GetDB().Model(&models.Event{}).Scopes(database.InOrganization(orgID))
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			apierrors.BadRequest(c, "Invalid from timestamp")
			return
		}
		query = query.Where("starts_at >= ?", t)
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			apierrors.BadRequest(c, "Invalid to timestamp")
			return
		}
		query = query.Where("starts_at <= ?", t)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch events")
		return
	}

	var events []models.Event
	if err := query.
		Scopes(database.Paginate(params)).
		Order("starts_at ASC").
		Find(&events).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch events")
		return
	}

	respondList(c, events, params, total)
}

// CreateEvent creates an event in the active organization
func (h *EventHandler) CreateEvent(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}

	type CreateEventRequest struct {
		Title       string     `json:"title" binding:"required"`
		Description string     `json:"description"`
		Location    string     `json:"location"`
		StartsAt    time.Time  `json:"starts_at" binding:"required"`
		EndsAt      *time.Time `json:"ends_at"`
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.EndsAt != nil && req.EndsAt.Before(req.StartsAt) {
		apierrors.BadRequest(c, "Event cannot end before it starts")
		return
	}

	event := models.Event{
		OrganizationID: orgID,
		CreatedBy:      userID,
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		StartsAt:       req.StartsAt,
		EndsAt:         req.EndsAt,
	}

	if err := database.GetDB().Create(&event).Error; err != nil {
		apierrors.InternalError(c, "Failed to create event")
		return
	}

	c.JSON(http.StatusCreated, event)
}

// GetEvent returns one event
func (h *EventHandler) GetEvent(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "event ID")
	if !ok {
		return
	}

	var event models.Event
	if err := database.GetDB().Scopes(database.InOrganization(orgID)).First(&event, id).Error; err != nil {
		apierrors.NotFound(c, "Event not found")
		return
	}

	c.JSON(http.StatusOK, event)
}

// UpdateEvent applies a partial update to an event
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "event ID")
	if !ok {
		return
	}

	var event models.Event
	if err := database.GetDB().Scopes(database.InOrganization(orgID)).First(&event, id).Error; err != nil {
		apierrors.NotFound(c, "Event not found")
		return
	}

	type UpdateEventRequest struct {
		Title       *string    `json:"title"`
		Description *string    `json:"description"`
		Location    *string    `json:"location"`
		StartsAt    *time.Time `json:"starts_at"`
		EndsAt      *time.Time `json:"ends_at"`
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.StartsAt != nil {
		event.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		event.EndsAt = req.EndsAt
	}
	if event.EndsAt != nil && event.EndsAt.Before(event.StartsAt) {
		apierrors.BadRequest(c, "Event cannot end before it starts")
		return
	}

	if err := database.GetDB().Save(&event).Error; err != nil {
		apierrors.InternalError(c, "Failed to update event")
		return
	}

	c.JSON(http.StatusOK, event)
}

// DeleteEvent removes an event
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "event ID")
	if !ok {
		return
	}

	result := database.GetDB().
		Scopes(database.InOrganization(orgID)).
		Delete(&models.Event{}, id)
	if result.Error != nil {
		apierrors.InternalError(c, "Failed to delete event")
		return
	}
	if result.RowsAffected == 0 {
		apierrors.NotFound(c, "Event not found")
		return
	}

	respondDeleted(c, "Event deleted successfully")
}
