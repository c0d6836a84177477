package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sakurakids/nursery-api/internal/database"
	apierrors "github.com/sakurakids/nursery-api/internal/errors"
	"github.com/sakurakids/nursery-api/internal/middleware"
	"github.com/sakurakids/nursery-api/internal/models"
	"github.com/sakurakids/nursery-api/internal/repository"
	"github.com/sakurakids/nursery-api/internal/utils"
	"gorm.io/gorm"
)

type NurseryHandler struct {
	nurseryRepo repository.NurseryRepository
}

func NewNurseryHandler(nurseryRepo repository.NurseryRepository) *NurseryHandler {
	return &NurseryHandler{
		nurseryRepo: nurseryRepo,
	}
}

func actorOrgID(c *gin.Context) *uint64 {
	if orgID, ok := middleware.GetActiveOrganizationID(c); ok {
		return &orgID
	}
	return nil
}

// ListNurseries returns nurseries owned by the caller
func (h *NurseryHandler) ListNurseries(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	nurseries, total, err := h.nurseryRepo.ListOwned(userID, actorOrgID(c), params.Page, params.Limit)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch nurseries")
		return
	}

	respondList(c, nurseries, params, total)
}

// CreateNursery creates a nursery owned by the caller
func (h *NurseryHandler) CreateNursery(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}

	type CreateNurseryRequest struct {
		Name    string `json:"name" binding:"required"`
		Address string `json:"address"`
		Phone   string `json:"phone"`
	}

	var req CreateNurseryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	nursery := models.Nursery{
		OrganizationID: orgID,
		CreatedBy:      userID,
		Name:           req.Name,
		Address:        req.Address,
		Phone:          req.Phone,
	}

	if err := h.nurseryRepo.Create(&nursery); err != nil {
		apierrors.InternalError(c, "Failed to create nursery")
		return
	}

	c.JSON(http.StatusCreated, nursery)
}

// GetNursery returns one owned nursery; not-owned rows answer 404
func (h *NurseryHandler) GetNursery(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "nursery ID")
	if !ok {
		return
	}

	nursery, err := h.nurseryRepo.FindOwned(id, userID, actorOrgID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Nursery not found")
			return
		}
		apierrors.InternalError(c, "Failed to fetch nursery")
		return
	}

	c.JSON(http.StatusOK, nursery)
}

// UpdateNursery applies a partial update to an owned nursery
func (h *NurseryHandler) UpdateNursery(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "nursery ID")
	if !ok {
		return
	}

	nursery, err := h.nurseryRepo.FindOwned(id, userID, actorOrgID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Nursery not found")
			return
		}
		apierrors.InternalError(c, "Failed to fetch nursery")
		return
	}

	type UpdateNurseryRequest struct {
		Name    *string `json:"name"`
		Address *string `json:"address"`
		Phone   *string `json:"phone"`
	}

	var req UpdateNurseryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Name != nil {
		nursery.Name = *req.Name
	}
	if req.Address != nil {
		nursery.Address = *req.Address
	}
	if req.Phone != nil {
		nursery.Phone = *req.Phone
	}

	if err := h.nurseryRepo.Update(nursery); err != nil {
		apierrors.InternalError(c, "Failed to update nursery")
		return
	}

	c.JSON(http.StatusOK, nursery)
}

// DeleteNursery removes an owned nursery and its classes
func (h *NurseryHandler) DeleteNursery(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "nursery ID")
	if !ok {
		return
	}

	if _, err := h.nurseryRepo.FindOwned(id, userID, actorOrgID(c)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Nursery not found")
			return
		}
		apierrors.InternalError(c, "Failed to fetch nursery")
		return
	}

	if err := database.GetDB().Where("nursery_id = ?", id).Delete(&models.Class{}).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete nursery classes")
		return
	}

	if err := h.nurseryRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Nursery not found")
			return
		}
		apierrors.InternalError(c, "Failed to delete nursery")
		return
	}

	respondDeleted(c, "Nursery deleted successfully")
}
