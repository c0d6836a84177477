package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sakurakids/nursery-api/internal/database"
	apierrors "github.com/sakurakids/nursery-api/internal/errors"
	"github.com/sakurakids/nursery-api/internal/models"
	"github.com/sakurakids/nursery-api/internal/utils"
)

type ParentHandler struct{}

func NewParentHandler() *ParentHandler {
	return &ParentHandler{}
}

// ListParents returns parents in the caller's active organization
func (h *ParentHandler) ListParents(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	query := database.GetDB().Model(&models.Parent{}).Scopes(database.InOrganization(orgID))
	if search := c.Query("search"); search != "" {
		query = query.Where("first_name LIKE ? OR last_name LIKE ? OR email LIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch parents")
		return
	}

	var parents []models.Parent
	if err := query.Scopes(database.Paginate(params)).Order("last_name, first_name").Find(&parents).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch parents")
		return
	}

	respondList(c, parents, params, total)
}

// CreateParent creates a parent in the caller's active organization
func (h *ParentHandler) CreateParent(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}

	type CreateParentRequest struct {
		UserID       *uint64  `json:"user_id"`
		FirstName    string   `json:"first_name" binding:"required"`
		LastName     string   `json:"last_name" binding:"required"`
		Email        string   `json:"email"`
		Phone        string   `json:"phone"`
		Relationship string   `json:"relationship"`
		ChildIDs     []uint64 `json:"child_ids"`
	}

	var req CreateParentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	parent := models.Parent{
		OrganizationID: orgID,
		UserID:         req.UserID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Relationship:   req.Relationship,
		ChildIDs:       req.ChildIDs,
	}

	if err := database.GetDB().Create(&parent).Error; err != nil {
		apierrors.InternalError(c, "Failed to create parent")
		return
	}

	c.JSON(http.StatusCreated, parent)
}

// GetParent returns one parent in the caller's active organization
func (h *ParentHandler) GetParent(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "parent ID")
	if !ok {
		return
	}

	var parent models.Parent
	if err := database.GetDB().Scopes(database.InOrganization(orgID)).First(&parent, id).Error; err != nil {
		apierrors.NotFound(c, "Parent not found")
		return
	}

	c.JSON(http.StatusOK, parent)
}

// UpdateParent applies a partial update
func (h *ParentHandler) UpdateParent(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "parent ID")
	if !ok {
		return
	}

	var parent models.Parent
	if err := database.GetDB().Scopes(database.InOrganization(orgID)).First(&parent, id).Error; err != nil {
		apierrors.NotFound(c, "Parent not found")
		return
	}

	type UpdateParentRequest struct {
		FirstName    *string   `json:"first_name"`
		LastName     *string   `json:"last_name"`
		Email        *string   `json:"email"`
		Phone        *string   `json:"phone"`
		Relationship *string   `json:"relationship"`
		ChildIDs     *[]uint64 `json:"child_ids"`
	}

	var req UpdateParentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.FirstName != nil {
		parent.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		parent.LastName = *req.LastName
	}
	if req.Email != nil {
		parent.Email = *req.Email
	}
	if req.Phone != nil {
		parent.Phone = *req.Phone
	}
	if req.Relationship != nil {
		parent.Relationship = *req.Relationship
	}
	if req.ChildIDs != nil {
		parent.ChildIDs = *req.ChildIDs
	}

	if err := database.GetDB().Save(&parent).Error; err != nil {
		apierrors.InternalError(c, "Failed to update parent")
		return
	}

	c.JSON(http.StatusOK, parent)
}

// DeleteParent removes a parent
func (h *ParentHandler) DeleteParent(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "parent ID")
	if !ok {
		return
	}

	result := database.GetDB().Scopes(database.InOrganization(orgID)).Delete(&models.Parent{}, id)
	if result.Error != nil {
		apierrors.InternalError(c, "Failed to delete parent")
		return
	}
	if result.RowsAffected == 0 {
		apierrors.NotFound(c, "Parent not found")
		return
	}

	respondDeleted(c, "Parent deleted successfully")
}
