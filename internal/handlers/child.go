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

type ChildHandler struct{}

func NewChildHandler() *ChildHandler {
	return &ChildHandler{}
}

// ListChildren returns children in the caller's active organization
func (h *ChildHandler) ListChildren(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	query := database.GetDB().Model(&models.Child{}).Scopes(database.InOrganization(orgID))
	if search := c.Query("search"); search != "" {
		query = query.Where("first_name LIKE ? OR last_name LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch children")
		return
	}

	var children []models.Child
	if err := query.Scopes(database.Paginate(params)).Order("last_name, first_name").Find(&children).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch children")
		return
	}

	respondList(c, children, params, total)
}

// CreateChild creates a child in the caller's active organization
func (h *ChildHandler) CreateChild(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}

	type CreateChildRequest struct {
		FirstName string     `json:"first_name" binding:"required"`
		LastName  string     `json:"last_name" binding:"required"`
		BirthDate *time.Time `json:"birth_date"`
		Gender    string     `json:"gender"`
		Allergies string     `json:"allergies"`
		Notes     string     `json:"notes"`
	}

	var req CreateChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	child := models.Child{
		OrganizationID: orgID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		BirthDate:      req.BirthDate,
		Gender:         req.Gender,
		Allergies:      req.Allergies,
		Notes:          req.Notes,
	}

	if err := database.GetDB().Create(&child).Error; err != nil {
		apierrors.InternalError(c, "Failed to create child")
		return
	}

	c.JSON(http.StatusCreated, child)
}

// GetChild returns one child in the caller's active organization
func (h *ChildHandler) GetChild(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "child ID")
	if !ok {
		return
	}

	var child models.Child
	if err := database.GetDB().Scopes(database.InOrganization(orgID)).First(&child, id).Error; err != nil {
		apierrors.NotFound(c, "Child not found")
		return
	}

	c.JSON(http.StatusOK, child)
}

// UpdateChild applies a partial update
func (h *ChildHandler) UpdateChild(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "child ID")
	if !ok {
		return
	}

	var child models.Child
	if err := database.GetDB().Scopes(database.InOrganization(orgID)).First(&child, id).Error; err != nil {
		apierrors.NotFound(c, "Child not found")
		return
	}

	type UpdateChildRequest struct {
		FirstName *string    `json:"first_name"`
		LastName  *string    `json:"last_name"`
		BirthDate *time.Time `json:"birth_date"`
		Gender    *string    `json:"gender"`
		Allergies *string    `json:"allergies"`
		Notes     *string    `json:"notes"`
	}

	var req UpdateChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.FirstName != nil {
		child.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		child.LastName = *req.LastName
	}
	if req.BirthDate != nil {
		child.BirthDate = req.BirthDate
	}
	if req.Gender != nil {
		child.Gender = *req.Gender
	}
	if req.Allergies != nil {
		child.Allergies = *req.Allergies
	}
	if req.Notes != nil {
		child.Notes = *req.Notes
	}

	if err := database.GetDB().Save(&child).Error; err != nil {
		apierrors.InternalError(c, "Failed to update child")
		return
	}

	c.JSON(http.StatusOK, child)
}

// DeleteChild removes a child
func (h *ChildHandler) DeleteChild(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "child ID")
	if !ok {
		return
	}

	result := database.GetDB().Scopes(database.InOrganization(orgID)).Delete(&models.Child{}, id)
	if result.Error != nil {
		apierrors.InternalError(c, "Failed to delete child")
		return
	}
	if result.RowsAffected == 0 {
		apierrors.NotFound(c, "Child not found")
		return
	}

	respondDeleted(c, "Child deleted successfully")
}
