package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sakurakids/nursery-api/internal/constants"
	"github.com/sakurakids/nursery-api/internal/database"
	"github.com/sakurakids/nursery-api/internal/dto"
	apierrors "github.com/sakurakids/nursery-api/internal/errors"
	"github.com/sakurakids/nursery-api/internal/middleware"
	"github.com/sakurakids/nursery-api/internal/models"
	"gorm.io/datatypes"
)

type OrganizationHandler struct{}

func NewOrganizationHandler() *OrganizationHandler {
	return &OrganizationHandler{}
}

// CreateOrganization creates a new organization with the caller as owner
func (h *OrganizationHandler) CreateOrganization(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	type CreateOrgRequest struct {
		Name     string         `json:"name" binding:"required"`
		Metadata map[string]any `json:"metadata"`
	}

	var req CreateOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	org := models.Organization{
		Name:     req.Name,
		Metadata: datatypes.JSONMap(req.Metadata),
	}

	if err := database.GetDB().Create(&org).Error; err != nil {
		apierrors.InternalError(c, "Failed to create organization")
		return
	}

	member := models.OrganizationMember{
		OrganizationID: org.ID,
		UserID:         userID,
		Role:           models.RoleOwner,
		JoinedAt:       time.Now(),
	}

	if err := database.GetDB().Create(&member).Error; err != nil {
		apierrors.InternalError(c, "Failed to add user to organization")
		return
	}

	c.JSON(http.StatusCreated, org)
}

// ListOrganizations returns all organizations the user is a member of
func (h *OrganizationHandler) ListOrganizations(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var memberships []models.OrganizationMember
	if err := database.GetDB().
		Preload("Organization").
		Where("user_id = ?", userID).
		Find(&memberships).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch organizations")
		return
	}

	orgsWithRole := make([]dto.OrganizationWithRoleDTO, len(memberships))
	for i, m := range memberships {
		orgsWithRole[i] = dto.ToOrganizationWithRoleDTO(m)
	}

	c.JSON(http.StatusOK, gin.H{
		"organizations": orgsWithRole,
	})
}

// GetOrganization returns organization details
func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	// Organization is already loaded by RequireOrganizationAccess middleware
	orgInterface, _ := c.Get(constants.ContextKeyOrganization)
	org := orgInterface.(models.Organization)

	memberInterface, _ := c.Get(constants.ContextKeyOrganizationRole)
	member := memberInterface.(models.OrganizationMember)

	var members []models.OrganizationMember
	database.GetDB().
		Preload("User").
		Where("organization_id = ?", org.ID).
		Find(&members)

	c.JSON(http.StatusOK, gin.H{
		"organization": org,
		"members":      members,
		"your_role":    member.Role,
	})
}

// UpdateOrganization updates organization name and metadata
func (h *OrganizationHandler) UpdateOrganization(c *gin.Context) {
	orgInterface, exists := c.Get(constants.ContextKeyOrganization)
	if !exists {
		apierrors.InternalError(c, "Organization not found in context")
		return
	}

	org, okCast := orgInterface.(models.Organization)
	if !okCast {
		apierrors.InternalError(c, "Failed to get organization")
		return
	}

	type UpdateOrgRequest struct {
		Name     *string        `json:"name"`
		Metadata map[string]any `json:"metadata"`
	}

	var req UpdateOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Name != nil {
		org.Name = *req.Name
	}
	if req.Metadata != nil {
		org.Metadata = datatypes.JSONMap(req.Metadata)
	}

	if err := database.GetDB().Save(&org).Error; err != nil {
		apierrors.InternalError(c, "Failed to update organization")
		return
	}

	c.JSON(http.StatusOK, org)
}

// DeleteOrganization deletes an organization and its memberships
func (h *OrganizationHandler) DeleteOrganization(c *gin.Context) {
	orgInterface, _ := c.Get(constants.ContextKeyOrganization)
	org := orgInterface.(models.Organization)

	if err := database.GetDB().Where("organization_id = ?", org.ID).Delete(&models.OrganizationMember{}).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete organization members")
		return
	}

	if err := database.GetDB().Delete(&org).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete organization")
		return
	}

	respondDeleted(c, "Organization deleted successfully")
}

// ActivateOrganization stores the organization as the session's active tenant
func (h *OrganizationHandler) ActivateOrganization(c *gin.Context) {
	orgInterface, _ := c.Get(constants.ContextKeyOrganization)
	org := orgInterface.(models.Organization)

	session := sessions.Default(c)
	session.Set(constants.ContextKeyActiveOrgID, org.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":                "Organization activated",
		"active_organization_id": org.ID,
	})
}

// RemoveMember removes a member from the organization
func (h *OrganizationHandler) RemoveMember(c *gin.Context) {
	orgInterface, _ := c.Get(constants.ContextKeyOrganization)
	org := orgInterface.(models.Organization)

	targetUserID, ok := pathID(c, "user_id", "user ID")
	if !ok {
		return
	}

	currentUserID, _ := middleware.GetUserID(c)
	if targetUserID == currentUserID {
		apierrors.BadRequest(c, "Cannot remove yourself")
		return
	}

	result := database.GetDB().
		Where("organization_id = ? AND user_id = ?", org.ID, targetUserID).
		Delete(&models.OrganizationMember{})
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
