package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sakurakids/nursery-api/internal/database"
	apierrors "github.com/sakurakids/nursery-api/internal/errors"
	"github.com/sakurakids/nursery-api/internal/models"
	"github.com/sakurakids/nursery-api/internal/utils"
	"gorm.io/datatypes"
)

type IntegrationHandler struct{}

func NewIntegrationHandler() *IntegrationHandler {
	return &IntegrationHandler{}
}

// ListIntegrations returns the active organization's integrations
func (h *IntegrationHandler) ListIntegrations(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	query := database.GetDB().Model(&models.Integration{}).Scopes(database.InOrganization(orgID))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch integrations")
		return
	}

	var integrations []models.Integration
	if err := query.
		Scopes(database.Paginate(params)).
		Order("created_at DESC").
		Find(&integrations).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch integrations")
		return
	}

	respondList(c, integrations, params, total)
}

// CreateIntegration registers an external provider. The secret is generated
// server side and shown in the response.
func (h *IntegrationHandler) CreateIntegration(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}

	type CreateIntegrationRequest struct {
		Provider string            `json:"provider" binding:"required"`
		Settings datatypes.JSONMap `json:"settings"`
	}

	var req CreateIntegrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Provider is required")
		return
	}

	secret, err := utils.GenerateSecret()
	if err != nil {
		apierrors.InternalError(c, "Failed to generate secret")
		return
	}

	integration := models.Integration{
		OrganizationID: orgID,
		Provider:       req.Provider,
		Settings:       req.Settings,
		Secret:         secret,
		Enabled:        true,
	}

	if err := database.GetDB().Create(&integration).Error; err != nil {
		apierrors.InternalError(c, "Failed to create integration")
		return
	}

	c.JSON(http.StatusCreated, integration)
}

// GetIntegration returns one integration
func (h *IntegrationHandler) GetIntegration(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "integration ID")
	if !ok {
		return
	}

	var integration models.Integration
	if err := database.GetDB().Scopes(database.InOrganization(orgID)).First(&integration, id).Error; err != nil {
		apierrors.NotFound(c, "Integration not found")
		return
	}

	c.JSON(http.StatusOK, integration)
}

// UpdateIntegration applies a partial update; the secret never changes here
func (h *IntegrationHandler) UpdateIntegration(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "integration ID")
	if !ok {
		return
	}

	var integration models.Integration
	if err := database.GetDB().Scopes(database.InOrganization(orgID)).First(&integration, id).Error; err != nil {
		apierrors.NotFound(c, "Integration not found")
		return
	}

	type UpdateIntegrationRequest struct {
		Provider *string            `json:"provider"`
		Settings *datatypes.JSONMap `json:"settings"`
		Enabled  *bool              `json:"enabled"`
	}

	var req UpdateIntegrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Provider != nil {
		integration.Provider = *req.Provider
	}
	if req.Settings != nil {
		integration.Settings = *req.Settings
	}
	if req.Enabled != nil {
		integration.Enabled = *req.Enabled
	}

	if err := database.GetDB().Save(&integration).Error; err != nil {
		apierrors.InternalError(c, "Failed to update integration")
		return
	}

	c.JSON(http.StatusOK, integration)
}

// RegenerateSecret replaces the integration secret; the old one stops working
// immediately
func (h *IntegrationHandler) RegenerateSecret(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "integration ID")
	if !ok {
		return
	}

	var integration models.Integration
	if err := database.GetDB().Scopes(database.InOrganization(orgID)).First(&integration, id).Error; err != nil {
		apierrors.NotFound(c, "Integration not found")
		return
	}

	secret, err := utils.GenerateSecret()
	if err != nil {
		apierrors.InternalError(c, "Failed to generate secret")
		return
	}

	integration.Secret = secret
	if err := database.GetDB().Save(&integration).Error; err != nil {
		apierrors.InternalError(c, "Failed to regenerate secret")
		return
	}

	c.JSON(http.StatusOK, integration)
}

// DeleteIntegration removes an integration
func (h *IntegrationHandler) DeleteIntegration(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "integration ID")
	if !ok {
		return
	}

	result := database.GetDB().
		Scopes(database.InOrganization(orgID)).
		Delete(&models.Integration{}, id)
	if result.Error != nil {
		apierrors.InternalError(c, "Failed to delete integration")
		return
	}
	if result.RowsAffected == 0 {
		apierrors.NotFound(c, "Integration not found")
		return
	}

	respondDeleted(c, "Integration deleted successfully")
}
