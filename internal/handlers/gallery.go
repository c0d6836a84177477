package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sakurakids/nursery-api/internal/database"
	apierrors "github.com/sakurakids/nursery-api/internal/errors"
	"github.com/sakurakids/nursery-api/internal/models"
	"github.com/sakurakids/nursery-api/internal/utils"
)

type GalleryHandler struct{}

func NewGalleryHandler() *GalleryHandler {
	return &GalleryHandler{}
}

// ListGalleries returns gallery posts in the caller's active organization
func (h *GalleryHandler) ListGalleries(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	query := database.GetDB().Model(&models.Gallery{}).Scopes(database.InOrganization(orgID))
	if galleryType := c.Query("type"); galleryType != "" {
		query = query.Where("type = ?", galleryType)
	}
	if childID := c.Query("child_id"); childID != "" {
		query = query.Where("child_id = ?", childID)
	}
	if classID := c.Query("class_id"); classID != "" {
		query = query.Where("class_id = ?", classID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch galleries")
		return
	}

	var galleries []models.Gallery
	if err := query.
		Scopes(database.Paginate(params)).
		Order("created_at DESC").
		Find(&galleries).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch galleries")
		return
	}

	respondList(c, galleries, params, total)
}

// CreateGallery creates a gallery post; images are uploaded elsewhere and
// arrive as URLs
func (h *GalleryHandler) CreateGallery(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}

	type CreateGalleryRequest struct {
		Title   string             `json:"title"`
		Type    models.GalleryType `json:"type" binding:"required"`
		Images  []string           `json:"images" binding:"required"`
		ChildID *uint64            `json:"child_id"`
		ClassID *uint64            `json:"class_id"`
		EventID *uint64            `json:"event_id"`
	}

	var req CreateGalleryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	switch req.Type {
	case models.GalleryTypeChild, models.GalleryTypeClass, models.GalleryTypeEvent:
	default:
		apierrors.BadRequest(c, "Invalid gallery type")
		return
	}

	gallery := models.Gallery{
		OrganizationID: orgID,
		CreatedBy:      userID,
		Title:          req.Title,
		Type:           req.Type,
		Images:         req.Images,
		ChildID:        req.ChildID,
		ClassID:        req.ClassID,
		EventID:        req.EventID,
	}

	if err := database.GetDB().Create(&gallery).Error; err != nil {
		apierrors.InternalError(c, "Failed to create gallery")
		return
	}

	c.JSON(http.StatusCreated, gallery)
}

// GetGallery returns one gallery post
func (h *GalleryHandler) GetGallery(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "gallery_id", "gallery ID")
	if !ok {
		return
	}

	var gallery models.Gallery
	if err := database.GetDB().
		Scopes(database.InOrganization(orgID)).
		Preload("Comments").
		Preload("Likes").
		First(&gallery, id).Error; err != nil {
		apierrors.NotFound(c, "Gallery not found")
		return
	}

	c.JSON(http.StatusOK, gallery)
}

// UpdateGallery applies a partial update by the post's creator
func (h *GalleryHandler) UpdateGallery(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "gallery_id", "gallery ID")
	if !ok {
		return
	}

	var gallery models.Gallery
	if err := database.GetDB().Scopes(database.InOrganization(orgID)).First(&gallery, id).Error; err != nil {
		apierrors.NotFound(c, "Gallery not found")
		return
	}

	if gallery.CreatedBy != userID {
		apierrors.Forbidden(c, "Only the creator can update this gallery")
		return
	}

	type UpdateGalleryRequest struct {
		Title  *string   `json:"title"`
		Images *[]string `json:"images"`
	}

	var req UpdateGalleryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Title != nil {
		gallery.Title = *req.Title
	}
	if req.Images != nil {
		gallery.Images = *req.Images
	}

	if err := database.GetDB().Save(&gallery).Error; err != nil {
		apierrors.InternalError(c, "Failed to update gallery")
		return
	}

	c.JSON(http.StatusOK, gallery)
}

// DeleteGallery removes a gallery post with its comments and likes
func (h *GalleryHandler) DeleteGallery(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "gallery_id", "gallery ID")
	if !ok {
		return
	}

	var gallery models.Gallery
	if err := database.GetDB().Scopes(database.InOrganization(orgID)).First(&gallery, id).Error; err != nil {
		apierrors.NotFound(c, "Gallery not found")
		return
	}

	if gallery.CreatedBy != userID {
		apierrors.Forbidden(c, "Only the creator can delete this gallery")
		return
	}

	if err := database.GetDB().Where("gallery_id = ?", gallery.ID).Delete(&models.Comment{}).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete gallery comments")
		return
	}
	if err := database.GetDB().Where("gallery_id = ?", gallery.ID).Delete(&models.PostLike{}).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete gallery likes")
		return
	}
	if err := database.GetDB().Delete(&gallery).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete gallery")
		return
	}

	respondDeleted(c, "Gallery deleted successfully")
}
