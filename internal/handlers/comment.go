package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sakurakids/nursery-api/internal/database"
	apierrors "github.com/sakurakids/nursery-api/internal/errors"
	"github.com/sakurakids/nursery-api/internal/models"
	"github.com/sakurakids/nursery-api/internal/utils"
)

type CommentHandler struct{}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{}
}

// galleryInOrg loads a gallery scoped to the active organization, answering
// 404 when it does not exist or belongs to another tenant.
func galleryInOrg(c *gin.Context) (*models.Gallery, bool) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return nil, false
	}
	galleryID, ok := pathID(c, "gallery_id", "gallery ID")
	if !ok {
		return nil, false
	}

	var gallery models.Gallery
	if err := database.GetDB().
		Scopes(database.InOrganization(orgID)).
		First(&gallery, galleryID).Error; err != nil {
		apierrors.NotFound(c, "Gallery not found")
		return nil, false
	}
	return &gallery, true
}

// ListComments returns comments on a gallery post, oldest first
func (h *CommentHandler) ListComments(c *gin.Context) {
	gallery, ok := galleryInOrg(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	query := database.GetDB().Model(&models.Comment{}).Where("gallery_id = ?", gallery.ID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch comments")
		return
	}

	var comments []models.Comment
	if err := query.
		Scopes(database.Paginate(params)).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch comments")
		return
	}

	respondList(c, comments, params, total)
}

// CreateComment posts a comment as the session user
func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	gallery, ok := galleryInOrg(c)
	if !ok {
		return
	}

	type CreateCommentRequest struct {
		Body string `json:"body" binding:"required"`
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Comment body is required")
		return
	}

	comment := models.Comment{
		GalleryID: gallery.ID,
		AuthorID:  userID,
		Body:      req.Body,
	}

	if err := database.GetDB().Create(&comment).Error; err != nil {
		apierrors.InternalError(c, "Failed to create comment")
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// GetComment returns one comment on a gallery post
func (h *CommentHandler) GetComment(c *gin.Context) {
	gallery, ok := galleryInOrg(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "comment ID")
	if !ok {
		return
	}

	var comment models.Comment
	if err := database.GetDB().
		Where("id = ? AND gallery_id = ?", id, gallery.ID).
		First(&comment).Error; err != nil {
		apierrors.NotFound(c, "Comment not found")
		return
	}

	c.JSON(http.StatusOK, comment)
}

// UpdateComment edits a comment's body; only the author may edit
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	gallery, ok := galleryInOrg(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "comment ID")
	if !ok {
		return
	}

	var comment models.Comment
	if err := database.GetDB().
		Where("id = ? AND gallery_id = ?", id, gallery.ID).
		First(&comment).Error; err != nil {
		apierrors.NotFound(c, "Comment not found")
		return
	}

	if comment.AuthorID != userID {
		apierrors.Forbidden(c, "Only the author can edit this comment")
		return
	}

	type UpdateCommentRequest struct {
		Body string `json:"body" binding:"required"`
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Comment body is required")
		return
	}

	comment.Body = req.Body
	if err := database.GetDB().Save(&comment).Error; err != nil {
		apierrors.InternalError(c, "Failed to update comment")
		return
	}

	c.JSON(http.StatusOK, comment)
}

// DeleteComment removes a comment; the author or the post creator may delete
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	gallery, ok := galleryInOrg(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "comment ID")
	if !ok {
		return
	}

	var comment models.Comment
	if err := database.GetDB().
		Where("id = ? AND gallery_id = ?", id, gallery.ID).
		First(&comment).Error; err != nil {
		apierrors.NotFound(c, "Comment not found")
		return
	}

	if comment.AuthorID != userID && gallery.CreatedBy != userID {
		apierrors.Forbidden(c, "Not allowed to delete this comment")
		return
	}

	if err := database.GetDB().Delete(&comment).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete comment")
		return
	}

	respondDeleted(c, "Comment deleted successfully")
}
