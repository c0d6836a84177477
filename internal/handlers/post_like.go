package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sakurakids/nursery-api/internal/database"
	apierrors "github.com/sakurakids/nursery-api/internal/errors"
	"github.com/sakurakids/nursery-api/internal/models"
	"github.com/sakurakids/nursery-api/internal/utils"
	"gorm.io/gorm/clause"
)

type PostLikeHandler struct{}

func NewPostLikeHandler() *PostLikeHandler {
	return &PostLikeHandler{}
}

// ListLikes returns the likes on a gallery post
func (h *PostLikeHandler) ListLikes(c *gin.Context) {
	gallery, ok := galleryInOrg(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	query := database.GetDB().Model(&models.PostLike{}).Where("gallery_id = ?", gallery.ID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch likes")
		return
	}

	var likes []models.PostLike
	if err := query.
		Scopes(database.Paginate(params)).
		Order("created_at DESC").
		Find(&likes).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch likes")
		return
	}

	respondList(c, likes, params, total)
}

// Like records the session user's like. Liking twice is a no-op.
func (h *PostLikeHandler) Like(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	gallery, ok := galleryInOrg(c)
	if !ok {
		return
	}

	like := models.PostLike{
		GalleryID: gallery.ID,
		UserID:    userID,
	}

	if err := database.GetDB().
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like).Error; err != nil {
		apierrors.InternalError(c, "Failed to like gallery")
		return
	}

	c.JSON(http.StatusOK, like)
}

// Unlike removes the session user's like
func (h *PostLikeHandler) Unlike(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	gallery, ok := galleryInOrg(c)
	if !ok {
		return
	}

	result := database.GetDB().
		Where("gallery_id = ? AND user_id = ?", gallery.ID, userID).
		Delete(&models.PostLike{})
	if result.Error != nil {
		apierrors.InternalError(c, "Failed to unlike gallery")
		return
	}
	if result.RowsAffected == 0 {
		apierrors.NotFound(c, "Like not found")
		return
	}

	respondDeleted(c, "Like removed successfully")
}
