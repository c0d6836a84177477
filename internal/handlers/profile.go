package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sakurakids/nursery-api/internal/database"
	apierrors "github.com/sakurakids/nursery-api/internal/errors"
	"github.com/sakurakids/nursery-api/internal/models"
	"gorm.io/gorm"
)

type ProfileHandler struct{}

func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{}
}

// GetOwnProfile returns the caller's profile, creating an empty row on first access
func (h *ProfileHandler) GetOwnProfile(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var profile models.Profile
	err := database.GetDB().Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.Profile{UserID: userID}
		if err := database.GetDB().Create(&profile).Error; err != nil {
			apierrors.InternalError(c, "Failed to create profile")
			return
		}
	} else if err != nil {
		apierrors.InternalError(c, "Failed to fetch profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateOwnProfile applies a partial update to the caller's profile
func (h *ProfileHandler) UpdateOwnProfile(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var profile models.Profile
	err := database.GetDB().Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.Profile{UserID: userID}
	} else if err != nil {
		apierrors.InternalError(c, "Failed to fetch profile")
		return
	}

	type UpdateProfileRequest struct {
		DisplayName *string `json:"display_name"`
		Phone       *string `json:"phone"`
		AvatarURL   *string `json:"avatar_url"`
		Locale      *string `json:"locale"`
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.DisplayName != nil {
		profile.DisplayName = *req.DisplayName
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = *req.AvatarURL
	}
	if req.Locale != nil {
		profile.Locale = *req.Locale
	}

	if err := database.GetDB().Save(&profile).Error; err != nil {
		apierrors.InternalError(c, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetProfile returns another user's profile by user id
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id, ok := pathID(c, "id", "user ID")
	if !ok {
		return
	}

	var profile models.Profile
	if err := database.GetDB().Where("user_id = ?", id).First(&profile).Error; err != nil {
		apierrors.NotFound(c, "Profile not found")
		return
	}

	c.JSON(http.StatusOK, profile)
}
