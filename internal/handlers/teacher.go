package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sakurakids/nursery-api/internal/database"
	apierrors "github.com/sakurakids/nursery-api/internal/errors"
	"github.com/sakurakids/nursery-api/internal/models"
	"github.com/sakurakids/nursery-api/internal/utils"
)

type TeacherHandler struct{}

func NewTeacherHandler() *TeacherHandler {
	return &TeacherHandler{}
}

// ListTeachers returns teachers in the caller's active organization
func (h *TeacherHandler) ListTeachers(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	query := database.GetDB().Model(&models.Teacher{}).Scopes(database.InOrganization(orgID))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch teachers")
		return
	}

	var teachers []models.Teacher
	if err := query.Scopes(database.Paginate(params)).Order("last_name, first_name").Find(&teachers).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch teachers")
		return
	}

	respondList(c, teachers, params, total)
}

// CreateTeacher creates a teacher in the caller's active organization
func (h *TeacherHandler) CreateTeacher(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}

	type CreateTeacherRequest struct {
		UserID    *uint64 `json:"user_id"`
		FirstName string  `json:"first_name" binding:"required"`
		LastName  string  `json:"last_name" binding:"required"`
		Email     string  `json:"email"`
		Phone     string  `json:"phone"`
	}

	var req CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	teacher := models.Teacher{
		OrganizationID: orgID,
		UserID:         req.UserID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
	}

	if err := database.GetDB().Create(&teacher).Error; err != nil {
		apierrors.InternalError(c, "Failed to create teacher")
		return
	}

	c.JSON(http.StatusCreated, teacher)
}

// GetTeacher returns one teacher in the caller's active organization
func (h *TeacherHandler) GetTeacher(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "teacher ID")
	if !ok {
		return
	}

	var teacher models.Teacher
	if err := database.GetDB().Scopes(database.InOrganization(orgID)).First(&teacher, id).Error; err != nil {
		apierrors.NotFound(c, "Teacher not found")
		return
	}

	c.JSON(http.StatusOK, teacher)
}

// UpdateTeacher applies a partial update
func (h *TeacherHandler) UpdateTeacher(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "teacher ID")
	if !ok {
		return
	}

	var teacher models.Teacher
	if err := database.GetDB().Scopes(database.InOrganization(orgID)).First(&teacher, id).Error; err != nil {
		apierrors.NotFound(c, "Teacher not found")
		return
	}

	type UpdateTeacherRequest struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Email     *string `json:"email"`
		Phone     *string `json:"phone"`
	}

	var req UpdateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.FirstName != nil {
		teacher.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		teacher.LastName = *req.LastName
	}
	if req.Email != nil {
		teacher.Email = *req.Email
	}
	if req.Phone != nil {
		teacher.Phone = *req.Phone
	}

	if err := database.GetDB().Save(&teacher).Error; err != nil {
		apierrors.InternalError(c, "Failed to update teacher")
		return
	}

	c.JSON(http.StatusOK, teacher)
}

// DeleteTeacher removes a teacher
func (h *TeacherHandler) DeleteTeacher(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "teacher ID")
	if !ok {
		return
	}

	result := database.GetDB().Scopes(database.InOrganization(orgID)).Delete(&models.Teacher{}, id)
	if result.Error != nil {
		apierrors.InternalError(c, "Failed to delete teacher")
		return
	}
	if result.RowsAffected == 0 {
		apierrors.NotFound(c, "Teacher not found")
		return
	}

	respondDeleted(c, "Teacher deleted successfully")
}
