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

type TaskHandler struct{}

func NewTaskHandler() *TaskHandler {
	return &TaskHandler{}
}

// ListTasks returns staff tasks in the active organization
func (h *TaskHandler) ListTasks(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	query := database.GetDB().Model(&models.Task{}).Scopes(database.InOrganization(orgID))
	if status := c.Query("status"); status != "" {
		switch models.TaskStatus(status) {
		case models.TaskStatusTodo, models.TaskStatusDone:
			query = query.Where("status = ?", status)
		default:
			apierrors.BadRequest(c, "Invalid task status")
			return
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	var tasks []models.Task
	if err := query.
		Scopes(database.Paginate(params)).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	respondList(c, tasks, params, total)
}

// CreateTask creates a task owned by the session user
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}

	type CreateTaskRequest struct {
		Title       string     `json:"title" binding:"required"`
		Description string     `json:"description"`
		DueDate     *time.Time `json:"due_date"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Task title is required")
		return
	}

	task := models.Task{
		OrganizationID: orgID,
		CreatorID:      userID,
		Title:          req.Title,
		Description:    req.Description,
		Status:         models.TaskStatusTodo,
		DueDate:        req.DueDate,
	}

	if err := database.GetDB().Create(&task).Error; err != nil {
		apierrors.InternalError(c, "Failed to create task")
		return
	}

	c.JSON(http.StatusCreated, task)
}

// GetTask returns one task
func (h *TaskHandler) GetTask(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "task ID")
	if !ok {
		return
	}

	var task models.Task
	if err := database.GetDB().Scopes(database.InOrganization(orgID)).First(&task, id).Error; err != nil {
		apierrors.NotFound(c, "Task not found")
		return
	}

	c.JSON(http.StatusOK, task)
}

// UpdateTask applies a partial update, including status transitions
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "task ID")
	if !ok {
		return
	}

	var task models.Task
	if err := database.GetDB().Scopes(database.InOrganization(orgID)).First(&task, id).Error; err != nil {
		apierrors.NotFound(c, "Task not found")
		return
	}

	type UpdateTaskRequest struct {
		Title       *string            `json:"title"`
		Description *string            `json:"description"`
		Status      *models.TaskStatus `json:"status"`
		DueDate     *time.Time         `json:"due_date"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		switch *req.Status {
		case models.TaskStatusTodo, models.TaskStatusDone:
			task.Status = *req.Status
		default:
			apierrors.BadRequest(c, "Invalid task status")
			return
		}
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}

	if err := database.GetDB().Save(&task).Error; err != nil {
		apierrors.InternalError(c, "Failed to update task")
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask removes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	orgID, ok := requireActiveOrg(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "task ID")
	if !ok {
		return
	}

	result := database.GetDB().
		Scopes(database.InOrganization(orgID)).
		Delete(&models.Task{}, id)
	if result.Error != nil {
		apierrors.InternalError(c, "Failed to delete task")
		return
	}
	if result.RowsAffected == 0 {
		apierrors.NotFound(c, "Task not found")
		return
	}

	respondDeleted(c, "Task deleted successfully")
}
