package handlers

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sakurakids/nursery-api/internal/dto"
	apierrors "github.com/sakurakids/nursery-api/internal/errors"
	"github.com/sakurakids/nursery-api/internal/services"
	"github.com/sakurakids/nursery-api/internal/utils"
)

type ClassHandler struct {
	classService *services.ClassService
}

func NewClassHandler(classService *services.ClassService) *ClassHandler {
	return &ClassHandler{
		classService: classService,
	}
}

func classActor(c *gin.Context) (services.Actor, bool) {
	userID, ok := requireUser(c)
	if !ok {
		return services.Actor{}, false
	}
	return services.Actor{
		UserID:         userID,
		OrganizationID: actorOrgID(c),
	}, true
}

// ListClasses returns classes under the caller's nurseries
func (h *ClassHandler) ListClasses(c *gin.Context) {
	actor, ok := classActor(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	classes, total, err := h.classService.ListClasses(actor, params.Page, params.Limit)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch classes")
		return
	}

	respondList(c, dto.ToClassDTOs(classes), params, total)
}

// CreateClass creates a class, resolving the parent nursery when omitted
func (h *ClassHandler) CreateClass(c *gin.Context) {
	actor, ok := classActor(c)
	if !ok {
		return
	}

	type CreateClassRequest struct {
		NurseryID     *uint64  `json:"nursery_id"`
		Name          string   `json:"name" binding:"required"`
		MainTeacherID *uint64  `json:"main_teacher_id"`
		TeacherIDs    []uint64 `json:"teacher_ids"`
		ChildIDs      []uint64 `json:"child_ids"`
	}

	var req CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	class, err := h.classService.CreateClass(actor, services.CreateClassInput{
		NurseryID:     req.NurseryID,
		Name:          req.Name,
		MainTeacherID: req.MainTeacherID,
		TeacherIDs:    req.TeacherIDs,
		ChildIDs:      req.ChildIDs,
	})
	if err != nil {
		respondClassError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToClassDTO(*class))
}

// GetClass returns one class through the ownership join
func (h *ClassHandler) GetClass(c *gin.Context) {
	actor, ok := classActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "class ID")
	if !ok {
		return
	}

	class, err := h.classService.GetClass(actor, id)
	if err != nil {
		respondClassError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToClassDTO(*class))
}

// UpdateClass applies a partial update; a new nursery_id is re-verified
func (h *ClassHandler) UpdateClass(c *gin.Context) {
	actor, ok := classActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "class ID")
	if !ok {
		return
	}

	// Parse raw JSON to detect which fields were sent
	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	// A key that is present but carries the wrong JSON type is an error, not a
	// no-op.
	input := services.UpdateClassInput{}
	if v, ok := rawReq["nursery_id"]; ok {
		id, ok := toID(v)
		if !ok {
			apierrors.BadRequest(c, "Invalid nursery_id")
			return
		}
		input.NurseryID = &id
	}
	if v, ok := rawReq["name"]; ok {
		s, ok := v.(string)
		if !ok {
			apierrors.BadRequest(c, "Invalid name")
			return
		}
		input.Name = &s
	}
	if v, ok := rawReq["main_teacher_id"]; ok {
		if v == nil {
			input.ClearMainTeacher = true
		} else {
			id, ok := toID(v)
			if !ok {
				apierrors.BadRequest(c, "Invalid main_teacher_id")
				return
			}
			input.MainTeacherID = &id
		}
	}
	if v, ok := rawReq["teacher_ids"]; ok {
		ids, ok := toIDs(v)
		if !ok {
			apierrors.BadRequest(c, "Invalid teacher_ids")
			return
		}
		input.TeacherIDs = &ids
	}
	if v, ok := rawReq["child_ids"]; ok {
		ids, ok := toIDs(v)
		if !ok {
			apierrors.BadRequest(c, "Invalid child_ids")
			return
		}
		input.ChildIDs = &ids
	}

	class, err := h.classService.UpdateClass(actor, id, input)
	if err != nil {
		respondClassError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToClassDTO(*class))
}

// DeleteClass removes a class through the ownership join
func (h *ClassHandler) DeleteClass(c *gin.Context) {
	actor, ok := classActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "class ID")
	if !ok {
		return
	}

	if err := h.classService.DeleteClass(actor, id); err != nil {
		respondClassError(c, err)
		return
	}

	respondDeleted(c, "Class deleted successfully")
}

func respondClassError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNurseryNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAmbiguousNursery):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrClassNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}

func toID(v any) (uint64, bool) {
	n, ok := v.(float64)
	if !ok || n < 0 || n != math.Trunc(n) {
		return 0, false
	}
	return uint64(n), true
}

func toIDs(v any) ([]uint64, bool) {
	raw, ok := v.([]any)
	if !ok {
		return nil, false
	}
	ids := make([]uint64, 0, len(raw))
	for _, item := range raw {
		id, ok := toID(item)
		if !ok {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
