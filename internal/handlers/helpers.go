package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/sakurakids/nursery-api/internal/errors"
	"github.com/sakurakids/nursery-api/internal/middleware"
	"github.com/sakurakids/nursery-api/internal/utils"
)

// ListResponse is the envelope every list endpoint answers with.
type ListResponse struct {
	Data any                  `json:"data"`
	Meta utils.PaginationMeta `json:"meta"`
}

func respondList(c *gin.Context, data any, params utils.PaginationParams, total int64) {
	c.JSON(http.StatusOK, ListResponse{
		Data: data,
		Meta: utils.NewPaginationMeta(params, total),
	})
}

func respondDeleted(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// requireUser reads the session user or answers 401.
func requireUser(c *gin.Context) (uint64, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return 0, false
	}
	return userID, true
}

// requireActiveOrg reads the active organization or answers 400. Tenant-scoped
// resources cannot be addressed without one.
func requireActiveOrg(c *gin.Context) (uint64, bool) {
	orgID, exists := middleware.GetActiveOrganizationID(c)
	if !exists {
		apierrors.BadRequest(c, "No active organization")
		return 0, false
	}
	return orgID, true
}

// parseID parses a numeric id from a query string value.
func parseID(raw string) (uint64, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// pathID parses a numeric path parameter or answers 400.
func pathID(c *gin.Context, param, label string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+label)
		return 0, false
	}
	return id, true
}
