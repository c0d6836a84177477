package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sakurakids/nursery-api/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// PaginationMeta is the metadata block attached to every list response.
type PaginationMeta struct {
	TotalCount  int64 `json:"total_count"`
	Limit       int   `json:"limit"`
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
}

// GetPaginationParams extracts and validates pagination parameters from the request
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.MinPage)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultPageSize)))

	if page < constants.MinPage {
		page = constants.MinPage
	}
	if limit < 1 || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	offset := (page - 1) * limit

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: offset,
	}
}

// NewPaginationMeta computes metadata from a server-side total.
func NewPaginationMeta(params PaginationParams, total int64) PaginationMeta {
	totalPages := int(total) / params.Limit
	if int(total)%params.Limit > 0 {
		totalPages++
	}

	return PaginationMeta{
		TotalCount:  total,
		Limit:       params.Limit,
		CurrentPage: params.Page,
		TotalPages:  totalPages,
	}
}
