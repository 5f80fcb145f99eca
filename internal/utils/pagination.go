// internal/utils/pagination.go
package utils

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// CatalogPageSize is the number of products the open-market API returns per page.
const CatalogPageSize = 15

type PaginationParams struct {
	Page   int    `json:"page"`
	Search string `json:"search"`
}

type PaginationResult struct {
	Page       int         `json:"page"`
	Total      int64       `json:"total"`
	TotalPages int         `json:"total_pages"`
	HasNext    bool        `json:"has_next"`
	HasPrev    bool        `json:"has_prev"`
	Data       interface{} `json:"data"`
}

func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	return PaginationParams{
		Page:   page,
		Search: strings.TrimSpace(c.Query("search")),
	}
}

func CreatePaginationResult(data interface{}, total int64, page int, hasNext, hasPrev bool) PaginationResult {
	totalPages := int(math.Ceil(float64(total) / float64(CatalogPageSize)))
	if totalPages < page && (hasNext || total > 0) {
		totalPages = page
	}

	return PaginationResult{
		Page:       page,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    hasNext,
		HasPrev:    hasPrev,
		Data:       data,
	}
}

func SetPaginationHeaders(c *gin.Context, result PaginationResult) {
	c.Header("X-Total-Count", strconv.FormatInt(result.Total, 10))
	c.Header("X-Page", strconv.Itoa(result.Page))
	c.Header("X-Per-Page", strconv.Itoa(CatalogPageSize))
	c.Header("X-Total-Pages", strconv.Itoa(result.TotalPages))
}
