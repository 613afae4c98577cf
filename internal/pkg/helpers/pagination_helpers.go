package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nvera/donaescuela/internal/app/models/dto"
)

const (
	// DefaultPage is the page used when none is supplied
	DefaultPage = 1
	// DefaultPageSize is the page size used when none is supplied
	DefaultPageSize = 20
	// MaxPageSize caps the page size a client may request
	MaxPageSize = 100
)

// ParsePaginationParams extracts and sanitizes page/pageSize query parameters
func ParsePaginationParams(c *gin.Context) (page, pageSize int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	pageSize, err = strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(DefaultPageSize)))
	if err != nil || pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return page, pageSize
}

// CalculateOffsetLimit converts page/pageSize to SQL offset/limit
func CalculateOffsetLimit(page, pageSize int) (offset, limit uint64) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return uint64((page - 1) * pageSize), uint64(pageSize)
}

// NewPaginationInfo builds pagination metadata for a paginated response
func NewPaginationInfo(page, pageSize int, totalItems int64) dto.PaginationInfo {
	totalPages := int(totalItems) / pageSize
	if int(totalItems)%pageSize != 0 {
		totalPages++
	}
	if totalPages == 0 {
		totalPages = 1
	}

	return dto.PaginationInfo{
		CurrentPage: page,
		PageSize:    pageSize,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
	}
}
