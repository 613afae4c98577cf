package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestParsePaginationParams(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantPage     int
		wantPageSize int
	}{
		{"defaults", "", DefaultPage, DefaultPageSize},
		{"explicit values", "page=3&pageSize=50", 3, 50},
		{"zero page falls back", "page=0", DefaultPage, DefaultPageSize},
		{"negative page falls back", "page=-2", DefaultPage, DefaultPageSize},
		{"page size capped", "pageSize=500", DefaultPage, MaxPageSize},
		{"garbage input falls back", "page=abc&pageSize=xyz", DefaultPage, DefaultPageSize},
	}

	gin.SetMode(gin.TestMode)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/?"+tt.query, nil)

			page, pageSize := ParsePaginationParams(c)
			if page != tt.wantPage || pageSize != tt.wantPageSize {
				t.Errorf("ParsePaginationParams(%q) = (%d, %d), want (%d, %d)",
					tt.query, page, pageSize, tt.wantPage, tt.wantPageSize)
			}
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(2, 20, 45)

	if info.CurrentPage != 2 {
		t.Errorf("expected current page 2, got %d", info.CurrentPage)
	}
	if info.TotalPages != 3 {
		t.Errorf("expected 3 total pages for 45 items of 20, got %d", info.TotalPages)
	}
	if info.TotalItems != 45 {
		t.Errorf("expected 45 total items, got %d", info.TotalItems)
	}
}

func TestCalculateOffsetLimit(t *testing.T) {
	offset, limit := CalculateOffsetLimit(3, 20)
	if offset != 40 || limit != 20 {
		t.Errorf("CalculateOffsetLimit(3, 20) = (%d, %d), want (40, 20)", offset, limit)
	}
}
