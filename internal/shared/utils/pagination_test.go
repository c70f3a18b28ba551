package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		want     Pagination
	}{
		{"defaults", 0, 0, Pagination{Page: 1, PageSize: DefaultPageSize}},
		{"negative", -3, -1, Pagination{Page: 1, PageSize: DefaultPageSize}},
		{"capped", 2, 500, Pagination{Page: 2, PageSize: MaxPageSize}},
		{"passthrough", 3, 15, Pagination{Page: 3, PageSize: 15}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidatePagination(tt.page, tt.pageSize))
		})
	}
}

func TestPagination_Offset(t *testing.T) {
	assert.Equal(t, 0, Pagination{Page: 1, PageSize: 20}.Offset())
	assert.Equal(t, 40, Pagination{Page: 3, PageSize: 20}.Offset())
}

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/claims?page=2&page_size=abc", nil)

	p := ParsePagination(c)

	assert.Equal(t, 2, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 20))
	assert.Equal(t, 1, TotalPages(20, 20))
	assert.Equal(t, 2, TotalPages(21, 20))
	assert.Equal(t, 1, TotalPages(5, 0))
}
