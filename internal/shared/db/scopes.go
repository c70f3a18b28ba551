package db

import (
	"strings"

	"gorm.io/gorm"
)

// Paginate limits a query to one page. Non-positive values disable paging.
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 || pageSize < 1 {
			return db
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}

// OrderBy applies an ORDER BY restricted to the allowed column map
// (API field name to column). Unknown fields fall back to fallback.
func OrderBy(field, order string, allowed map[string]string, fallback string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		column, ok := allowed[field]
		if !ok {
			column = fallback
		}
		direction := "DESC"
		if strings.EqualFold(order, "asc") {
			direction = "ASC"
		}
		return db.Order(column + " " + direction)
	}
}
