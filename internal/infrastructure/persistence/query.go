package persistence

import (
	"fmt"

	"gorm.io/gorm"
)

// paginate applies limit and offset when set
func paginate(q *gorm.DB, limit, offset int) *gorm.DB {
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	return q
}

// orderBy sorts by a column already checked by query validation
func orderBy(q *gorm.DB, column, direction string) *gorm.DB {
	if column == "" {
		return q
	}
	if direction == "" {
		direction = "asc"
	}
	return q.Order(fmt.Sprintf("%s %s", column, direction))
}
