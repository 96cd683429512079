package postgres

import (
	"fmt"

	"github.com/SAP-F-2025/quiz-scoring-service/internal/repositories"
	"gorm.io/gorm"
)

var attemptSortColumns = map[string]string{
	"started_at":   "started_at",
	"completed_at": "completed_at",
	"score":        "score",
}

const defaultAttemptSort = "started_at"

// SharedHelpers holds query helpers reused across repositories
type SharedHelpers struct {
	db *gorm.DB
}

func NewSharedHelpers(db *gorm.DB) *SharedHelpers {
	return &SharedHelpers{db: db}
}

// ApplyAttemptFilters narrows an attempt query by the non-nil filters
func (h *SharedHelpers) ApplyAttemptFilters(query *gorm.DB, filters repositories.AttemptFilters) *gorm.DB {
	if filters.QuizID != nil {
		query = query.Where("quiz_id = ?", *filters.QuizID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.DateFrom != nil {
		query = query.Where("started_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("started_at <= ?", *filters.DateTo)
	}
	return query
}

// ApplyPaginationAndSort orders by a whitelisted column and pages the query.
// Unknown sort columns fall back to started_at.
func (h *SharedHelpers) ApplyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, limit, offset int) *gorm.DB {
	column, ok := attemptSortColumns[sortBy]
	if !ok {
		column = defaultAttemptSort
	}
	order := "DESC"
	if sortOrder == "asc" {
		order = "ASC"
	}
	query = query.Order(fmt.Sprintf("%s %s", column, order))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}
