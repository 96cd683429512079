package repositories

import (
	"errors"
	"time"

	"github.com/SAP-F-2025/quiz-scoring-service/internal/models"
	"gorm.io/gorm"
)

// ErrAttemptNotStarted is returned by Complete when the attempt is missing
// or no longer in the started state.
var ErrAttemptNotStarted = errors.New("attempt is not in started state")

// Repository groups the stores the service layer depends on
type Repository interface {
	Quiz() QuizRepository
	Attempt() AttemptRepository
}

// ===== SHARED FILTER STRUCTS =====

type AttemptFilters struct {
	QuizID    *uint                 `json:"quiz_id"`
	Status    *models.AttemptStatus `json:"status"`
	DateFrom  *time.Time            `json:"date_from"`
	DateTo    *time.Time            `json:"date_to"`
	Limit     int                   `json:"limit"`
	Offset    int                   `json:"offset"`
	SortBy    string                `json:"sort_by"`    // "started_at", "completed_at", "score"
	SortOrder string                `json:"sort_order"` // "asc", "desc"
}

// IsNotFoundError reports whether err means the record does not exist
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
