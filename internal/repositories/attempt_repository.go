package repositories

import (
	"context"

	"github.com/SAP-F-2025/quiz-scoring-service/internal/models"
)

// AttemptRepository interface for quiz attempt operations
type AttemptRepository interface {
	Create(ctx context.Context, attempt *models.QuizAttempt) error
	GetByAttemptID(ctx context.Context, attemptID string) (*models.QuizAttempt, error)

	// Complete stores the result and moves the attempt to completed. It
	// succeeds at most once per attempt; later calls return ErrAttemptNotStarted.
	Complete(ctx context.Context, attempt *models.QuizAttempt) error

	ListByLearner(ctx context.Context, learnerSession string, filters AttemptFilters) ([]*models.QuizAttempt, int64, error)
	CountCompleted(ctx context.Context, quizID uint, learnerSession string) (int64, error)
}
