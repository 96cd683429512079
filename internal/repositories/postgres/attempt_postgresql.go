package postgres

import (
	"context"

	"github.com/SAP-F-2025/quiz-scoring-service/internal/models"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/repositories"
	"gorm.io/gorm"
)

type AttemptPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewAttemptPostgreSQL(db *gorm.DB) repositories.AttemptRepository {
	return &AttemptPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (a AttemptPostgreSQL) Create(ctx context.Context, attempt *models.QuizAttempt) error {
	return a.db.WithContext(ctx).Create(attempt).Error
}

func (a AttemptPostgreSQL) GetByAttemptID(ctx context.Context, attemptID string) (*models.QuizAttempt, error) {
	var attempt models.QuizAttempt
	if err := a.db.WithContext(ctx).
		Where("attempt_id = ?", attemptID).
		First(&attempt).Error; err != nil {
		return nil, err
	}

	return &attempt, nil
}

// Complete only matches rows still in the started state, so a concurrent
// second submission updates nothing.
func (a AttemptPostgreSQL) Complete(ctx context.Context, attempt *models.QuizAttempt) error {
	result := a.db.WithContext(ctx).
		Model(&models.QuizAttempt{}).
		Where("attempt_id = ? AND status = ?", attempt.AttemptID, models.AttemptStatusStarted).
		Updates(map[string]interface{}{
			"status":          models.AttemptStatusCompleted,
			"completed_at":    attempt.CompletedAt,
			"score":           attempt.Score,
			"total_points":    attempt.TotalPoints,
			"earned_points":   attempt.EarnedPoints,
			"correct_answers": attempt.CorrectAnswers,
			"total_questions": attempt.TotalQuestions,
			"passed":          attempt.Passed,
			"answers":         attempt.Answers,
			"details":         attempt.Details,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repositories.ErrAttemptNotStarted
	}

	attempt.Status = models.AttemptStatusCompleted
	return nil
}

func (a AttemptPostgreSQL) ListByLearner(ctx context.Context, learnerSession string, filters repositories.AttemptFilters) ([]*models.QuizAttempt, int64, error) {
	var attempts []*models.QuizAttempt
	var total int64

	// apply filter first
	query := a.db.WithContext(ctx).Model(&models.QuizAttempt{}).Where("learner_session = ?", learnerSession)
	query = a.helpers.ApplyAttemptFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// then apply pagination and sorting
	query = a.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	if err := query.Find(&attempts).Error; err != nil {
		return nil, 0, err
	}

	return attempts, total, nil
}

func (a AttemptPostgreSQL) CountCompleted(ctx context.Context, quizID uint, learnerSession string) (int64, error) {
	var count int64
	if err := a.db.WithContext(ctx).
		Model(&models.QuizAttempt{}).
		Where("quiz_id = ? AND learner_session = ? AND status = ?", quizID, learnerSession, models.AttemptStatusCompleted).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
