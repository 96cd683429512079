package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/models"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func completedAttempt() *models.QuizAttempt {
	now := time.Now()
	return &models.QuizAttempt{
		AttemptID:      "att-1",
		CompletedAt:    &now,
		Score:          50,
		TotalPoints:    4,
		EarnedPoints:   2,
		CorrectAnswers: 1,
		TotalQuestions: 2,
	}
}

func TestAttemptPostgreSQL_Complete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAttemptPostgreSQL(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "quiz_attempts" SET .* WHERE \(attempt_id = \$\d+ AND status = \$\d+\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	attempt := completedAttempt()
	require.NoError(t, repo.Complete(context.Background(), attempt))
	assert.Equal(t, models.AttemptStatusCompleted, attempt.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttemptPostgreSQL_CompleteTwice(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAttemptPostgreSQL(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "quiz_attempts"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	attempt := completedAttempt()
	err := repo.Complete(context.Background(), attempt)
	assert.ErrorIs(t, err, repositories.ErrAttemptNotStarted)
	assert.Empty(t, attempt.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttemptPostgreSQL_GetByAttemptIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAttemptPostgreSQL(db)

	mock.ExpectQuery(`SELECT \* FROM "quiz_attempts" WHERE attempt_id = \$1`).
		WithArgs("missing", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "attempt_id"}))

	attempt, err := repo.GetByAttemptID(context.Background(), "missing")
	assert.Nil(t, attempt)
	assert.True(t, repositories.IsNotFoundError(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttemptPostgreSQL_CountCompleted(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAttemptPostgreSQL(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "quiz_attempts"`).
		WithArgs(uint(7), "learner-1", models.AttemptStatusCompleted).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountCompleted(context.Background(), 7, "learner-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttemptPostgreSQL_ListByLearner(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAttemptPostgreSQL(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "quiz_attempts" WHERE learner_session = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT .* FROM "quiz_attempts" WHERE learner_session = \$1 ORDER BY score ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "attempt_id", "score"}).
			AddRow(1, "att-1", 40.0).
			AddRow(2, "att-2", 90.0))

	attempts, total, err := repo.ListByLearner(context.Background(), "learner-1", repositories.AttemptFilters{
		Limit:     2,
		SortBy:    "score",
		SortOrder: "asc",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, attempts, 2)
	assert.Equal(t, "att-1", attempts[0].AttemptID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
