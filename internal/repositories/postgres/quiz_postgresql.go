package postgres

import (
	"context"

	"github.com/SAP-F-2025/quiz-scoring-service/internal/models"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/repositories"
	"gorm.io/gorm"
)

type QuizPostgreSQL struct {
	db *gorm.DB
}

func NewQuizPostgreSQL(db *gorm.DB) repositories.QuizRepository {
	return &QuizPostgreSQL{db: db}
}

func (q *QuizPostgreSQL) Create(ctx context.Context, quiz *models.Quiz) error {
	return q.db.WithContext(ctx).Create(quiz).Error
}

func (q *QuizPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := q.db.WithContext(ctx).First(&quiz, id).Error; err != nil {
		return nil, err
	}

	return &quiz, nil
}

func (q *QuizPostgreSQL) Update(ctx context.Context, quiz *models.Quiz) error {
	return q.db.WithContext(ctx).Save(quiz).Error
}
