package postgres

import (
	"github.com/SAP-F-2025/quiz-scoring-service/internal/repositories"
	"gorm.io/gorm"
)

type Repository struct {
	quiz    repositories.QuizRepository
	attempt repositories.AttemptRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &Repository{
		quiz:    NewQuizPostgreSQL(db),
		attempt: NewAttemptPostgreSQL(db),
	}
}

func (r *Repository) Quiz() repositories.QuizRepository {
	return r.quiz
}

func (r *Repository) Attempt() repositories.AttemptRepository {
	return r.attempt
}
