package repositories

import (
	"context"

	"github.com/SAP-F-2025/quiz-scoring-service/internal/models"
)

// QuizRepository supplies quiz definitions. Question order is the authored order.
type QuizRepository interface {
	Create(ctx context.Context, quiz *models.Quiz) error
	GetByID(ctx context.Context, id uint) (*models.Quiz, error)
	Update(ctx context.Context, quiz *models.Quiz) error
}
