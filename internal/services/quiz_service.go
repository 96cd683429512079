package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/quiz-scoring-service/internal/config"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/models"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/validator"
	"gorm.io/datatypes"
)

type quizService struct {
	repo      repositories.Repository
	settings  config.QuizSettings
	logger    *slog.Logger
	validator *validator.Validator
}

func NewQuizService(repo repositories.Repository, settings config.QuizSettings, logger *slog.Logger, validator *validator.Validator) QuizService {
	return &quizService{
		repo:      repo,
		settings:  settings,
		logger:    logger,
		validator: validator,
	}
}

func (s *quizService) Create(ctx context.Context, req *CreateQuizRequest) (*QuizResponse, error) {
	s.logger.Info("Creating quiz", "title", req.Title, "questions", len(req.Questions))

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if err := s.validator.Question().ValidateBatch(req.Questions); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	quiz := &models.Quiz{
		Title:            req.Title,
		Questions:        datatypes.JSONSlice[models.Question](req.Questions),
		PassingScore:     req.PassingScore,
		QuestionsPerQuiz: req.QuestionsPerQuiz,
		TimeLimitMinutes: req.TimeLimitMinutes,
	}
	if err := s.repo.Quiz().Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	s.logger.Info("Quiz created successfully", "quiz_id", quiz.ID)
	return s.toResponse(quiz), nil
}

// GetSettings returns the effective settings for a quiz, with its own
// overrides applied over the global defaults.
func (s *quizService) GetSettings(ctx context.Context, quizID uint) (*QuizResponse, error) {
	quiz, err := s.repo.Quiz().GetByID(ctx, quizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	return s.toResponse(quiz), nil
}

func (s *quizService) toResponse(quiz *models.Quiz) *QuizResponse {
	return &QuizResponse{
		ID:            quiz.ID,
		Title:         quiz.Title,
		QuestionCount: len(quiz.Questions),
		Settings:      s.settings.ForQuiz(quiz),
	}
}
