package services

import (
	"context"
	"log/slog"

	"github.com/SAP-F-2025/quiz-scoring-service/internal/config"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/models"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/scoring"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/submission"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/validator"
)

type scoringService struct {
	engine    *scoring.Engine
	settings  config.QuizSettings
	logger    *slog.Logger
	validator *validator.Validator
}

func NewScoringService(engine *scoring.Engine, settings config.QuizSettings, logger *slog.Logger, validator *validator.Validator) ScoringService {
	return &scoringService{
		engine:    engine,
		settings:  settings,
		logger:    logger,
		validator: validator,
	}
}

// Evaluate grades every question of an inline quiz against the given answers.
// Invalid questions are skipped rather than rejected.
func (s *scoringService) Evaluate(ctx context.Context, req *EvaluateRequest) (*EvaluateResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	passingScore := s.settings.PassingScore
	if req.PassingScore != nil {
		passingScore = *req.PassingScore
	}

	questions := models.Indexed(req.Questions)
	answers, submitted := submission.DecodeWithRaw(req.Answers, questions)
	result := s.engine.Aggregate(questions, answers, passingScore)

	s.logger.DebugContext(ctx, "Evaluated inline quiz",
		"questions", result.TotalQuestionCount,
		"score", result.ScorePercentage)

	resp := &EvaluateResponse{Result: result}
	if req.IncludeDetails {
		resp.Details = s.engine.Detail(questions, answers, submitted)
	}
	return resp, nil
}
