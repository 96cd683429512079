package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/quiz-scoring-service/internal/cache"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/config"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/events"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/export"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/models"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/scoring"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/selection"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/submission"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/validator"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type attemptService struct {
	repo      repositories.Repository
	progress  cache.ProgressStore
	publisher events.EventPublisher
	engine    *scoring.Engine
	selector  *selection.Selector
	settings  config.QuizSettings
	logger    *slog.Logger
	validator *validator.Validator
	ops       *ServiceLogger
	now       func() time.Time
}

func NewAttemptService(
	repo repositories.Repository,
	progress cache.ProgressStore,
	publisher events.EventPublisher,
	engine *scoring.Engine,
	selector *selection.Selector,
	settings config.QuizSettings,
	logger *slog.Logger,
	validator *validator.Validator,
) AttemptService {
	return &attemptService{
		repo:      repo,
		progress:  progress,
		publisher: publisher,
		engine:    engine,
		selector:  selector,
		settings:  settings,
		logger:    logger,
		validator: validator,
		ops:       NewServiceLogger(logger, "attempt"),
		now:       time.Now,
	}
}

// ===== CORE ATTEMPT OPERATIONS =====

func (s *attemptService) Start(ctx context.Context, quizID uint, learnerSession string) (_ *StartAttemptResponse, err error) {
	op := s.ops.WithOperation(ctx, "start_attempt", learnerSession)
	defer func() { op.LogResult(fmt.Sprintf("quiz:%d", quizID), err) }()

	quiz, err := s.getQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if len(quiz.Questions) == 0 {
		return nil, ErrQuizHasNoQuestions
	}

	settings := s.settings.ForQuiz(quiz)

	if !settings.EnableRetakes {
		completed, err := s.repo.Attempt().CountCompleted(ctx, quiz.ID, learnerSession)
		if err != nil {
			return nil, fmt.Errorf("failed to count attempts: %w", err)
		}
		if completed > 0 {
			return nil, ErrRetakeNotAllowed
		}
	}

	valid := s.engine.ValidQuestions(models.Indexed(quiz.Questions))
	if len(valid) == 0 {
		return nil, ErrNoValidQuestions
	}

	selected := s.selector.Select(valid, settings.QuestionsPerQuiz)

	attempt := &models.QuizAttempt{
		AttemptID:       uuid.NewString(),
		QuizID:          quiz.ID,
		LearnerSession:  learnerSession,
		Status:          models.AttemptStatusStarted,
		SelectedIndices: selected.Order,
		PassingScore:    settings.PassingScore,
		TimeLimit:       settings.TimeLimitMinutes,
		StartedAt:       s.now(),
	}

	if err := s.repo.Attempt().Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to create attempt: %w", err)
	}

	s.publish(ctx, events.NewAttemptStartedEvent(events.AttemptStartedData{
		AttemptID:      attempt.AttemptID,
		QuizID:         quiz.ID,
		QuizTitle:      quiz.Title,
		LearnerSession: learnerSession,
		TotalQuestions: selected.Len(),
		StartedAt:      attempt.StartedAt,
		TimeLimit:      attempt.TimeLimit,
	}))

	s.logger.Info("Quiz attempt started successfully",
		"attempt_id", attempt.AttemptID,
		"quiz_id", quiz.ID,
		"questions", selected.Len())

	return &StartAttemptResponse{
		AttemptID:      attempt.AttemptID,
		QuizID:         quiz.ID,
		QuizTitle:      quiz.Title,
		Questions:      publicQuestions(selected.Indexed()),
		TotalQuestions: selected.Len(),
		TimeLimit:      attempt.TimeLimit,
		StartedAt:      attempt.StartedAt,
		Deadline:       attempt.Deadline(),
	}, nil
}

func (s *attemptService) SaveProgress(ctx context.Context, attemptID, learnerSession string, req *SaveProgressRequest) (*models.AttemptProgress, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	attempt, err := s.getOwnedAttempt(ctx, attemptID, learnerSession)
	if err != nil {
		return nil, err
	}
	if attempt.Status == models.AttemptStatusCompleted {
		return nil, ErrAttemptAlreadySubmitted
	}
	if err := s.checkDeadline(attempt); err != nil {
		return nil, err
	}

	progress := &models.AttemptProgress{
		AttemptID:       attempt.AttemptID,
		CurrentQuestion: req.CurrentQuestion,
		Answers:         req.Answers,
	}
	if err := s.progress.Save(ctx, progress); err != nil {
		return nil, err
	}

	s.logger.Debug("Saved attempt progress",
		"attempt_id", attemptID,
		"current_question", req.CurrentQuestion,
		"answers", len(req.Answers))

	return progress, nil
}

func (s *attemptService) GetProgress(ctx context.Context, attemptID, learnerSession string) (*models.AttemptProgress, error) {
	if _, err := s.getOwnedAttempt(ctx, attemptID, learnerSession); err != nil {
		return nil, err
	}

	progress, err := s.progress.Get(ctx, attemptID)
	if err != nil {
		if errors.Is(err, cache.ErrProgressNotFound) {
			return nil, ErrProgressNotFound
		}
		return nil, err
	}
	return progress, nil
}

func (s *attemptService) Submit(ctx context.Context, attemptID, learnerSession string, req *SubmitAttemptRequest) (_ *SubmitAttemptResponse, err error) {
	op := s.ops.WithOperation(ctx, "submit_attempt", learnerSession)
	defer func() { op.LogResult(attemptID, err) }()

	attempt, err := s.getOwnedAttempt(ctx, attemptID, learnerSession)
	if err != nil {
		return nil, err
	}
	if attempt.Status == models.AttemptStatusCompleted {
		return nil, ErrAttemptAlreadySubmitted
	}
	if err := s.checkDeadline(attempt); err != nil {
		return nil, err
	}

	quiz, err := s.getQuiz(ctx, attempt.QuizID)
	if err != nil {
		return nil, err
	}

	raw, err := s.submittedAnswers(ctx, attempt.AttemptID, req)
	if err != nil {
		return nil, err
	}

	questions := attemptQuestions(quiz, attempt)
	answers, submitted := submission.DecodeWithRaw(raw, questions)
	result := s.engine.Aggregate(questions, answers, attempt.PassingScore)
	details := s.engine.Detail(questions, answers, submitted)

	rawJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to encode answers: %w", err)
	}

	completedAt := s.now()
	attempt.CompletedAt = &completedAt
	attempt.Score = result.ScorePercentage
	attempt.TotalPoints = result.TotalPoints
	attempt.EarnedPoints = result.EarnedPoints
	attempt.CorrectAnswers = result.CorrectFullQuestionCount
	attempt.TotalQuestions = result.TotalQuestionCount
	attempt.Passed = result.Passed
	attempt.Answers = datatypes.JSON(rawJSON)
	attempt.Details = details

	if err := s.repo.Attempt().Complete(ctx, attempt); err != nil {
		if errors.Is(err, repositories.ErrAttemptNotStarted) {
			return nil, ErrAttemptAlreadySubmitted
		}
		return nil, fmt.Errorf("failed to complete attempt: %w", err)
	}

	if err := s.progress.Delete(ctx, attempt.AttemptID); err != nil {
		s.logger.Warn("Failed to clear attempt progress", "attempt_id", attempt.AttemptID, "error", err)
	}

	s.publish(ctx, events.NewAttemptCompletedEvent(events.AttemptCompletedData{
		AttemptID:       attempt.AttemptID,
		QuizID:          attempt.QuizID,
		LearnerSession:  attempt.LearnerSession,
		ScorePercentage: result.ScorePercentage,
		EarnedPoints:    result.EarnedPoints,
		TotalPoints:     result.TotalPoints,
		CorrectAnswers:  result.CorrectFullQuestionCount,
		TotalQuestions:  result.TotalQuestionCount,
		Passed:          result.Passed,
		CompletedAt:     completedAt,
	}))

	s.logger.Info("Quiz attempt submitted successfully",
		"attempt_id", attempt.AttemptID,
		"score", result.ScorePercentage,
		"passed", result.Passed)

	resp := &SubmitAttemptResponse{
		AttemptID:   attempt.AttemptID,
		Result:      result,
		CompletedAt: completedAt,
	}
	if s.settings.ForQuiz(quiz).ShowCorrectAnswers {
		resp.Details = details
	}
	return resp, nil
}

func (s *attemptService) List(ctx context.Context, learnerSession string, filters repositories.AttemptFilters) (*AttemptListResponse, error) {
	attempts, total, err := s.repo.Attempt().ListByLearner(ctx, learnerSession, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}

	return &AttemptListResponse{
		Attempts: attempts,
		Total:    total,
		Limit:    filters.Limit,
		Offset:   filters.Offset,
	}, nil
}

func (s *attemptService) ExportReport(ctx context.Context, attemptID, learnerSession string) (*AttemptReport, error) {
	attempt, err := s.getOwnedAttempt(ctx, attemptID, learnerSession)
	if err != nil {
		return nil, err
	}
	if attempt.Status != models.AttemptStatusCompleted {
		return nil, ErrAttemptNotCompleted
	}

	quiz, err := s.getQuiz(ctx, attempt.QuizID)
	if err != nil {
		return nil, err
	}

	content, err := export.AttemptReport(quiz.Title, attempt, attempt.Details, export.ReportOptions{
		ShowCorrectAnswers: s.settings.ForQuiz(quiz).ShowCorrectAnswers,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}

	return &AttemptReport{
		Filename: reportFilename(attempt),
		Content:  content,
	}, nil
}
