package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SAP-F-2025/quiz-scoring-service/internal/cache"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/events"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/models"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/repositories"
)

func (s *attemptService) getQuiz(ctx context.Context, quizID uint) (*models.Quiz, error) {
	quiz, err := s.repo.Quiz().GetByID(ctx, quizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	return quiz, nil
}

// getOwnedAttempt loads an attempt and checks it belongs to the learner session
func (s *attemptService) getOwnedAttempt(ctx context.Context, attemptID, learnerSession string) (*models.QuizAttempt, error) {
	attempt, err := s.repo.Attempt().GetByAttemptID(ctx, attemptID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}

	if attempt.LearnerSession != learnerSession {
		return nil, ErrAttemptAccessDenied
	}
	return attempt, nil
}

func (s *attemptService) checkDeadline(attempt *models.QuizAttempt) error {
	now := s.now()
	if !attempt.Expired(now) {
		return nil
	}
	return NewBusinessRuleError("time_limit", "The time limit for this attempt has passed", ErrAttemptTimeExpired,
		map[string]interface{}{
			"attempt_id": attempt.AttemptID,
			"deadline":   attempt.Deadline().Format(time.RFC3339),
		})
}

// submittedAnswers returns the request's answers, or the saved progress when
// the request carries none. No saved progress means nothing was answered.
func (s *attemptService) submittedAnswers(ctx context.Context, attemptID string, req *SubmitAttemptRequest) (map[string]json.RawMessage, error) {
	if req != nil && req.Answers != nil {
		return req.Answers, nil
	}

	progress, err := s.progress.Get(ctx, attemptID)
	if err != nil {
		if errors.Is(err, cache.ErrProgressNotFound) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, err
	}
	if progress.Answers == nil {
		return map[string]json.RawMessage{}, nil
	}
	return progress.Answers, nil
}

func (s *attemptService) publish(ctx context.Context, event *events.AttemptEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishAttemptEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish attempt event",
			"event_type", event.Type,
			"event_id", event.ID,
			"error", err)
	}
}

// attemptQuestions rebuilds the attempt's questions in display order.
// Indices no longer present in the quiz are dropped.
func attemptQuestions(quiz *models.Quiz, attempt *models.QuizAttempt) []models.IndexedQuestion {
	questions := make([]models.IndexedQuestion, 0, len(attempt.SelectedIndices))
	for _, idx := range attempt.SelectedIndices {
		if idx < 0 || idx >= len(quiz.Questions) {
			continue
		}
		questions = append(questions, models.IndexedQuestion{Index: idx, Question: quiz.Questions[idx]})
	}
	return questions
}

func publicQuestions(questions []models.IndexedQuestion) []models.IndexedQuestion {
	out := make([]models.IndexedQuestion, len(questions))
	for i, iq := range questions {
		out[i] = models.IndexedQuestion{Index: iq.Index, Question: iq.Question.Public()}
	}
	return out
}

func reportFilename(attempt *models.QuizAttempt) string {
	return fmt.Sprintf("quiz_%d_attempt_%s.xlsx", attempt.QuizID, attempt.AttemptID)
}
