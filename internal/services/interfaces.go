package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/SAP-F-2025/quiz-scoring-service/internal/config"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/models"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/repositories"
)

// ===== SERVICE INTERFACES =====

type QuizService interface {
	Create(ctx context.Context, req *CreateQuizRequest) (*QuizResponse, error)
	GetSettings(ctx context.Context, quizID uint) (*QuizResponse, error)
}

type AttemptService interface {
	Start(ctx context.Context, quizID uint, learnerSession string) (*StartAttemptResponse, error)
	SaveProgress(ctx context.Context, attemptID, learnerSession string, req *SaveProgressRequest) (*models.AttemptProgress, error)
	GetProgress(ctx context.Context, attemptID, learnerSession string) (*models.AttemptProgress, error)
	Submit(ctx context.Context, attemptID, learnerSession string, req *SubmitAttemptRequest) (*SubmitAttemptResponse, error)
	List(ctx context.Context, learnerSession string, filters repositories.AttemptFilters) (*AttemptListResponse, error)
	ExportReport(ctx context.Context, attemptID, learnerSession string) (*AttemptReport, error)
}

// ScoringService grades inline quizzes without touching storage
type ScoringService interface {
	Evaluate(ctx context.Context, req *EvaluateRequest) (*EvaluateResponse, error)
}

type ServiceManager interface {
	Quiz() QuizService
	Attempt() AttemptService
	Scoring() ScoringService
}

// ===== REQUEST / RESPONSE TYPES =====

type CreateQuizRequest struct {
	Title            string            `json:"title" validate:"required,max=200"`
	Questions        []models.Question `json:"questions" validate:"required,min=1,dive"`
	PassingScore     *float64          `json:"passing_score" validate:"omitempty,min=0,max=100"`
	QuestionsPerQuiz *int              `json:"questions_per_quiz" validate:"omitempty,min=1"`
	TimeLimitMinutes *int              `json:"time_limit" validate:"omitempty,min=0"`
}

type QuizResponse struct {
	ID            uint                `json:"id"`
	Title         string              `json:"title"`
	QuestionCount int                 `json:"question_count"`
	Settings      config.QuizSettings `json:"settings"`
}

type StartAttemptResponse struct {
	AttemptID      string                   `json:"attempt_id"`
	QuizID         uint                     `json:"quiz_id"`
	QuizTitle      string                   `json:"quiz_title"`
	Questions      []models.IndexedQuestion `json:"questions"`
	TotalQuestions int                      `json:"total_questions"`
	TimeLimit      int                      `json:"time_limit"`
	StartedAt      time.Time                `json:"started_at"`
	Deadline       *time.Time               `json:"deadline,omitempty"`
}

type SaveProgressRequest struct {
	CurrentQuestion int                        `json:"current_question" validate:"min=0"`
	Answers         map[string]json.RawMessage `json:"answers"`
}

// SubmitAttemptRequest carries the final answers. When Answers is nil the
// last saved progress is graded instead.
type SubmitAttemptRequest struct {
	Answers map[string]json.RawMessage `json:"answers"`
}

type SubmitAttemptResponse struct {
	AttemptID   string                  `json:"attempt_id"`
	Result      models.ScoringResult    `json:"result"`
	Details     []models.DetailedResult `json:"details,omitempty"`
	CompletedAt time.Time               `json:"completed_at"`
}

type AttemptListResponse struct {
	Attempts []*models.QuizAttempt `json:"attempts"`
	Total    int64                 `json:"total"`
	Limit    int                   `json:"limit"`
	Offset   int                   `json:"offset"`
}

type AttemptReport struct {
	Filename string
	Content  []byte
}

type EvaluateRequest struct {
	Questions      []models.Question          `json:"questions" validate:"required,min=1"`
	Answers        map[string]json.RawMessage `json:"answers"`
	PassingScore   *float64                   `json:"passing_score" validate:"omitempty,min=0,max=100"`
	IncludeDetails bool                       `json:"include_details"`
}

type EvaluateResponse struct {
	Result  models.ScoringResult    `json:"result"`
	Details []models.DetailedResult `json:"details,omitempty"`
}
