package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Quiz is a stored quiz definition. Questions keep their authored order;
// a question's position in the slice is its original index.
type Quiz struct {
	ID        uint                          `json:"id" gorm:"primaryKey"`
	Title     string                        `json:"title" gorm:"not null;size:200"`
	Questions datatypes.JSONSlice[Question] `json:"questions" gorm:"type:jsonb"`

	// Per-quiz overrides of the global settings, nil means "use the default"
	PassingScore     *float64 `json:"passing_score" validate:"omitempty,min=0,max=100"`
	QuestionsPerQuiz *int     `json:"questions_per_quiz" validate:"omitempty,min=1"`
	TimeLimitMinutes *int     `json:"time_limit" validate:"omitempty,min=0"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

type AttemptStatus string

const (
	AttemptStatusStarted   AttemptStatus = "started"
	AttemptStatusCompleted AttemptStatus = "completed"
)

// QuizAttempt is one learner's pass through a quiz. It is completed at most once.
type QuizAttempt struct {
	ID              uint                     `json:"-" gorm:"primaryKey"`
	AttemptID       string                   `json:"attempt_id" gorm:"uniqueIndex;size:64;not null"`
	QuizID          uint                     `json:"quiz_id" gorm:"not null;index"`
	LearnerSession  string                   `json:"learner_session" gorm:"size:128;index"`
	Status          AttemptStatus            `json:"status" gorm:"size:20;default:started;index"`
	SelectedIndices datatypes.JSONSlice[int] `json:"selected_indices" gorm:"type:jsonb"`
	PassingScore    float64                  `json:"passing_score"`
	TimeLimit       int                      `json:"time_limit"` // minutes, 0 means unlimited

	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`

	Score          float64                             `json:"score"`
	TotalPoints    int                                 `json:"total_points"`
	EarnedPoints   int                                 `json:"earned_points"`
	CorrectAnswers int                                 `json:"correct_answers"`
	TotalQuestions int                                 `json:"total_questions"`
	Passed         bool                                `json:"passed"`
	Answers        datatypes.JSON                      `json:"answers" gorm:"type:jsonb"`
	// Details carries answer keys; it is only exposed through responses that
	// honour the show-correct-answers setting.
	Details        datatypes.JSONSlice[DetailedResult] `json:"-" gorm:"type:jsonb"`

	Quiz Quiz `json:"-" gorm:"foreignKey:QuizID"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// Deadline returns when the attempt expires, or nil when it has no time limit.
func (a *QuizAttempt) Deadline() *time.Time {
	if a.TimeLimit <= 0 {
		return nil
	}
	end := a.StartedAt.Add(time.Duration(a.TimeLimit) * time.Minute)
	return &end
}

// Expired reports whether now is past the attempt's time limit.
func (a *QuizAttempt) Expired(now time.Time) bool {
	deadline := a.Deadline()
	return deadline != nil && now.After(*deadline)
}

// AttemptProgress is the caller-owned state of an attempt in progress:
// the raw answers given so far and the question the learner is on.
type AttemptProgress struct {
	AttemptID       string                     `json:"attempt_id"`
	CurrentQuestion int                        `json:"current_question"`
	Answers         map[string]json.RawMessage `json:"answers"`
	SavedAt         time.Time                  `json:"saved_at"`
}
