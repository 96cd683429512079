package events

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"
)

// EventType represents different types of attempt events
type EventType string

const (
	EventAttemptStarted   EventType = "attempt.started"
	EventAttemptCompleted EventType = "attempt.completed"
)

const (
	eventSource  = "quiz-scoring-service"
	eventVersion = "1.0"
)

// AttemptEvent is the envelope for every event this service publishes
type AttemptEvent struct {
	ID        string                 `json:"id"`
	AttemptID string                 `json:"attempt_id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Attempt event payloads

type AttemptStartedData struct {
	AttemptID      string    `json:"attempt_id"`
	QuizID         uint      `json:"quiz_id"`
	QuizTitle      string    `json:"quiz_title"`
	LearnerSession string    `json:"learner_session"`
	TotalQuestions int       `json:"total_questions"`
	StartedAt      time.Time `json:"started_at"`
	TimeLimit      int       `json:"time_limit"` // minutes, 0 means unlimited
}

type AttemptCompletedData struct {
	AttemptID       string    `json:"attempt_id"`
	QuizID          uint      `json:"quiz_id"`
	LearnerSession  string    `json:"learner_session"`
	ScorePercentage float64   `json:"score_percentage"`
	EarnedPoints    int       `json:"earned_points"`
	TotalPoints     int       `json:"total_points"`
	CorrectAnswers  int       `json:"correct_answers"`
	TotalQuestions  int       `json:"total_questions"`
	Passed          bool      `json:"passed"`
	CompletedAt     time.Time `json:"completed_at"`
}

// Event factory functions

func NewAttemptStartedEvent(data AttemptStartedData) *AttemptEvent {
	return newEvent(EventAttemptStarted, data.AttemptID, data)
}

func NewAttemptCompletedEvent(data AttemptCompletedData) *AttemptEvent {
	return newEvent(EventAttemptCompleted, data.AttemptID, data)
}

func newEvent(eventType EventType, attemptID string, data interface{}) *AttemptEvent {
	return &AttemptEvent{
		ID:        watermill.NewUUID(),
		AttemptID: attemptID,
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}
