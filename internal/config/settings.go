package config

import "github.com/SAP-F-2025/quiz-scoring-service/internal/models"

const (
	DefaultPassingScore     = 70.0
	DefaultQuestionsPerQuiz = 10
)

// QuizSettings are the global quiz settings. A quiz may override the first three.
type QuizSettings struct {
	PassingScore       float64 `json:"passing_score" validate:"min=0,max=100"`
	QuestionsPerQuiz   int     `json:"questions_per_quiz" validate:"min=1"`
	TimeLimitMinutes   int     `json:"time_limit" validate:"min=0"`
	ShowCorrectAnswers bool    `json:"show_correct_answers"`
	EnableRetakes      bool    `json:"enable_retakes"`
}

// Sanitize clamps every numeric setting into its allowed range.
func (s QuizSettings) Sanitize() QuizSettings {
	s.PassingScore = min(max(s.PassingScore, 0), 100)
	s.QuestionsPerQuiz = max(s.QuestionsPerQuiz, 1)
	s.TimeLimitMinutes = max(s.TimeLimitMinutes, 0)
	return s
}

// ForQuiz applies the quiz's own overrides on top of the global settings.
func (s QuizSettings) ForQuiz(quiz *models.Quiz) QuizSettings {
	if quiz == nil {
		return s
	}
	if quiz.PassingScore != nil {
		s.PassingScore = *quiz.PassingScore
	}
	if quiz.QuestionsPerQuiz != nil {
		s.QuestionsPerQuiz = *quiz.QuestionsPerQuiz
	}
	if quiz.TimeLimitMinutes != nil {
		s.TimeLimitMinutes = *quiz.TimeLimitMinutes
	}
	return s.Sanitize()
}
