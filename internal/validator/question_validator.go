package validator

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/quiz-scoring-service/internal/errors"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/models"
)

// QuestionValidator decides whether a question is well formed enough to be scored.
type QuestionValidator struct{}

// NewQuestionValidator creates a new question validator
func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// IsValid reports whether the question counts toward a quiz's totals.
func (v *QuestionValidator) IsValid(question models.Question) bool {
	return v.ValidateQuestion(question) == nil
}

// ValidateQuestion checks the common fields, then the content rules of the
// question's type. A non-empty type without content rules is accepted.
func (v *QuestionValidator) ValidateQuestion(question models.Question) error {
	if strings.TrimSpace(string(question.Type)) == "" {
		return fmt.Errorf("question type is required")
	}
	if strings.TrimSpace(question.Prompt) == "" {
		return fmt.Errorf("question text is required")
	}

	return v.ValidateContent(question)
}

// ValidateContent validates question content based on question type
func (v *QuestionValidator) ValidateContent(question models.Question) error {
	switch question.Type {
	case models.MultipleChoice:
		return v.validateMultipleChoiceContent(question)
	case models.TrueFalse:
		return v.validateTrueFalseContent(question)
	case models.FillBlanks:
		return v.validateFillBlanksContent(question)
	case models.Matching:
		return v.validateMatchingContent(question)
	default:
		return nil
	}
}

// ValidateBatch validates every question of a quiz. Each invalid question is
// reported under its original index.
func (v *QuestionValidator) ValidateBatch(questions []models.Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("question batch cannot be empty")
	}

	var errs ValidationErrors
	for i, question := range questions {
		if err := v.ValidateQuestion(question); err != nil {
			field := fmt.Sprintf("questions[%d]", i)
			errs = append(errs, *errors.NewValidationErrorWithRule(field, err.Error(), "question_content", question.Type))
		}
	}
	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Private validation methods for each question type

func (v *QuestionValidator) validateMultipleChoiceContent(q models.Question) error {
	if len(q.Options) < 2 {
		return fmt.Errorf("must have at least 2 options")
	}

	if len(q.CorrectAnswers) == 0 {
		return fmt.Errorf("must have at least 1 correct answer")
	}

	for _, idx := range q.CorrectAnswers {
		if idx < 0 || idx >= len(q.Options) {
			return fmt.Errorf("correct answer index %d does not match any option", idx)
		}
	}

	return nil
}

func (v *QuestionValidator) validateTrueFalseContent(q models.Question) error {
	if q.CorrectAnswer != "true" && q.CorrectAnswer != "false" {
		return fmt.Errorf("correct answer must be \"true\" or \"false\", got %q", q.CorrectAnswer)
	}
	return nil
}

func (v *QuestionValidator) validateFillBlanksContent(q models.Question) error {
	blanks := q.BlankCount()
	if blanks == 0 {
		return fmt.Errorf("text must contain at least 1 %s marker", models.BlankMarker)
	}

	if len(q.WordBank) < blanks {
		return fmt.Errorf("word bank has %d entries for %d blanks", len(q.WordBank), blanks)
	}

	return nil
}

func (v *QuestionValidator) validateMatchingContent(q models.Question) error {
	if len(q.LeftColumn) < 2 {
		return fmt.Errorf("must have at least 2 left items")
	}

	if len(q.RightColumn) < 2 {
		return fmt.Errorf("must have at least 2 right items")
	}

	if len(q.Matches) == 0 {
		return fmt.Errorf("must have at least 1 correct pair")
	}

	for _, pair := range q.Matches {
		if pair.Left < 0 || pair.Left >= len(q.LeftColumn) {
			return fmt.Errorf("correct pair references non-existent left item: %d", pair.Left)
		}
		if pair.Right < 0 || pair.Right >= len(q.RightColumn) {
			return fmt.Errorf("correct pair references non-existent right item: %d", pair.Right)
		}
	}

	return nil
}
