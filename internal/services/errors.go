package services

import (
	"errors"
	"fmt"

	apperrors "github.com/SAP-F-2025/quiz-scoring-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrValidationFailed = errors.New("validation failed")

	// Quiz specific errors
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrQuizHasNoQuestions = errors.New("quiz has no questions")
	ErrNoValidQuestions   = errors.New("quiz has no valid questions")

	// Attempt specific errors
	ErrAttemptNotFound         = errors.New("attempt not found")
	ErrAttemptAccessDenied     = errors.New("access denied to attempt")
	ErrAttemptAlreadySubmitted = errors.New("attempt already submitted")
	ErrAttemptNotCompleted     = errors.New("attempt has not been submitted yet")
	ErrAttemptTimeExpired      = errors.New("attempt time has expired")
	ErrRetakeNotAllowed        = errors.New("retakes are disabled for this quiz")

	// Progress specific errors
	ErrProgressNotFound = errors.New("no saved progress for attempt")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

type BusinessRuleError struct {
	Rule    string                 `json:"rule"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`

	// Err is the sentinel the violation corresponds to, if any
	Err error `json:"-"`
}

func (bre *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule violation (%s): %s", bre.Rule, bre.Message)
}

func (bre *BusinessRuleError) Unwrap() error {
	return bre.Err
}

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

func NewBusinessRuleError(rule, message string, cause error, context map[string]interface{}) *BusinessRuleError {
	return &BusinessRuleError{
		Rule:    rule,
		Message: message,
		Context: context,
		Err:     cause,
	}
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrQuizNotFound) ||
		errors.Is(err, ErrAttemptNotFound) ||
		errors.Is(err, ErrProgressNotFound)
}

// IsUnauthorized checks if error represents an "unauthorized" condition
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrAttemptAccessDenied)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsBusinessRule checks if error represents a business rule violation
func IsBusinessRule(err error) bool {
	var bre *BusinessRuleError
	return errors.As(err, &bre)
}

// IsConflict checks if error represents a resource conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrAttemptAlreadySubmitted) ||
		errors.Is(err, ErrRetakeNotAllowed)
}
