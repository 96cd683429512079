package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/quiz-scoring-service/internal/services"
	"github.com/gin-gonic/gin"
)

// LearnerSessionHeader identifies the anonymous learner that owns an attempt
const LearnerSessionHeader = "X-Learner-Session"

const requestStartKey = "request_start"

func ParseStringIDParam(c *gin.Context, param string) string {
	idStr := c.Param(param)
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "ID cannot be empty",
		})
		return ""
	}
	return idStr
}

func ParseUintParam(c *gin.Context, param string) uint {
	idStr := c.Param(param)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		details := "ID must be a positive integer"
		if err != nil {
			details = err.Error()
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: details,
		})
		return 0
	}
	return uint(id)
}

// RequireLearnerSession returns the learner session header, or writes a 401
// and returns "" when it is missing.
func RequireLearnerSession(c *gin.Context) string {
	session := strings.TrimSpace(c.GetHeader(LearnerSessionHeader))
	if session == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Learner session required",
			Details: "missing " + LearnerSessionHeader + " header",
		})
		return ""
	}
	return session
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "quiz-scoring-service",
	})
}

func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	// Handle custom error types first
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrors,
		})
		return
	}

	var businessRuleError *services.BusinessRuleError
	if errors.As(err, &businessRuleError) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Message: businessRuleError.Message,
			Details: map[string]interface{}{
				"rule":    businessRuleError.Rule,
				"context": businessRuleError.Context,
			},
		})
		return
	}

	switch {
	// Quiz errors
	case errors.Is(err, services.ErrQuizNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Quiz not found",
		})
	case errors.Is(err, services.ErrQuizHasNoQuestions):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Message: "This quiz has no questions yet",
		})
	case errors.Is(err, services.ErrNoValidQuestions):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Message: "This quiz has no valid questions",
		})
	// Attempt errors
	case errors.Is(err, services.ErrAttemptNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Attempt not found",
		})
	case errors.Is(err, services.ErrProgressNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "No saved progress",
		})
	case errors.Is(err, services.ErrAttemptAccessDenied):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Access denied to attempt",
		})
	case errors.Is(err, services.ErrAttemptAlreadySubmitted):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Attempt already submitted",
		})
	case errors.Is(err, services.ErrAttemptNotCompleted):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Attempt has not been submitted yet",
		})
	case errors.Is(err, services.ErrRetakeNotAllowed):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "You have already completed this quiz",
		})
	// Generic errors
	case errors.Is(err, services.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
	default:
		h.RespondWithError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}
