package handlers

import (
	"time"

	"github.com/SAP-F-2025/quiz-scoring-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides common logging functionality for all handlers
type BaseHandler struct {
	logger utils.Logger
}

// NewBaseHandler creates a new base handler with logging capability
func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{
		logger: logger,
	}
}

// requestLogger prefers the request-scoped logger installed by utils.ContextLogger
func (h *BaseHandler) requestLogger(c *gin.Context) utils.Logger {
	return utils.GetLoggerFromContext(c, h.logger)
}

func (h *BaseHandler) contextFields(c *gin.Context, additionalFields ...interface{}) []interface{} {
	fields := []interface{}{
		"request_id", c.GetHeader("X-Request-ID"),
		"learner_session", h.extractLearnerSession(c),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	}
	return append(fields, additionalFields...)
}

// LogRequest logs incoming HTTP requests and marks the start time for LogResponse
func (h *BaseHandler) LogRequest(c *gin.Context, message string, additionalFields ...interface{}) {
	start := time.Now()
	c.Set(requestStartKey, start)

	fields := h.contextFields(c,
		"remote_addr", c.ClientIP(),
		"user_agent", c.Request.UserAgent(),
		"timestamp", start.Format(time.RFC3339),
	)
	fields = append(fields, additionalFields...)

	h.requestLogger(c).Info(message, fields...)
}

// LogResponse logs HTTP responses with timing and status information
func (h *BaseHandler) LogResponse(c *gin.Context, statusCode int, message string, additionalFields ...interface{}) {
	var duration time.Duration
	if start, ok := c.Get(requestStartKey); ok {
		duration = time.Since(start.(time.Time))
	}

	fields := []interface{}{
		"message", message,
		"request_id", c.GetHeader("X-Request-ID"),
	}
	fields = append(fields, additionalFields...)

	h.requestLogger(c).LogRequest(c.Request.Method, c.Request.URL.Path, statusCode, duration.String(), fields...)
}

// LogError logs error details with context information
func (h *BaseHandler) LogError(c *gin.Context, err error, message string, additionalFields ...interface{}) {
	h.requestLogger(c).LogError(err, message, h.contextFields(c, additionalFields...)...)
}

func (h *BaseHandler) LogInfo(c *gin.Context, message string, additionalFields ...interface{}) {
	h.requestLogger(c).Info(message, h.contextFields(c, additionalFields...)...)
}

func (h *BaseHandler) LogWarn(c *gin.Context, message string, additionalFields ...interface{}) {
	h.requestLogger(c).Warn(message, h.contextFields(c, additionalFields...)...)
}

func (h *BaseHandler) extractLearnerSession(c *gin.Context) string {
	return c.GetHeader(LearnerSessionHeader)
}

// RespondWithError sends a consistent error response and logs it
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, message string, err error, details ...interface{}) {
	errorResp := ErrorResponse{
		Message: message,
	}

	if len(details) > 0 {
		errorResp.Details = details[0]
	}

	// Log the error with context
	if err != nil {
		h.LogError(c, err, message, "status_code", statusCode)
	} else {
		h.LogWarn(c, message, "status_code", statusCode)
	}

	c.JSON(statusCode, errorResp)
}

// RespondWithSuccess sends a consistent success response and logs it
func (h *BaseHandler) RespondWithSuccess(c *gin.Context, statusCode int, message string, data interface{}, additionalFields ...interface{}) {
	successResp := SuccessResponse{
		Message: message,
		Data:    data,
	}

	// Log the successful response
	fields := []interface{}{"status_code", statusCode}
	fields = append(fields, additionalFields...)
	h.LogInfo(c, message, fields...)

	c.JSON(statusCode, successResp)
}
