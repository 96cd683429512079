package handlers

import (
	"net/http"
	"strconv"

	"github.com/SAP-F-2025/quiz-scoring-service/internal/models"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/services"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AttemptHandler struct {
	BaseHandler
	attemptService services.AttemptService
}

func NewAttemptHandler(
	attemptService services.AttemptService,
	logger utils.Logger,
) *AttemptHandler {
	return &AttemptHandler{
		BaseHandler:    NewBaseHandler(logger),
		attemptService: attemptService,
	}
}

// SaveProgress stores the learner's in-progress answers
// @Summary Save attempt progress
// @Tags attempts
// @Accept json
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Param progress body services.SaveProgressRequest true "Progress"
// @Success 200 {object} models.AttemptProgress
// @Failure 400 {object} ErrorResponse
// @Router /attempts/{attempt_id}/progress [post]
func (h *AttemptHandler) SaveProgress(c *gin.Context) {
	attemptID := ParseStringIDParam(c, "attempt_id")
	if attemptID == "" {
		return
	}
	session := RequireLearnerSession(c)
	if session == "" {
		return
	}

	var req services.SaveProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	progress, err := h.attemptService.SaveProgress(c.Request.Context(), attemptID, session, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// GetProgress returns the learner's saved answers for an attempt
// @Summary Get attempt progress
// @Tags attempts
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {object} models.AttemptProgress
// @Failure 404 {object} ErrorResponse
// @Router /attempts/{attempt_id}/progress [get]
func (h *AttemptHandler) GetProgress(c *gin.Context) {
	attemptID := ParseStringIDParam(c, "attempt_id")
	if attemptID == "" {
		return
	}
	session := RequireLearnerSession(c)
	if session == "" {
		return
	}

	progress, err := h.attemptService.GetProgress(c.Request.Context(), attemptID, session)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// SubmitAttempt grades and completes an attempt
// @Summary Submit attempt
// @Tags attempts
// @Accept json
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Param answers body services.SubmitAttemptRequest false "Final answers"
// @Success 200 {object} services.SubmitAttemptResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /attempts/{attempt_id}/submit [post]
func (h *AttemptHandler) SubmitAttempt(c *gin.Context) {
	attemptID := ParseStringIDParam(c, "attempt_id")
	if attemptID == "" {
		return
	}
	session := RequireLearnerSession(c)
	if session == "" {
		return
	}

	h.LogRequest(c, "Submitting attempt", "attempt_id", attemptID)

	var req services.SubmitAttemptRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid request payload",
				Details: err.Error(),
			})
			return
		}
	}

	result, err := h.attemptService.Submit(c.Request.Context(), attemptID, session, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListAttempts lists the calling learner's attempts
// @Summary List attempts
// @Tags attempts
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} services.AttemptListResponse
// @Router /attempts [get]
func (h *AttemptHandler) ListAttempts(c *gin.Context) {
	session := RequireLearnerSession(c)
	if session == "" {
		return
	}

	h.LogRequest(c, "Listing attempts")

	attempts, err := h.attemptService.List(c.Request.Context(), session, h.parseAttemptFilters(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, attempts)
}

// DownloadReport sends the detailed review of a completed attempt as xlsx
// @Summary Download attempt report
// @Tags attempts
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {file} file
// @Failure 409 {object} ErrorResponse
// @Router /attempts/{attempt_id}/report [get]
func (h *AttemptHandler) DownloadReport(c *gin.Context) {
	attemptID := ParseStringIDParam(c, "attempt_id")
	if attemptID == "" {
		return
	}
	session := RequireLearnerSession(c)
	if session == "" {
		return
	}

	h.LogRequest(c, "Exporting attempt report", "attempt_id", attemptID)

	report, err := h.attemptService.ExportReport(c.Request.Context(), attemptID, session)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+report.Filename)
	c.Data(http.StatusOK, xlsxContentType, report.Content)
	h.LogResponse(c, http.StatusOK, "Attempt report exported", "bytes", len(report.Content))
}

func (h *AttemptHandler) parseIntQuery(c *gin.Context, param string, defaultValue int) int {
	valueStr := c.Query(param)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func (h *AttemptHandler) parseAttemptFilters(c *gin.Context) repositories.AttemptFilters {
	page := max(h.parseIntQuery(c, "page", 1), 1)
	size := h.parseIntQuery(c, "size", 10)
	if size < 1 || size > 100 {
		size = 10
	}

	filters := repositories.AttemptFilters{
		Limit:     size,
		Offset:    (page - 1) * size,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if status := c.Query("status"); status != "" {
		attemptStatus := models.AttemptStatus(status)
		filters.Status = &attemptStatus
	}

	if quizIDStr := c.Query("quiz_id"); quizIDStr != "" {
		if quizID, err := strconv.ParseUint(quizIDStr, 10, 32); err == nil {
			id := uint(quizID)
			filters.QuizID = &id
		}
	}

	return filters
}
