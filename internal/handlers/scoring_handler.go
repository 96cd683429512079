package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/quiz-scoring-service/internal/services"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/utils"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/validator"
	"github.com/gin-gonic/gin"
)

type ScoringHandler struct {
	BaseHandler
	scoringService services.ScoringService
	validator      *validator.Validator
}

func NewScoringHandler(
	scoringService services.ScoringService,
	validator *validator.Validator,
	logger utils.Logger,
) *ScoringHandler {
	return &ScoringHandler{
		BaseHandler:    NewBaseHandler(logger),
		scoringService: scoringService,
		validator:      validator,
	}
}

// Evaluate grades an inline quiz without creating an attempt
// @Summary Evaluate answers
// @Tags scoring
// @Accept json
// @Produce json
// @Param request body services.EvaluateRequest true "Questions and answers"
// @Success 200 {object} services.EvaluateResponse
// @Failure 400 {object} ErrorResponse
// @Router /scoring/evaluate [post]
func (h *ScoringHandler) Evaluate(c *gin.Context) {
	h.LogRequest(c, "Evaluating inline quiz")

	var req services.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	result, err := h.scoringService.Evaluate(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
