package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/quiz-scoring-service/internal/services"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/utils"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/validator"
	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	BaseHandler
	quizService    services.QuizService
	attemptService services.AttemptService
	validator      *validator.Validator
}

func NewQuizHandler(
	quizService services.QuizService,
	attemptService services.AttemptService,
	validator *validator.Validator,
	logger utils.Logger,
) *QuizHandler {
	return &QuizHandler{
		BaseHandler:    NewBaseHandler(logger),
		quizService:    quizService,
		attemptService: attemptService,
		validator:      validator,
	}
}

// CreateQuiz stores a new quiz definition
// @Summary Create quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Param quiz body services.CreateQuizRequest true "Quiz definition"
// @Success 201 {object} SuccessResponse{data=services.QuizResponse}
// @Failure 400 {object} ErrorResponse
// @Router /quizzes [post]
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	h.LogRequest(c, "Creating quiz")

	var req services.CreateQuizRequest
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

	quiz, err := h.quizService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Quiz created successfully", quiz, "quiz_id", quiz.ID)
}

// GetQuizSettings returns the effective settings for a quiz
// @Summary Get quiz settings
// @Tags quizzes
// @Produce json
// @Param quiz_id path uint true "Quiz ID"
// @Success 200 {object} services.QuizResponse
// @Failure 404 {object} ErrorResponse
// @Router /quizzes/{quiz_id}/settings [get]
func (h *QuizHandler) GetQuizSettings(c *gin.Context) {
	quizID := ParseUintParam(c, "quiz_id")
	if quizID == 0 {
		return
	}

	quiz, err := h.quizService.GetSettings(c.Request.Context(), quizID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// StartAttempt starts a new attempt at a quiz for the calling learner
// @Summary Start attempt
// @Tags attempts
// @Produce json
// @Param quiz_id path uint true "Quiz ID"
// @Param X-Learner-Session header string true "Learner session"
// @Success 201 {object} services.StartAttemptResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /quizzes/{quiz_id}/attempts [post]
func (h *QuizHandler) StartAttempt(c *gin.Context) {
	quizID := ParseUintParam(c, "quiz_id")
	if quizID == 0 {
		return
	}
	session := RequireLearnerSession(c)
	if session == "" {
		return
	}

	h.LogRequest(c, "Starting attempt", "quiz_id", quizID)

	attempt, err := h.attemptService.Start(c.Request.Context(), quizID, session)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, attempt)
}
