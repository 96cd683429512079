package handlers

import (
	"github.com/SAP-F-2025/quiz-scoring-service/internal/services"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/utils"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/validator"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	quizHandler    *QuizHandler
	attemptHandler *AttemptHandler
	scoringHandler *ScoringHandler
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	validator *validator.Validator,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		quizHandler:    NewQuizHandler(serviceManager.Quiz(), serviceManager.Attempt(), validator, logger),
		attemptHandler: NewAttemptHandler(serviceManager.Attempt(), logger),
		scoringHandler: NewScoringHandler(serviceManager.Scoring(), validator, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Quiz routes
		quizzes := v1.Group("/quizzes")
		{
			quizzes.POST("", hm.quizHandler.CreateQuiz)
			quizzes.GET("/:quiz_id/settings", hm.quizHandler.GetQuizSettings)
			quizzes.POST("/:quiz_id/attempts", hm.quizHandler.StartAttempt)
		}

		// Attempt routes
		attempts := v1.Group("/attempts")
		{
			attempts.GET("", hm.attemptHandler.ListAttempts)
			attempts.POST("/:attempt_id/progress", hm.attemptHandler.SaveProgress)
			attempts.GET("/:attempt_id/progress", hm.attemptHandler.GetProgress)
			attempts.POST("/:attempt_id/submit", hm.attemptHandler.SubmitAttempt)
			attempts.GET("/:attempt_id/report", hm.attemptHandler.DownloadReport)
		}

		// Stateless scoring
		scoring := v1.Group("/scoring")
		{
			scoring.POST("/evaluate", hm.scoringHandler.Evaluate)
		}
	}
}
