package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/quiz-scoring-service/internal/cache"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/config"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/handlers"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/scoring"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/selection"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/services"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/utils"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/validator"
	"github.com/SAP-F-2025/quiz-scoring-service/pkg"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.NewLogger("").LogError(err, "Failed to load configuration")
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.Environment)
	slogger := utils.ToSlogLogger(logger)

	if err := run(cfg, logger); err != nil {
		slogger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger utils.Logger) error {
	slogger := utils.ToSlogLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return err
	}
	if err := pkg.Migrate(db); err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	redisClient, err := pkg.NewRedisClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	progressStore := cache.NewProgressStore(cache.NewRedisCache(redisClient, slogger), cfg.ProgressTTL)

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		return err
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			slogger.Error("Failed to close event publisher", "error", err)
		}
	}()

	// Scoring
	v := validator.New()
	engine := scoring.NewEngine(v.Question(), scoring.WithLogger(slogger))
	repo := postgres.NewRepository(db)

	serviceManager := services.NewServiceManager(
		services.NewQuizService(repo, cfg.Quiz, slogger, v),
		services.NewAttemptService(repo, progressStore, publisher, engine, selection.NewSelector(), cfg.Quiz, slogger, v),
		services.NewScoringService(engine, cfg.Quiz, slogger, v),
	)

	// HTTP
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger, handlers.LearnerSessionHeader))
	router.Use(utils.ContextLogger(logger, handlers.LearnerSessionHeader))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept", "Origin", "X-Request-ID", handlers.LearnerSessionHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	handlers.NewHandlerManager(serviceManager, v, logger).SetupRoutes(router)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slogger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slogger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
