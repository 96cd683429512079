package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ServiceLogger provides structured logging for service layer operations
type ServiceLogger struct {
	logger *slog.Logger
}

func NewServiceLogger(logger *slog.Logger, service string) *ServiceLogger {
	return &ServiceLogger{
		logger: logger.With("service", service),
	}
}

// ===== OPERATION LOGGING =====

// LogOperation logs the outcome of one operation. Expected failures such as
// validation or not-found are logged below error level.
func (l *ServiceLogger) LogOperation(ctx context.Context, operation, learnerSession, resourceID string, duration time.Duration, err error) {
	level := slog.LevelInfo
	status := "success"

	if err != nil {
		level = slog.LevelError
		status = "error"

		switch {
		case IsValidation(err) || IsBusinessRule(err):
			level = slog.LevelWarn
			status = "validation_error"
		case IsUnauthorized(err):
			level = slog.LevelWarn
			status = "unauthorized"
		case IsConflict(err):
			level = slog.LevelWarn
			status = "conflict"
		case IsNotFound(err):
			status = "not_found"
		}
	}

	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("learner_session", learnerSession),
		slog.String("resource_id", resourceID),
		slog.String("status", status),
		slog.Duration("duration", duration),
	}

	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))

		var validationErrs ValidationErrors
		var businessErr *BusinessRuleError
		if errors.As(err, &validationErrs) {
			attrs = append(attrs, slog.Int("validation_errors_count", len(validationErrs)))
		} else if errors.As(err, &businessErr) {
			attrs = append(attrs, slog.String("business_rule", businessErr.Rule))
		}
	}

	l.logger.LogAttrs(ctx, level, fmt.Sprintf("%s operation %s", operation, status), attrs...)
}

// ContextualLogger times one operation and logs its result
type ContextualLogger struct {
	logger         *ServiceLogger
	operation      string
	learnerSession string
	startTime      time.Time
	ctx            context.Context
}

func (l *ServiceLogger) WithOperation(ctx context.Context, operation, learnerSession string) *ContextualLogger {
	return &ContextualLogger{
		logger:         l,
		operation:      operation,
		learnerSession: learnerSession,
		startTime:      time.Now(),
		ctx:            ctx,
	}
}

func (cl *ContextualLogger) LogResult(resourceID string, err error) {
	cl.logger.LogOperation(cl.ctx, cl.operation, cl.learnerSession, resourceID, time.Since(cl.startTime), err)
}
