package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SAP-F-2025/quiz-scoring-service/internal/models"
)

const progressKeyPrefix = "quiz_progress:"

// ErrProgressNotFound means no progress was saved for the attempt, or it expired.
var ErrProgressNotFound = errors.New("progress not found")

// ProgressStore keeps in-progress answers for a limited time so a learner
// can resume an attempt.
type ProgressStore interface {
	Save(ctx context.Context, progress *models.AttemptProgress) error
	Get(ctx context.Context, attemptID string) (*models.AttemptProgress, error)
	Delete(ctx context.Context, attemptID string) error
}

type progressStore struct {
	cache CacheService
	ttl   time.Duration
	now   func() time.Time
}

func NewProgressStore(cache CacheService, ttl time.Duration) ProgressStore {
	return &progressStore{
		cache: cache,
		ttl:   ttl,
		now:   time.Now,
	}
}

func progressKey(attemptID string) string {
	return progressKeyPrefix + attemptID
}

func (s *progressStore) Save(ctx context.Context, progress *models.AttemptProgress) error {
	if progress.AttemptID == "" {
		return fmt.Errorf("attempt id is required")
	}

	progress.SavedAt = s.now()
	if err := s.cache.Set(ctx, progressKey(progress.AttemptID), progress, s.ttl); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

func (s *progressStore) Get(ctx context.Context, attemptID string) (*models.AttemptProgress, error) {
	var progress models.AttemptProgress
	if err := s.cache.Get(ctx, progressKey(attemptID), &progress); err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, ErrProgressNotFound
		}
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}
	return &progress, nil
}

func (s *progressStore) Delete(ctx context.Context, attemptID string) error {
	return s.cache.Delete(ctx, progressKey(attemptID))
}
