package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/SAP-F-2025/quiz-scoring-service/internal/models"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/repositories"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of repositories.Repository
type MockRepository struct {
	quiz    *MockQuizRepository
	attempt *MockAttemptRepository
}

func newMockRepository() *MockRepository {
	return &MockRepository{
		quiz:    &MockQuizRepository{},
		attempt: &MockAttemptRepository{},
	}
}

func (m *MockRepository) Quiz() repositories.QuizRepository {
	return m.quiz
}

func (m *MockRepository) Attempt() repositories.AttemptRepository {
	return m.attempt
}

// MockQuizRepository is a mock implementation of QuizRepository
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) GetByID(ctx context.Context, id uint) (*models.Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quiz), args.Error(1)
}

func (m *MockQuizRepository) Update(ctx context.Context, quiz *models.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

// MockAttemptRepository is a mock implementation of AttemptRepository
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) Create(ctx context.Context, attempt *models.QuizAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepository) GetByAttemptID(ctx context.Context, attemptID string) (*models.QuizAttempt, error) {
	args := m.Called(ctx, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuizAttempt), args.Error(1)
}

func (m *MockAttemptRepository) Complete(ctx context.Context, attempt *models.QuizAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepository) ListByLearner(ctx context.Context, learnerSession string, filters repositories.AttemptFilters) ([]*models.QuizAttempt, int64, error) {
	args := m.Called(ctx, learnerSession, filters)
	return args.Get(0).([]*models.QuizAttempt), args.Get(1).(int64), args.Error(2)
}

func (m *MockAttemptRepository) CountCompleted(ctx context.Context, quizID uint, learnerSession string) (int64, error) {
	args := m.Called(ctx, quizID, learnerSession)
	return args.Get(0).(int64), args.Error(1)
}

// MockProgressStore is a mock implementation of cache.ProgressStore
type MockProgressStore struct {
	mock.Mock
}

func (m *MockProgressStore) Save(ctx context.Context, progress *models.AttemptProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *MockProgressStore) Get(ctx context.Context, attemptID string) (*models.AttemptProgress, error) {
	args := m.Called(ctx, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AttemptProgress), args.Error(1)
}

func (m *MockProgressStore) Delete(ctx context.Context, attemptID string) error {
	args := m.Called(ctx, attemptID)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
