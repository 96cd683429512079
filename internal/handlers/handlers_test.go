package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SAP-F-2025/quiz-scoring-service/internal/models"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/services"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/utils"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ===== SERVICE MOCKS =====

type MockQuizService struct {
	mock.Mock
}

func (m *MockQuizService) Create(ctx context.Context, req *services.CreateQuizRequest) (*services.QuizResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.QuizResponse), args.Error(1)
}

func (m *MockQuizService) GetSettings(ctx context.Context, quizID uint) (*services.QuizResponse, error) {
	args := m.Called(ctx, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.QuizResponse), args.Error(1)
}

type MockAttemptService struct {
	mock.Mock
}

func (m *MockAttemptService) Start(ctx context.Context, quizID uint, learnerSession string) (*services.StartAttemptResponse, error) {
	args := m.Called(ctx, quizID, learnerSession)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.StartAttemptResponse), args.Error(1)
}

func (m *MockAttemptService) SaveProgress(ctx context.Context, attemptID, learnerSession string, req *services.SaveProgressRequest) (*models.AttemptProgress, error) {
	args := m.Called(ctx, attemptID, learnerSession, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AttemptProgress), args.Error(1)
}

func (m *MockAttemptService) GetProgress(ctx context.Context, attemptID, learnerSession string) (*models.AttemptProgress, error) {
	args := m.Called(ctx, attemptID, learnerSession)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AttemptProgress), args.Error(1)
}

func (m *MockAttemptService) Submit(ctx context.Context, attemptID, learnerSession string, req *services.SubmitAttemptRequest) (*services.SubmitAttemptResponse, error) {
	args := m.Called(ctx, attemptID, learnerSession, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SubmitAttemptResponse), args.Error(1)
}

func (m *MockAttemptService) List(ctx context.Context, learnerSession string, filters repositories.AttemptFilters) (*services.AttemptListResponse, error) {
	args := m.Called(ctx, learnerSession, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AttemptListResponse), args.Error(1)
}

func (m *MockAttemptService) ExportReport(ctx context.Context, attemptID, learnerSession string) (*services.AttemptReport, error) {
	args := m.Called(ctx, attemptID, learnerSession)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AttemptReport), args.Error(1)
}

type MockScoringService struct {
	mock.Mock
}

func (m *MockScoringService) Evaluate(ctx context.Context, req *services.EvaluateRequest) (*services.EvaluateResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.EvaluateResponse), args.Error(1)
}

// ===== TEST ROUTER =====

type testServer struct {
	router   *gin.Engine
	quizzes  *MockQuizService
	attempts *MockAttemptService
	scoring  *MockScoringService
}

func newTestServer() *testServer {
	gin.SetMode(gin.TestMode)

	s := &testServer{
		router:   gin.New(),
		quizzes:  &MockQuizService{},
		attempts: &MockAttemptService{},
		scoring:  &MockScoringService{},
	}

	logger := utils.NewLoggerWithWriter(io.Discard, "test")
	s.router.Use(utils.ContextLogger(logger, LearnerSessionHeader))
	manager := services.NewServiceManager(s.quizzes, s.attempts, s.scoring)
	NewHandlerManager(manager, validator.New(), logger).SetupRoutes(s.router)
	return s
}

func (s *testServer) do(method, path, session string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != "" {
		req.Header.Set(LearnerSessionHeader, session)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// ===== TESTS =====

func TestHealthCheck(t *testing.T) {
	s := newTestServer()

	w := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestQuizHandler_GetQuizSettings(t *testing.T) {
	s := newTestServer()
	s.quizzes.On("GetSettings", mock.Anything, uint(3)).Return(&services.QuizResponse{ID: 3, Title: "Q"}, nil)
	s.quizzes.On("GetSettings", mock.Anything, uint(4)).Return(nil, services.ErrQuizNotFound)

	w := s.do(http.MethodGet, "/api/v1/quizzes/3/settings", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/v1/quizzes/4/settings", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Quiz not found", decodeError(t, w).Message)

	w = s.do(http.MethodGet, "/api/v1/quizzes/abc/settings", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuizHandler_CreateQuizValidation(t *testing.T) {
	s := newTestServer()

	w := s.do(http.MethodPost, "/api/v1/quizzes", "", map[string]interface{}{
		"title":     "",
		"questions": []interface{}{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation failed", decodeError(t, w).Message)
	s.quizzes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestQuizHandler_StartAttempt(t *testing.T) {
	s := newTestServer()
	s.attempts.On("Start", mock.Anything, uint(3), "learner-1").
		Return(&services.StartAttemptResponse{AttemptID: "att-1", QuizID: 3, TotalQuestions: 2}, nil)

	w := s.do(http.MethodPost, "/api/v1/quizzes/3/attempts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/v1/quizzes/3/attempts", "learner-1", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp services.StartAttemptResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "att-1", resp.AttemptID)
}

func TestQuizHandler_StartAttemptRetake(t *testing.T) {
	s := newTestServer()
	s.attempts.On("Start", mock.Anything, uint(3), "learner-1").Return(nil, services.ErrRetakeNotAllowed)

	w := s.do(http.MethodPost, "/api/v1/quizzes/3/attempts", "learner-1", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAttemptHandler_SubmitAttempt(t *testing.T) {
	s := newTestServer()
	s.attempts.On("Submit", mock.Anything, "att-1", "learner-1", mock.MatchedBy(func(req *services.SubmitAttemptRequest) bool {
		return string(req.Answers["0"]) == "1"
	})).Return(&services.SubmitAttemptResponse{
		AttemptID: "att-1",
		Result:    models.ScoringResult{TotalPoints: 2, EarnedPoints: 1, ScorePercentage: 50},
	}, nil)

	w := s.do(http.MethodPost, "/api/v1/attempts/att-1/submit", "learner-1", map[string]interface{}{
		"answers": map[string]interface{}{"0": 1},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp services.SubmitAttemptResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 50.0, resp.Result.ScorePercentage)
}

func TestAttemptHandler_SubmitAttemptWithoutBody(t *testing.T) {
	s := newTestServer()
	s.attempts.On("Submit", mock.Anything, "att-1", "learner-1", &services.SubmitAttemptRequest{}).
		Return(&services.SubmitAttemptResponse{AttemptID: "att-1"}, nil)

	w := s.do(http.MethodPost, "/api/v1/attempts/att-1/submit", "learner-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	s.attempts.AssertExpectations(t)
}

func TestAttemptHandler_SubmitAttemptErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", services.ErrAttemptNotFound, http.StatusNotFound},
		{"other learner", services.ErrAttemptAccessDenied, http.StatusForbidden},
		{"already submitted", services.ErrAttemptAlreadySubmitted, http.StatusConflict},
		{"time expired", &services.BusinessRuleError{Rule: "time_limit", Message: "expired", Err: services.ErrAttemptTimeExpired}, http.StatusUnprocessableEntity},
		{"validation", services.ValidationErrors{{Field: "answers", Message: "bad"}}, http.StatusBadRequest},
		{"unexpected", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer()
			s.attempts.On("Submit", mock.Anything, "att-1", "learner-1", mock.Anything).Return(nil, tt.err)

			w := s.do(http.MethodPost, "/api/v1/attempts/att-1/submit", "learner-1", map[string]interface{}{})
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAttemptHandler_Progress(t *testing.T) {
	s := newTestServer()
	s.attempts.On("SaveProgress", mock.Anything, "att-1", "learner-1", mock.MatchedBy(func(req *services.SaveProgressRequest) bool {
		return req.CurrentQuestion == 1
	})).Return(&models.AttemptProgress{AttemptID: "att-1", CurrentQuestion: 1}, nil)
	s.attempts.On("SaveProgress", mock.Anything, "att-1", "learner-1", mock.MatchedBy(func(req *services.SaveProgressRequest) bool {
		return req.CurrentQuestion < 0
	})).Return(nil, services.ValidationErrors{{Field: "current_question", Message: "must be at least 0"}}).Once()
	s.attempts.On("GetProgress", mock.Anything, "att-1", "learner-1").Return(nil, services.ErrProgressNotFound)

	w := s.do(http.MethodPost, "/api/v1/attempts/att-1/progress", "learner-1", map[string]interface{}{
		"current_question": 1,
		"answers":          map[string]interface{}{"0": []int{1, 2}},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/api/v1/attempts/att-1/progress", "learner-1", map[string]interface{}{
		"current_question": -2,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "current_question")

	w = s.do(http.MethodGet, "/api/v1/attempts/att-1/progress", "learner-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAttemptHandler_ListAttempts(t *testing.T) {
	s := newTestServer()
	status := models.AttemptStatusCompleted
	s.attempts.On("List", mock.Anything, "learner-1", repositories.AttemptFilters{
		Status:    &status,
		Limit:     5,
		Offset:    5,
		SortBy:    "score",
		SortOrder: "desc",
	}).Return(&services.AttemptListResponse{Total: 7, Limit: 5, Offset: 5}, nil)

	w := s.do(http.MethodGet, "/api/v1/attempts?page=2&size=5&status=completed&sort_by=score&sort_order=desc", "learner-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	s.attempts.AssertExpectations(t)
}

func TestAttemptHandler_DownloadReport(t *testing.T) {
	s := newTestServer()
	s.attempts.On("ExportReport", mock.Anything, "att-1", "learner-1").
		Return(&services.AttemptReport{Filename: "report.xlsx", Content: []byte("xlsx")}, nil)

	w := s.do(http.MethodGet, "/api/v1/attempts/att-1/report", "learner-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=report.xlsx", w.Header().Get("Content-Disposition"))
	assert.Equal(t, "xlsx", w.Body.String())
}

func TestScoringHandler_Evaluate(t *testing.T) {
	s := newTestServer()
	s.scoring.On("Evaluate", mock.Anything, mock.AnythingOfType("*services.EvaluateRequest")).
		Return(&services.EvaluateResponse{Result: models.ScoringResult{TotalPoints: 1, EarnedPoints: 1, ScorePercentage: 100, Passed: true}}, nil)

	w := s.do(http.MethodPost, "/api/v1/scoring/evaluate", "", map[string]interface{}{
		"questions": []map[string]interface{}{
			{"type": "true_false", "question": "Sky is blue", "correct_answer": "true"},
		},
		"answers": map[string]interface{}{"0": true},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp services.EvaluateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Result.Passed)

	w = s.do(http.MethodPost, "/api/v1/scoring/evaluate", "", map[string]interface{}{"questions": []interface{}{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
