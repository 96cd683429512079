package services

import (
	"context"
	"testing"

	"github.com/SAP-F-2025/quiz-scoring-service/internal/models"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/scoring"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScoringService() ScoringService {
	v := validator.New()
	return NewScoringService(scoring.NewEngine(v.Question()), defaultSettings(), discardLogger(), v)
}

func TestScoringService_Evaluate(t *testing.T) {
	svc := newScoringService()
	passing := 50.0

	resp, err := svc.Evaluate(context.Background(), &EvaluateRequest{
		Questions: sampleQuiz().Questions,
		Answers: rawAnswers(map[string]string{
			"0": `[1]`,
			"3": `{"0": "sky", "1": "red"}`,
		}),
		PassingScore:   &passing,
		IncludeDetails: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, resp.Result.TotalPoints)
	assert.Equal(t, 2, resp.Result.EarnedPoints)
	assert.Equal(t, 50.0, resp.Result.ScorePercentage)
	assert.True(t, resp.Result.Passed)
	assert.Equal(t, 3, resp.Result.TotalQuestionCount)

	require.Len(t, resp.Details, 3)
	assert.True(t, resp.Details[0].Correct)
	assert.True(t, resp.Details[1].Skipped)
	assert.True(t, resp.Details[2].PartialCredit)
}

func TestScoringService_EvaluateDefaultsPassingScore(t *testing.T) {
	svc := newScoringService()

	resp, err := svc.Evaluate(context.Background(), &EvaluateRequest{
		Questions: []models.Question{{Type: models.TrueFalse, Prompt: "ok", CorrectAnswer: "false"}},
		Answers:   rawAnswers(map[string]string{"0": `false`}),
	})
	require.NoError(t, err)
	assert.Equal(t, 70.0, resp.Result.PassingScore)
	assert.True(t, resp.Result.Passed)
	assert.Nil(t, resp.Details)
}

func TestScoringService_EvaluateRequiresQuestions(t *testing.T) {
	_, err := newScoringService().Evaluate(context.Background(), &EvaluateRequest{})
	assert.True(t, IsValidation(err))
}
