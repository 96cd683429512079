package scoring

import (
	"log/slog"
	"math"

	"github.com/SAP-F-2025/quiz-scoring-service/internal/models"
	"github.com/SAP-F-2025/quiz-scoring-service/internal/validator"
)

// Engine aggregates per-question points into attempt results and review
// records. It holds no attempt state and is safe for concurrent use.
type Engine struct {
	calculator *Calculator
	questions  *validator.QuestionValidator
	formatter  FormatterOptions
	logger     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for per-question debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithFormatterOptions overrides the review display texts.
func WithFormatterOptions(opts FormatterOptions) Option {
	return func(e *Engine) { e.formatter = opts.withDefaults() }
}

func NewEngine(questions *validator.QuestionValidator, opts ...Option) *Engine {
	e := &Engine{
		calculator: defaultCalculator,
		questions:  questions,
		formatter:  FormatterOptions{}.withDefaults(),
		logger:     slog.Default(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Calculator returns the engine's point calculator.
func (e *Engine) Calculator() *Calculator {
	return e.calculator
}

// IsValid reports whether a question counts toward totals.
func (e *Engine) IsValid(q models.Question) bool {
	return e.questions.IsValid(q)
}

// ValidQuestions filters out questions that cannot be scored, keeping order.
func (e *Engine) ValidQuestions(questions []models.IndexedQuestion) []models.IndexedQuestion {
	valid := make([]models.IndexedQuestion, 0, len(questions))
	for _, iq := range questions {
		if e.IsValid(iq.Question) {
			valid = append(valid, iq)
		}
	}
	return valid
}

// Aggregate scores a submission against the questions that were presented.
// Invalid questions are skipped entirely; skipped answers still count
// toward total points.
func (e *Engine) Aggregate(questions []models.IndexedQuestion, answers models.Submission, passingScore float64) models.ScoringResult {
	result := models.ScoringResult{
		PassingScore: passingScore,
		Questions:    make([]models.QuestionScore, 0, len(questions)),
	}

	for _, iq := range questions {
		if !e.IsValid(iq.Question) {
			e.logger.Debug("Skipping invalid question", "question_index", iq.Index, "question_type", iq.Question.Type)
			continue
		}

		answer := answers.Get(iq.Index)
		score := models.QuestionScore{
			Index:    iq.Index,
			Type:     iq.Question.Type,
			Answered: answer != nil,
			Points:   e.calculator.Calculate(iq.Question, answer),
		}

		result.TotalQuestionCount++
		result.TotalPoints += score.Max
		result.EarnedPoints += score.Earned
		if score.FullCredit() {
			result.CorrectFullQuestionCount++
		}
		result.Questions = append(result.Questions, score)

		e.logger.Debug("Scored question",
			"question_index", iq.Index,
			"question_type", iq.Question.Type,
			"answered", score.Answered,
			"earned_points", score.Earned,
			"max_points", score.Max)
	}

	if result.TotalPoints > 0 {
		result.ScorePercentage = roundTo(float64(result.EarnedPoints)/float64(result.TotalPoints)*100, 2)
	}
	result.Passed = result.ScorePercentage >= passingScore

	return result
}

func roundTo(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
