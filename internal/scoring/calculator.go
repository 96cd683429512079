package scoring

import (
	"strings"

	"github.com/SAP-F-2025/quiz-scoring-service/internal/models"
)

// ZeroCredit is what a question of an unrecognized type is worth: one
// possible point, none earned.
var ZeroCredit = models.Points{Max: 1, Earned: 0}

// Strategy scores one question type.
type Strategy interface {
	// MaxPoints is the question's weight. It never depends on the answer.
	MaxPoints(q models.Question) int
	// Earned is the credit for a non-nil answer, in [0, MaxPoints].
	Earned(q models.Question, answer models.Answer) int
}

// Calculator routes by question type to the matching Strategy.
type Calculator struct {
	strategies map[models.QuestionType]Strategy
}

// NewCalculator installs the built-in strategies.
func NewCalculator() *Calculator {
	return &Calculator{
		strategies: map[models.QuestionType]Strategy{
			models.MultipleChoice: multipleChoiceStrategy{},
			models.TrueFalse:      trueFalseStrategy{},
			models.FillBlanks:     fillBlanksStrategy{},
			models.Matching:       matchingStrategy{},
		},
	}
}

var defaultCalculator = NewCalculator()

// CalculatePoints scores a single answer with the built-in strategies.
func CalculatePoints(q models.Question, answer models.Answer) models.Points {
	return defaultCalculator.Calculate(q, answer)
}

// MaxPoints returns the weight of a question regardless of any answer.
func (c *Calculator) MaxPoints(q models.Question) int {
	s, ok := c.strategies[q.Type]
	if !ok {
		return ZeroCredit.Max
	}
	return s.MaxPoints(q)
}

// Calculate scores an answer. A nil answer earns nothing against the
// question's full weight.
func (c *Calculator) Calculate(q models.Question, answer models.Answer) models.Points {
	s, ok := c.strategies[q.Type]
	if !ok {
		return ZeroCredit
	}

	points := models.Points{Max: s.MaxPoints(q)}
	if answer == nil {
		return points
	}
	if _, malformed := answer.(models.Malformed); malformed {
		return points
	}

	points.Earned = clamp(s.Earned(q, answer), 0, points.Max)
	return points
}

// --- Strategies ---

type multipleChoiceStrategy struct{}

func (multipleChoiceStrategy) MaxPoints(q models.Question) int {
	if len(q.CorrectAnswers) <= 1 {
		return 1
	}
	return len(q.CorrectAnswers)
}

func (multipleChoiceStrategy) Earned(q models.Question, answer models.Answer) int {
	selected := models.Selected(answer)
	if selected == nil {
		return 0
	}

	if !q.IsMultiSelect() {
		if len(q.CorrectAnswers) == 0 || len(selected) != 1 {
			return 0
		}
		if selected[0] == q.CorrectAnswers[0] {
			return 1
		}
		return 0
	}

	correct := toSet(q.CorrectAnswers)
	hits, misses := 0, 0
	for _, o := range selected {
		if _, ok := correct[o]; ok {
			hits++
		} else {
			misses++
		}
	}
	// Unselected correct options are not penalized.
	return max(0, hits-misses)
}

type trueFalseStrategy struct{}

func (trueFalseStrategy) MaxPoints(models.Question) int { return 1 }

func (trueFalseStrategy) Earned(q models.Question, answer models.Answer) int {
	tf, ok := answer.(models.TrueFalseAnswer)
	if !ok {
		return 0
	}
	if tf.Value == q.CorrectAnswer {
		return 1
	}
	return 0
}

type fillBlanksStrategy struct{}

func (fillBlanksStrategy) MaxPoints(q models.Question) int {
	return max(1, q.BlankCount())
}

func (fillBlanksStrategy) Earned(q models.Question, answer models.Answer) int {
	fills, ok := answer.(models.BlankFills)
	if !ok {
		return 0
	}

	blanks := q.BlankCount()
	earned := 0
	for i := 0; i < blanks && i < len(q.WordBank); i++ {
		var given string
		if i < len(fills.Values) {
			given = fills.Values[i]
		}
		if normalize(given) == normalize(q.WordBank[i]) {
			earned++
		}
	}
	return earned
}

type matchingStrategy struct{}

func (matchingStrategy) MaxPoints(q models.Question) int {
	return max(1, len(q.Matches))
}

func (matchingStrategy) Earned(q models.Question, answer models.Answer) int {
	selection, ok := answer.(models.MatchSelection)
	if !ok {
		return 0
	}

	earned := 0
	for _, pair := range q.Matches {
		right, ok := selection.Pairs[models.MatchKey(pair.Left)]
		if ok && right == models.MatchKey(pair.Right) {
			earned++
		}
	}
	return earned
}

// --- helpers ---

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func toSet(xs []int) map[int]struct{} {
	m := make(map[int]struct{}, len(xs))
	for _, x := range xs {
		m[x] = struct{}{}
	}
	return m
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
