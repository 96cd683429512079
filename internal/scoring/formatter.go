package scoring

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/quiz-scoring-service/internal/models"
)

// Display texts used when an answer has nothing to show.
const (
	NoAnswerText       = "No answer given"
	NoBlanksFilledText = "No blanks filled"
	NoMatchesText      = "No matches made"
	TrueText           = "True"
	FalseText          = "False"
)

// FormatterOptions overrides the display texts of review records. Empty
// fields fall back to the package defaults.
type FormatterOptions struct {
	NoAnswer       string
	NoBlanksFilled string
	NoMatches      string
	True           string
	False          string
}

func (o FormatterOptions) withDefaults() FormatterOptions {
	if o.NoAnswer == "" {
		o.NoAnswer = NoAnswerText
	}
	if o.NoBlanksFilled == "" {
		o.NoBlanksFilled = NoBlanksFilledText
	}
	if o.NoMatches == "" {
		o.NoMatches = NoMatchesText
	}
	if o.True == "" {
		o.True = TrueText
	}
	if o.False == "" {
		o.False = FalseText
	}
	return o
}

// Detail builds one review record per valid question, skipped ones included.
// raw supplies the submitted JSON echoed back as user_answer_raw and may be nil.
func (e *Engine) Detail(questions []models.IndexedQuestion, answers models.Submission, raw models.RawAnswers) []models.DetailedResult {
	results := make([]models.DetailedResult, 0, len(questions))

	for _, iq := range questions {
		q := iq.Question
		if !e.IsValid(q) {
			continue
		}

		answer := answers.Get(iq.Index)
		points := e.calculator.Calculate(q, answer)
		skipped := answer == nil
		correct := !skipped && points.Earned == points.Max

		detail := models.DetailedResult{
			Index:            iq.Index,
			Type:             q.Type,
			Prompt:           q.Prompt,
			CorrectAnswerRaw: correctAnswerRaw(q),
			EarnedPoints:     points.Earned,
			MaxPoints:        points.Max,
			Correct:          correct,
			PartialCredit:    points.Earned > 0 && !correct,
			Skipped:          skipped,
		}

		switch q.Type {
		case models.MultipleChoice:
			detail.Options = q.Options
			detail.CorrectAnswers = q.CorrectAnswers
		case models.FillBlanks:
			detail.TextWithBlanks = q.TextWithBlanks
			detail.WordBank = q.WordBank
		case models.Matching:
			detail.LeftColumn = q.LeftColumn
			detail.RightColumn = q.RightColumn
			detail.Matches = q.Matches
		}

		if skipped {
			detail.UserAnswerText = e.formatter.NoAnswer
		} else {
			detail.UserAnswerRaw = raw.Get(iq.Index)
			detail.UserAnswerText = e.FormatAnswer(q, answer)
		}
		detail.CorrectAnswerText = e.FormatCorrectAnswer(q)

		results = append(results, detail)
	}

	return results
}

// FormatAnswer renders a learner's answer as display text.
func (e *Engine) FormatAnswer(q models.Question, answer models.Answer) string {
	opts := e.formatter
	if answer == nil {
		return opts.NoAnswer
	}
	if _, malformed := answer.(models.Malformed); malformed && q.Type.IsKnown() {
		return opts.NoAnswer
	}

	switch q.Type {
	case models.MultipleChoice:
		return e.formatOptions(q, models.Selected(answer))

	case models.TrueFalse:
		tf, ok := answer.(models.TrueFalseAnswer)
		if !ok {
			return opts.NoAnswer
		}
		return e.formatBool(tf.Value)

	case models.FillBlanks:
		fills, ok := answer.(models.BlankFills)
		if !ok {
			return opts.NoAnswer
		}
		return e.formatFills(fills.Values)

	case models.Matching:
		selection, ok := answer.(models.MatchSelection)
		if !ok {
			return opts.NoMatches
		}
		pairs := make([]models.MatchPair, 0, len(selection.Pairs))
		for left, right := range selection.Pairs {
			l, errL := strconv.Atoi(left)
			r, errR := strconv.Atoi(right)
			if errL != nil || errR != nil {
				continue
			}
			pairs = append(pairs, models.MatchPair{Left: l, Right: r})
		}
		return e.formatPairs(q, pairs)

	default:
		return formatGeneric(answer, opts.NoAnswer)
	}
}

// FormatCorrectAnswer renders the question's answer key as display text.
func (e *Engine) FormatCorrectAnswer(q models.Question) string {
	switch q.Type {
	case models.MultipleChoice:
		return e.formatOptions(q, q.CorrectAnswers)
	case models.TrueFalse:
		return e.formatBool(q.CorrectAnswer)
	case models.FillBlanks:
		expected := q.WordBank
		if n := q.BlankCount(); n < len(expected) {
			expected = expected[:n]
		}
		return e.formatFills(expected)
	case models.Matching:
		return e.formatPairs(q, q.Matches)
	default:
		return e.formatter.NoAnswer
	}
}

func (e *Engine) formatOptions(q models.Question, indices []int) string {
	texts := make([]string, 0, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(q.Options) {
			texts = append(texts, q.Options[i])
		}
	}
	if len(texts) == 0 {
		return e.formatter.NoAnswer
	}
	return strings.Join(texts, ", ")
}

func (e *Engine) formatBool(value string) string {
	switch value {
	case "true":
		return e.formatter.True
	case "false":
		return e.formatter.False
	default:
		return e.formatter.NoAnswer
	}
}

func (e *Engine) formatFills(values []string) string {
	filled := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			filled = append(filled, v)
		}
	}
	if len(filled) == 0 {
		return e.formatter.NoBlanksFilled
	}
	return strings.Join(filled, ", ")
}

// formatPairs renders "left → right" lines sorted lexically and joined by "; ".
// Pairs pointing outside either column are dropped.
func (e *Engine) formatPairs(q models.Question, pairs []models.MatchPair) string {
	lines := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if p.Left < 0 || p.Left >= len(q.LeftColumn) || p.Right < 0 || p.Right >= len(q.RightColumn) {
			continue
		}
		lines = append(lines, q.LeftColumn[p.Left]+" → "+q.RightColumn[p.Right])
	}
	if len(lines) == 0 {
		return e.formatter.NoMatches
	}
	sort.Strings(lines)
	return strings.Join(lines, "; ")
}

func formatGeneric(answer models.Answer, empty string) string {
	switch v := answer.(type) {
	case models.SingleChoice:
		return strconv.Itoa(v.Option)
	case models.MultiChoice:
		parts := make([]string, len(v.Options))
		for i, o := range v.Options {
			parts[i] = strconv.Itoa(o)
		}
		if len(parts) == 0 {
			return empty
		}
		return strings.Join(parts, ", ")
	case models.TrueFalseAnswer:
		return v.Value
	case models.BlankFills:
		if len(v.Values) == 0 {
			return empty
		}
		return strings.Join(v.Values, ", ")
	case models.Malformed:
		if v.Raw == nil {
			return empty
		}
		return fmt.Sprint(v.Raw)
	default:
		return empty
	}
}

func correctAnswerRaw(q models.Question) any {
	switch q.Type {
	case models.MultipleChoice:
		return q.CorrectAnswers
	case models.TrueFalse:
		return q.CorrectAnswer
	case models.FillBlanks:
		return q.WordBank
	case models.Matching:
		return q.Matches
	default:
		return nil
	}
}
