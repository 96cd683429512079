package models

import "strings"

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	FillBlanks     QuestionType = "fill_blanks"
	Matching       QuestionType = "matching"
)

// BlankMarker is the placeholder a fill-in-the-blanks text uses for each gap.
const BlankMarker = "{{blank}}"

// KnownQuestionTypes lists every type the scoring engine has a strategy for.
var KnownQuestionTypes = []QuestionType{MultipleChoice, TrueFalse, FillBlanks, Matching}

func (t QuestionType) IsKnown() bool {
	for _, known := range KnownQuestionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// MatchPair links a left column index to a right column index.
type MatchPair struct {
	Left  int `json:"left"`
	Right int `json:"right"`
}

// Question is a single quiz item. Only the fields belonging to Type are meaningful.
type Question struct {
	Type   QuestionType `json:"type" validate:"required,question_type"`
	Prompt string       `json:"question" validate:"required"`

	// Multiple choice
	Options        []string `json:"options,omitempty"`
	CorrectAnswers []int    `json:"correct_answers,omitempty"`

	// True / false: "true" or "false"
	CorrectAnswer string `json:"correct_answer,omitempty"`

	// Fill in the blanks
	TextWithBlanks string   `json:"text_with_blanks,omitempty"`
	WordBank       []string `json:"word_bank,omitempty"`

	// Matching
	LeftColumn  []string    `json:"left_column,omitempty"`
	RightColumn []string    `json:"right_column,omitempty"`
	Matches     []MatchPair `json:"matches,omitempty"`
}

// IsMultiSelect reports whether a multiple choice question has more than one correct option.
func (q Question) IsMultiSelect() bool {
	return len(q.CorrectAnswers) > 1
}

// BlankCount returns the number of blank markers in TextWithBlanks.
func (q Question) BlankCount() int {
	return strings.Count(q.TextWithBlanks, BlankMarker)
}

// Public returns a copy of the question with every answer key removed,
// suitable for sending to a learner during an attempt.
func (q Question) Public() Question {
	public := q
	public.CorrectAnswers = nil
	public.CorrectAnswer = ""
	public.Matches = nil
	return public
}

// IndexedQuestion pairs a question with its position in the original quiz
// definition. Answers are always keyed by this index.
type IndexedQuestion struct {
	Index    int      `json:"index"`
	Question Question `json:"question"`
}

// Indexed pairs every question of a bank with its position.
func Indexed(questions []Question) []IndexedQuestion {
	out := make([]IndexedQuestion, len(questions))
	for i, q := range questions {
		out[i] = IndexedQuestion{Index: i, Question: q}
	}
	return out
}
