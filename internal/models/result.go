package models

import "encoding/json"

// Points is the outcome of scoring a single question.
type Points struct {
	Max    int `json:"max_points"`
	Earned int `json:"earned_points"`
}

// QuestionScore is the per-question line of a ScoringResult.
type QuestionScore struct {
	Index    int          `json:"question_index"`
	Type     QuestionType `json:"question_type"`
	Answered bool         `json:"answered"`
	Points
}

// FullCredit reports whether the question was answered and earned every point.
func (qs QuestionScore) FullCredit() bool {
	return qs.Answered && qs.Earned == qs.Max
}

type ScoringResult struct {
	TotalPoints              int             `json:"total_points"`
	EarnedPoints             int             `json:"earned_points"`
	ScorePercentage          float64         `json:"score_percentage"`
	CorrectFullQuestionCount int             `json:"correct_answers"`
	TotalQuestionCount       int             `json:"total_questions"`
	PassingScore             float64         `json:"passing_score"`
	Passed                   bool            `json:"passed"`
	Questions                []QuestionScore `json:"questions"`
}

// DetailedResult is one review line shown to a learner after submitting.
type DetailedResult struct {
	Index             int             `json:"question_index"`
	Type              QuestionType    `json:"question_type"`
	Prompt            string          `json:"question"`
	UserAnswerRaw     json.RawMessage `json:"user_answer_raw"`
	CorrectAnswerRaw  any             `json:"correct_answer_raw"`
	UserAnswerText    string          `json:"user_answer_text"`
	CorrectAnswerText string          `json:"correct_answer_text"`
	EarnedPoints      int             `json:"earned_points"`
	MaxPoints         int             `json:"max_points"`
	Correct           bool            `json:"correct"`
	PartialCredit     bool            `json:"partial_credit"`
	Skipped           bool            `json:"skipped"`

	Options        []string    `json:"options,omitempty"`
	CorrectAnswers []int       `json:"correct_answers,omitempty"`
	TextWithBlanks string      `json:"text_with_blanks,omitempty"`
	WordBank       []string    `json:"word_bank,omitempty"`
	LeftColumn     []string    `json:"left_column,omitempty"`
	RightColumn    []string    `json:"right_column,omitempty"`
	Matches        []MatchPair `json:"matches,omitempty"`
}
