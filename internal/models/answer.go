package models

import (
	"encoding/json"
	"sort"
	"strconv"
)

// Answer is a learner's response to one question. The concrete variants are
// SingleChoice, MultiChoice, TrueFalseAnswer, BlankFills, MatchSelection and Malformed.
type Answer interface {
	answer()
}

// SingleChoice selects one option index.
type SingleChoice struct {
	Option int `json:"option"`
}

// MultiChoice selects a set of option indices. Duplicates are ignored by scoring.
type MultiChoice struct {
	Options []int `json:"options"`
}

// TrueFalseAnswer carries the literal string the learner submitted.
type TrueFalseAnswer struct {
	Value string `json:"value"`
}

// BlankFills holds one value per blank, in blank order.
type BlankFills struct {
	Values []string `json:"values"`
}

// MatchSelection maps a left index to the chosen right index, both as
// decimal strings. It may be partial.
type MatchSelection struct {
	Pairs map[string]string `json:"pairs"`
}

// Malformed is a value whose shape fits no variant for its question type.
// It always earns zero credit.
type Malformed struct {
	Raw any `json:"raw"`
}

func (SingleChoice) answer()    {}
func (MultiChoice) answer()     {}
func (TrueFalseAnswer) answer() {}
func (BlankFills) answer()      {}
func (MatchSelection) answer()  {}
func (Malformed) answer()       {}

// Submission maps original question index to the learner's answer. A missing
// key or a nil value means the question was skipped.
type Submission map[int]Answer

// RawAnswers keeps the JSON a learner submitted, by original question index.
type RawAnswers map[int]json.RawMessage

// Get returns the submitted JSON for index, or nil when none was kept.
func (r RawAnswers) Get(index int) json.RawMessage {
	if r == nil {
		return nil
	}
	return r[index]
}

// Get returns the answer for index, or nil when skipped.
func (s Submission) Get(index int) Answer {
	if s == nil {
		return nil
	}
	return s[index]
}

// Selected returns the distinct option indices of a choice answer in ascending order.
func Selected(a Answer) []int {
	var raw []int
	switch v := a.(type) {
	case SingleChoice:
		raw = []int{v.Option}
	case MultiChoice:
		raw = v.Options
	default:
		return nil
	}
	seen := make(map[int]struct{}, len(raw))
	out := make([]int, 0, len(raw))
	for _, o := range raw {
		if _, ok := seen[o]; ok {
			continue
		}
		seen[o] = struct{}{}
		out = append(out, o)
	}
	sort.Ints(out)
	return out
}

// MatchKey renders a column index the way MatchSelection keys and values are stored.
func MatchKey(i int) string {
	return strconv.Itoa(i)
}
