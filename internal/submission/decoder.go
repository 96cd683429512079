// Package submission turns a learner's serialized answers into the typed
// answer variants the scoring engine expects.
package submission

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/quiz-scoring-service/internal/models"
)

// maxListIndex bounds the integer keys of an object-shaped list. Larger keys
// make the answer malformed instead of sizing a slice by learner input.
const maxListIndex = 1024

// DecodeJSON decodes a JSON object keyed by original question index.
func DecodeJSON(data []byte, questions []models.IndexedQuestion) (models.Submission, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode answers: %w", err)
	}
	return Decode(raw, questions), nil
}

// Decode converts raw answers into a Submission. Keys that are not the index
// of one of the given questions are dropped. Null and empty-string values
// are treated as skipped. Values of the wrong shape become models.Malformed.
func Decode(raw map[string]json.RawMessage, questions []models.IndexedQuestion) models.Submission {
	sub, _ := DecodeWithRaw(raw, questions)
	return sub
}

// DecodeWithRaw is Decode that also returns the submitted JSON of every
// answer it kept, keyed the same way.
func DecodeWithRaw(raw map[string]json.RawMessage, questions []models.IndexedQuestion) (models.Submission, models.RawAnswers) {
	byIndex := make(map[int]models.Question, len(questions))
	for _, iq := range questions {
		byIndex[iq.Index] = iq.Question
	}

	sub := make(models.Submission, len(raw))
	kept := make(models.RawAnswers, len(raw))
	for key, value := range raw {
		index, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			continue
		}
		q, ok := byIndex[index]
		if !ok {
			continue
		}

		v, err := decodeValue(value)
		if err != nil || isEmpty(v) {
			continue
		}

		if answer := DecodeAnswer(q.Type, v); answer != nil {
			sub[index] = answer
			kept[index] = value
		}
	}
	return sub, kept
}

// DecodeAnswer maps a generic JSON value onto the answer variant for a question type.
func DecodeAnswer(questionType models.QuestionType, v any) models.Answer {
	if isEmpty(v) {
		return nil
	}

	switch questionType {
	case models.MultipleChoice:
		return decodeChoice(v)
	case models.TrueFalse:
		return decodeTrueFalse(v)
	case models.FillBlanks:
		return decodeBlankFills(v)
	case models.Matching:
		return decodeMatchSelection(v)
	default:
		return models.Malformed{Raw: v}
	}
}

func decodeChoice(v any) models.Answer {
	if list, ok := asList(v); ok {
		options := make([]int, 0, len(list))
		for _, item := range list {
			if item == nil {
				continue
			}
			o, ok := toInt(item)
			if !ok {
				return models.Malformed{Raw: v}
			}
			options = append(options, o)
		}
		return models.MultiChoice{Options: options}
	}

	if o, ok := toInt(v); ok {
		return models.SingleChoice{Option: o}
	}
	return models.Malformed{Raw: v}
}

func decodeTrueFalse(v any) models.Answer {
	switch val := v.(type) {
	case string:
		return models.TrueFalseAnswer{Value: val}
	case bool:
		return models.TrueFalseAnswer{Value: strconv.FormatBool(val)}
	default:
		return models.Malformed{Raw: v}
	}
}

func decodeBlankFills(v any) models.Answer {
	list, ok := asList(v)
	if !ok {
		return models.Malformed{Raw: v}
	}

	values := make([]string, len(list))
	for i, item := range list {
		switch val := item.(type) {
		case nil:
		case string:
			values[i] = val
		case json.Number:
			values[i] = val.String()
		case bool:
			values[i] = strconv.FormatBool(val)
		default:
			return models.Malformed{Raw: v}
		}
	}
	return models.BlankFills{Values: values}
}

func decodeMatchSelection(v any) models.Answer {
	pairs := make(map[string]string)

	add := func(left string, right any) {
		l, ok := toInt(left)
		if !ok {
			return
		}
		r, ok := toInt(right)
		if !ok {
			return
		}
		pairs[models.MatchKey(l)] = models.MatchKey(r)
	}

	switch val := v.(type) {
	case map[string]any:
		for left, right := range val {
			add(left, right)
		}
	case []any:
		for left, right := range val {
			add(strconv.Itoa(left), right)
		}
	default:
		return models.Malformed{Raw: v}
	}
	return models.MatchSelection{Pairs: pairs}
}

// asList accepts a JSON array, or an object whose keys are all integers
// (the shape form encoders produce for indexed fields), ordered by key.
func asList(v any) ([]any, bool) {
	switch val := v.(type) {
	case []any:
		return val, true
	case map[string]any:
		keys := make([]int, 0, len(val))
		byKey := make(map[int]any, len(val))
		for k, item := range val {
			i, err := strconv.Atoi(k)
			if err != nil || i < 0 || i > maxListIndex {
				return nil, false
			}
			keys = append(keys, i)
			byKey[i] = item
		}
		sort.Ints(keys)
		if len(keys) == 0 {
			return []any{}, true
		}
		list := make([]any, keys[len(keys)-1]+1)
		for _, k := range keys {
			list[k] = byKey[k]
		}
		return list, true
	default:
		return nil, false
	}
}

func toInt(v any) (int, bool) {
	switch val := v.(type) {
	case json.Number:
		return parseInt(val.String())
	case string:
		return parseInt(strings.TrimSpace(val))
	case float64:
		return floatToInt(val)
	case int:
		return val, true
	default:
		return 0, false
	}
}

func parseInt(s string) (int, bool) {
	if i, err := strconv.Atoi(s); err == nil {
		if i > math.MaxInt32 || i < math.MinInt32 {
			return 0, false
		}
		return i, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return floatToInt(f)
}

func floatToInt(f float64) (int, bool) {
	// Out-of-range float to int conversions are implementation-defined.
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func decodeValue(raw json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	default:
		return false
	}
}
