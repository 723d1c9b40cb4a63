package evaluator

import (
	"context"
	"strings"
	"unicode"
)

// Static is an offline Evaluator that scores by lexical overlap with the
// reference answer. It backs demo mode when no LLM provider is configured;
// the scoring is crude but deterministic.
type Static struct{}

// NewStatic creates the offline evaluator.
func NewStatic() *Static {
	return &Static{}
}

// Evaluate scores by the fraction of reference answer terms present in the
// candidate's answer. Answers in the partial band get a canned follow-up so
// the full interview flow is exercised offline.
func (s *Static) Evaluate(_ context.Context, _, answerText, correctAnswer string) (*Result, error) {
	ref := termSet(correctAnswer)
	if len(ref) == 0 {
		return Neutral(), nil
	}

	got := termSet(answerText)
	matched := 0
	for term := range ref {
		if got[term] {
			matched++
		}
	}
	score := float64(matched) / float64(len(ref))

	r := &Result{Score: score}
	switch {
	case score >= 0.75:
		r.Feedback = "Your answer covers the key points of the expected response."
	case score >= 0.3:
		r.Feedback = "Your answer is on the right track but misses some key points."
		r.FollowUp = "Can you elaborate with a concrete example?"
	default:
		r.Feedback = "Your answer misses the key points of the expected response."
	}
	return r, nil
}

// stopwords excluded from term matching. Short function words would inflate
// overlap scores.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "in": true, "is": true,
	"it": true, "of": true, "on": true, "or": true, "that": true, "the": true,
	"to": true, "with": true,
}

func termSet(text string) map[string]bool {
	out := make(map[string]bool)
	for _, word := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	}) {
		if len(word) < 2 || stopwords[word] {
			continue
		}
		out[word] = true
	}
	return out
}
