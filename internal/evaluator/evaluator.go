// Package evaluator scores free-text interview answers. The production
// implementation delegates to an LLM provider; the controller only sees the
// Evaluator interface and a numeric result.
package evaluator

import "context"

// Result is the evaluator's judgment of one answer.
type Result struct {
	// Score is the accuracy estimate in [0,1].
	Score float64

	// Feedback is constructive prose shown to the candidate.
	Feedback string

	// FollowUp is an optional secondary question, offered when the answer
	// shows partial understanding. Empty when none was generated.
	FollowUp string
}

// Evaluator scores an answer against the corpus correct answer.
type Evaluator interface {
	// Evaluate returns a Result or an error. Implementations must fail
	// soft on malformed model output: a response that cannot be parsed
	// yields a neutral Result, not an error. Errors are reserved for the
	// provider being unreachable.
	Evaluate(ctx context.Context, questionText, answerText, correctAnswer string) (*Result, error)
}

// Neutral is the substitute result used when evaluation output is
// unusable: the answer is recorded with a middle score so the interview
// keeps moving.
func Neutral() *Result {
	return &Result{
		Score:    0.5,
		Feedback: "evaluation unavailable",
	}
}
