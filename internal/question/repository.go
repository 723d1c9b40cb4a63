package question

import "errors"

// ErrNoQuestion signals that no eligible question exists for the requested
// (role, complexity) once exclusions are applied. This is a normal outcome
// for an exhausted pool, not a failure; the session controller's fallback
// policy decides what happens next.
var ErrNoQuestion = errors.New("no eligible question for role and complexity")

// Repository serves questions from the corpus.
type Repository interface {
	// Sample returns a uniformly random question for the role at the given
	// complexity whose ID is not in exclude. Returns ErrNoQuestion when the
	// remaining pool is empty. No ordering guarantee beyond uniformity.
	Sample(role Role, complexity int, exclude map[string]bool) (*Question, error)
}
