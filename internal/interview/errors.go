package interview

import "errors"

var (
	// ErrRepositoryExhausted means no eligible question exists at any
	// complexity level after the full fallback search. Terminal for the
	// session; never retried.
	ErrRepositoryExhausted = errors.New("question repository exhausted")

	// ErrDuplicateSubmission means an answer for the current question
	// instance is already being scored. The duplicate is rejected with no
	// state change.
	ErrDuplicateSubmission = errors.New("submission already in progress")

	// ErrSessionComplete means the session has resolved its question limit
	// and accepts no further cycles.
	ErrSessionComplete = errors.New("session is complete")

	// ErrNoActiveQuestion means Submit was called outside the
	// QuestionActive phase.
	ErrNoActiveQuestion = errors.New("no active question")

	// ErrNoPendingFollowUp means SubmitFollowUp was called outside the
	// FollowUpActive phase.
	ErrNoPendingFollowUp = errors.New("no pending follow-up")
)
