package interview

import (
	"time"

	itv "github.com/abhisek/prescreen/internal/interview"
	"github.com/abhisek/prescreen/internal/question"
)

// questionReadyMsg is sent when the next question has been sampled.
type questionReadyMsg struct {
	Question *question.Question
	Err      error
}

// outcomeMsg is sent when an answer has been scored.
type outcomeMsg struct {
	Outcome *itv.Outcome
	Err     error
}

// followUpOutcomeMsg is sent when a follow-up answer has been scored.
type followUpOutcomeMsg struct {
	Outcome *itv.FollowUpOutcome
	Err     error
}

// timerTickMsg is sent every second to refresh the countdown and poll for
// expiry.
type timerTickMsg time.Time

// feedbackDoneMsg is sent when the candidate dismisses the feedback overlay.
type feedbackDoneMsg struct{}

// interviewEndMsg is sent to trigger the transition to the results screen.
type interviewEndMsg struct{}
