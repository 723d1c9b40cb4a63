package interview

import (
	"time"

	"github.com/abhisek/prescreen/internal/question"
)

// MaxQuestions is the number of resolved question cycles in a session.
const MaxQuestions = 10

const (
	minComplexity = question.MinComplexity
	maxComplexity = question.MaxComplexity
)

// Phase is the controller's state machine position.
type Phase int

const (
	PhaseAwaitingQuestion Phase = iota // ready to sample the next question
	PhaseQuestionActive                // question served, answer pending
	PhaseFollowUpActive                // partial answer, follow-up pending
	PhaseCompleted                     // question limit reached; terminal
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingQuestion:
		return "awaiting-question"
	case PhaseQuestionActive:
		return "question-active"
	case PhaseFollowUpActive:
		return "follow-up-active"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Candidate identifies who is being interviewed.
type Candidate struct {
	Name       string
	Email      string
	Experience string
}

// FollowUpRecord captures a resolved follow-up attached to an AnswerRecord.
type FollowUpRecord struct {
	Text             string
	AnswerText       string
	AdditionalPoints float64
	Feedback         string
}

// AnswerRecord is one resolved question cycle. Append-only: once in the
// history it never changes except for the later attachment of a
// FollowUpRecord.
type AnswerRecord struct {
	Question         question.Question
	AnswerText       string
	ComplexityAtTime int
	AwardedPoints    float64
	Feedback         string
	Timestamp        time.Time
	FollowUp         *FollowUpRecord
}

// State is the mutable record of one in-progress interview. It is owned by
// exactly one Controller; nothing else writes to it.
type State struct {
	SessionID string
	Candidate Candidate
	Role      question.Role

	Complexity     int
	QuestionsAsked int
	TotalScore     float64

	History          []*AnswerRecord
	AskedQuestionIDs map[string]bool

	CurrentQuestion *question.Question
	PendingFollowUp string
	Guard           *Guard

	Phase     Phase
	StartedAt time.Time
}

// NewState creates session state at the lowest complexity.
func NewState(sessionID string, candidate Candidate, role question.Role, now time.Time) *State {
	return &State{
		SessionID:        sessionID,
		Candidate:        candidate,
		Role:             role,
		Complexity:       minComplexity,
		AskedQuestionIDs: make(map[string]bool),
		Phase:            PhaseAwaitingQuestion,
		StartedAt:        now,
	}
}

// lastRecord returns the most recent history entry, or nil.
func (s *State) lastRecord() *AnswerRecord {
	if len(s.History) == 0 {
		return nil
	}
	return s.History[len(s.History)-1]
}

// HighestComplexity returns the highest level reached across the history.
func (s *State) HighestComplexity() int {
	highest := 0
	for _, r := range s.History {
		if r.ComplexityAtTime > highest {
			highest = r.ComplexityAtTime
		}
	}
	return highest
}
