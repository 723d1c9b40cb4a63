package interview

import "time"

// PassingPercentage is the minimum overall percentage for a PASS verdict.
const PassingPercentage = 50.0

// Verdict is the pass/fail recommendation of a completed session.
type Verdict string

const (
	VerdictPass Verdict = "PASS"
	VerdictFail Verdict = "FAIL"
)

// Report is the summary of one interview, derived entirely from the answer
// history so it can be rebuilt at any time and always comes out the same.
type Report struct {
	SessionID string
	Candidate Candidate
	Role      string

	QuestionsAnswered int
	TotalScore        float64
	MaxPossible       float64
	Percentage        float64
	HighestComplexity int
	Verdict           Verdict

	StartedAt   time.Time
	GeneratedAt time.Time
	History     []*AnswerRecord
}

// BuildReport computes a Report from session state. Totals are summed from
// the history rather than read from running counters, so a report built
// twice from the same history is identical.
func BuildReport(state *State, now time.Time) *Report {
	var total, maxPossible float64
	highest := 0
	for _, r := range state.History {
		total += r.AwardedPoints
		if r.FollowUp != nil {
			total += r.FollowUp.AdditionalPoints
		}
		maxPossible += PointsFor(r.ComplexityAtTime)
		if r.ComplexityAtTime > highest {
			highest = r.ComplexityAtTime
		}
	}

	pct := 0.0
	if maxPossible > 0 {
		pct = total / maxPossible * 100
	}

	verdict := VerdictFail
	if pct >= PassingPercentage {
		verdict = VerdictPass
	}

	return &Report{
		SessionID:         state.SessionID,
		Candidate:         state.Candidate,
		Role:              string(state.Role),
		QuestionsAnswered: len(state.History),
		TotalScore:        total,
		MaxPossible:       maxPossible,
		Percentage:        pct,
		HighestComplexity: highest,
		Verdict:           verdict,
		StartedAt:         state.StartedAt,
		GeneratedAt:       now,
		History:           state.History,
	}
}
