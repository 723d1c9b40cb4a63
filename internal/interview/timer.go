package interview

import "time"

// complexityTime is the answer budget for a question at each level.
var complexityTime = map[int]time.Duration{
	1: 45 * time.Second,
	2: 60 * time.Second,
	3: 90 * time.Second,
}

// TimeFor returns the answer budget for a question at the given complexity.
func TimeFor(complexity int) time.Duration {
	return complexityTime[complexity]
}

// Guard tracks the deadline for one question instance. It is polled, never
// pushed: expiry is detected lazily whenever Remaining is called, and once
// observed it latches for the lifetime of the guard.
type Guard struct {
	deadline time.Time
	budget   time.Duration
	expired  bool
}

// NewGuard starts the clock for a question at the given complexity.
func NewGuard(now time.Time, complexity int) *Guard {
	budget := TimeFor(complexity)
	return &Guard{
		deadline: now.Add(budget),
		budget:   budget,
	}
}

// Remaining returns the time left and whether the question has expired.
// A zero remaining duration is reported once the deadline passes.
func (g *Guard) Remaining(now time.Time) (time.Duration, bool) {
	if g.expired {
		return 0, true
	}
	left := g.deadline.Sub(now)
	if left <= 0 {
		g.expired = true
		return 0, true
	}
	return left, false
}

// Deadline returns the instant the question expires.
func (g *Guard) Deadline() time.Time {
	return g.deadline
}

// Budget returns the full time budget the guard was created with.
func (g *Guard) Budget() time.Duration {
	return g.budget
}
