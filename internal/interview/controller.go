package interview

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/prescreen/internal/evaluator"
	"github.com/abhisek/prescreen/internal/question"
)

// Bounded sampling search: attempts at the requested complexity, then at
// each fallback level in turn.
const (
	sampleAttempts   = 10
	fallbackAttempts = 5
)

// followUpExpectedAnswer is handed to the evaluator when scoring a
// follow-up. Follow-ups are generated, not corpus-backed, so there is no
// real answer key; the evaluator judges on its own.
const followUpExpectedAnswer = "Expected follow-up answer"

// Feedback substituted when the evaluator cannot be reached. The cycle
// resolves as a fail so the interview keeps moving.
const evaluatorDownFeedback = "Your answer was recorded, but it could not be evaluated."

// expiredFeedback is recorded when the time budget runs out.
const expiredFeedback = "time expired"

// Config tunes a Controller.
type Config struct {
	// EvalTimeout bounds each evaluator call. Default: 30s.
	EvalTimeout time.Duration

	// Now supplies the clock; defaults to time.Now. Tests inject a fake.
	Now func() time.Time
}

// DefaultConfig returns the standard controller configuration.
func DefaultConfig() Config {
	return Config{EvalTimeout: 30 * time.Second}
}

// Outcome describes one resolved question cycle (or the entry into the
// follow-up sub-flow).
type Outcome struct {
	Record          *AnswerRecord
	Classification  Classification
	AwardedPoints   float64
	Feedback        string
	FollowUpOffered bool
	Expired         bool
	Completed       bool
}

// FollowUpOutcome describes a resolved follow-up.
type FollowUpOutcome struct {
	Record           *FollowUpRecord
	AdditionalPoints float64
	Feedback         string
	Completed        bool
}

// Controller drives one interview session through the
// question→evaluate→adjust→advance cycle. It exclusively owns its State;
// concurrent calls for the same session are serialized, and a duplicate
// submission arriving while one is being scored is rejected.
type Controller struct {
	mu    sync.Mutex
	repo  question.Repository
	eval  evaluator.Evaluator
	state *State

	now         func() time.Time
	evalTimeout time.Duration

	// scoring is set while an evaluator call for the current question is
	// in flight; it is the duplicate-submission guard.
	scoring bool
}

// New creates a Controller for a fresh session.
func New(repo question.Repository, eval evaluator.Evaluator, candidate Candidate, role question.Role, cfg Config) *Controller {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.EvalTimeout <= 0 {
		cfg.EvalTimeout = 30 * time.Second
	}
	return &Controller{
		repo:        repo,
		eval:        eval,
		state:       NewState(uuid.New().String(), candidate, role, cfg.Now()),
		now:         cfg.Now,
		evalTimeout: cfg.EvalTimeout,
	}
}

// Resume wraps existing state in a Controller. Used by tests and by
// callers that construct state explicitly.
func Resume(repo question.Repository, eval evaluator.Evaluator, state *State, cfg Config) *Controller {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.EvalTimeout <= 0 {
		cfg.EvalTimeout = 30 * time.Second
	}
	return &Controller{
		repo:        repo,
		eval:        eval,
		state:       state,
		now:         cfg.Now,
		evalTimeout: cfg.EvalTimeout,
	}
}

// State exposes the session state for display. Callers must treat it as
// read-only.
func (c *Controller) State() *State {
	return c.state
}

// NextQuestion samples the next question and starts its timer.
//
// The search is bounded: up to sampleAttempts draws at the current
// complexity, then each other level in ascending order gets up to
// fallbackAttempts draws. When a fallback level supplies the question the
// session complexity moves to that level. A fully exhausted corpus is
// terminal: ErrRepositoryExhausted.
func (c *Controller) NextQuestion(ctx context.Context) (*question.Question, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state.Phase {
	case PhaseCompleted:
		return nil, ErrSessionComplete
	case PhaseAwaitingQuestion:
	default:
		return nil, ErrNoActiveQuestion
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	q, err := c.sampleAt(c.state.Complexity, sampleAttempts)
	if err != nil {
		return nil, err
	}
	if q == nil {
		for _, level := range fallbackLevels(c.state.Complexity) {
			if q, err = c.sampleAt(level, fallbackAttempts); err != nil {
				return nil, err
			}
			if q != nil {
				c.state.Complexity = level
				break
			}
		}
	}
	if q == nil {
		return nil, ErrRepositoryExhausted
	}

	c.state.AskedQuestionIDs[q.ID] = true
	c.state.CurrentQuestion = q
	c.state.Guard = NewGuard(c.now(), c.state.Complexity)
	c.state.Phase = PhaseQuestionActive
	return q, nil
}

// sampleAt draws from the repository at one complexity level with a hard
// attempt ceiling. Sampling is random, so repeated draws can surface
// different eligible items. An empty pool burns attempts; any other
// repository error is propagated.
func (c *Controller) sampleAt(complexity, attempts int) (*question.Question, error) {
	for i := 0; i < attempts; i++ {
		q, err := c.repo.Sample(c.state.Role, complexity, c.state.AskedQuestionIDs)
		if err != nil {
			if errors.Is(err, question.ErrNoQuestion) {
				continue
			}
			return nil, err
		}
		if !c.state.AskedQuestionIDs[q.ID] {
			return q, nil
		}
	}
	return nil, nil
}

// fallbackLevels returns the other two complexity levels in ascending
// order, matching the original fallback policy.
func fallbackLevels(current int) []int {
	var out []int
	for level := minComplexity; level <= maxComplexity; level++ {
		if level != current {
			out = append(out, level)
		}
	}
	return out
}

// Remaining reports the time left on the active question. Returns zero and
// expired=true once the deadline passes (or latched earlier).
func (c *Controller) Remaining() (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Guard == nil || c.state.Phase != PhaseQuestionActive {
		return 0, false
	}
	return c.state.Guard.Remaining(c.now())
}

// ExpireIfDue resolves the active question as expired when its budget has
// run out. Expiry bypasses the evaluator entirely: zero points, "time
// expired" feedback, a single complexity decrement. Returns (nil, false)
// when the question is still live.
func (c *Controller) ExpireIfDue() (*Outcome, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Phase != PhaseQuestionActive || c.state.Guard == nil || c.scoring {
		return nil, false
	}
	if _, expired := c.state.Guard.Remaining(c.now()); !expired {
		return nil, false
	}

	out := c.resolveLocked("", &evaluator.Result{Score: 0, Feedback: expiredFeedback}, true)
	return out, true
}

// Submit scores an answer for the active question. An expired question is
// resolved as expiry regardless of the submitted text. An empty answer is
// an invalid submission: scored zero without calling the evaluator. An
// evaluator error or timeout resolves the cycle as a fail with generic
// feedback; it never leaves the session stuck in QuestionActive.
func (c *Controller) Submit(ctx context.Context, answerText string) (*Outcome, error) {
	c.mu.Lock()
	if c.state.Phase == PhaseCompleted {
		c.mu.Unlock()
		return nil, ErrSessionComplete
	}
	if c.state.Phase != PhaseQuestionActive || c.state.CurrentQuestion == nil {
		c.mu.Unlock()
		return nil, ErrNoActiveQuestion
	}
	if c.scoring {
		c.mu.Unlock()
		return nil, ErrDuplicateSubmission
	}

	// Expiry is checked before any answer is accepted.
	if _, expired := c.state.Guard.Remaining(c.now()); expired {
		out := c.resolveLocked("", &evaluator.Result{Score: 0, Feedback: expiredFeedback}, true)
		c.mu.Unlock()
		return out, nil
	}

	// Invalid submission: no evaluator call, zero score.
	if isBlank(answerText) {
		out := c.resolveLocked(answerText, &evaluator.Result{Score: 0, Feedback: "no answer provided"}, false)
		c.mu.Unlock()
		return out, nil
	}

	q := *c.state.CurrentQuestion
	c.scoring = true
	c.mu.Unlock()

	result, err := c.evaluate(ctx, q.Text, answerText, q.CorrectAnswer)

	c.mu.Lock()
	c.scoring = false
	if err != nil {
		result = &evaluator.Result{Score: 0, Feedback: evaluatorDownFeedback}
	}
	out := c.resolveLocked(answerText, result, false)
	c.mu.Unlock()
	return out, nil
}

// resolveLocked applies a scored result to the state machine. Caller holds
// the mutex, Phase is QuestionActive.
func (c *Controller) resolveLocked(answerText string, result *evaluator.Result, expired bool) *Outcome {
	class := Classify(result.Score)
	award := AwardFor(class, c.state.Complexity)

	record := &AnswerRecord{
		Question:         *c.state.CurrentQuestion,
		AnswerText:       answerText,
		ComplexityAtTime: c.state.Complexity,
		AwardedPoints:    award,
		Feedback:         result.Feedback,
		Timestamp:        c.now(),
	}
	c.state.History = append(c.state.History, record)
	c.state.TotalScore += award

	out := &Outcome{
		Record:         record,
		Classification: class,
		AwardedPoints:  award,
		Feedback:       result.Feedback,
		Expired:        expired,
	}

	if class == ClassPartial && result.FollowUp != "" && !expired {
		// Complexity and the question count hold still until the
		// follow-up resolves.
		c.state.PendingFollowUp = result.FollowUp
		c.state.CurrentQuestion = nil
		c.state.Guard = nil
		c.state.Phase = PhaseFollowUpActive
		out.FollowUpOffered = true
		return out
	}

	switch class {
	case ClassFull:
		c.state.Complexity = raiseComplexity(c.state.Complexity)
	default:
		// Partial without follow-up, fail, and expiry all step down
		// exactly once.
		c.state.Complexity = lowerComplexity(c.state.Complexity)
	}

	c.advanceLocked()
	out.Completed = c.state.Phase == PhaseCompleted
	return out
}

// SubmitFollowUp scores the pending follow-up, attaches the result to the
// most recent answer record, and resolves the cycle. The follow-up never
// changes the complexity level by itself.
func (c *Controller) SubmitFollowUp(ctx context.Context, answerText string) (*FollowUpOutcome, error) {
	c.mu.Lock()
	if c.state.Phase != PhaseFollowUpActive || c.state.PendingFollowUp == "" {
		c.mu.Unlock()
		return nil, ErrNoPendingFollowUp
	}
	if c.scoring {
		c.mu.Unlock()
		return nil, ErrDuplicateSubmission
	}

	followUp := c.state.PendingFollowUp
	c.scoring = true
	c.mu.Unlock()

	var result *evaluator.Result
	var err error
	if isBlank(answerText) {
		result = &evaluator.Result{Score: 0, Feedback: "no answer provided"}
	} else {
		result, err = c.evaluate(ctx, followUp, answerText, followUpExpectedAnswer)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.scoring = false
	if err != nil {
		result = &evaluator.Result{Score: 0, Feedback: evaluatorDownFeedback}
	}

	last := c.state.lastRecord()
	complexity := c.state.Complexity
	if last != nil {
		complexity = last.ComplexityAtTime
	}
	bonus := FollowUpBonus(result.Score, complexity)
	fur := &FollowUpRecord{
		Text:             followUp,
		AnswerText:       answerText,
		AdditionalPoints: bonus,
		Feedback:         result.Feedback,
	}
	if last != nil {
		last.FollowUp = fur
	}
	c.state.TotalScore += bonus
	c.state.PendingFollowUp = ""

	c.advanceLocked()

	return &FollowUpOutcome{
		Record:           fur,
		AdditionalPoints: bonus,
		Feedback:         result.Feedback,
		Completed:        c.state.Phase == PhaseCompleted,
	}, nil
}

// advanceLocked counts a resolved cycle and moves to the next phase.
func (c *Controller) advanceLocked() {
	c.state.QuestionsAsked++
	c.state.CurrentQuestion = nil
	c.state.Guard = nil
	if c.state.QuestionsAsked >= MaxQuestions {
		c.state.Phase = PhaseCompleted
		return
	}
	c.state.Phase = PhaseAwaitingQuestion
}

// evaluate calls the evaluator with the configured timeout.
func (c *Controller) evaluate(ctx context.Context, questionText, answerText, correctAnswer string) (*evaluator.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.evalTimeout)
	defer cancel()
	return c.eval.Evaluate(ctx, questionText, answerText, correctAnswer)
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
