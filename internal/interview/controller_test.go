package interview

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/abhisek/prescreen/internal/evaluator"
	"github.com/abhisek/prescreen/internal/question"
)

// fakeClock is a manually advanced clock for driving the question timer.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// testRepo builds a repository with n questions per complexity level for
// the software developer role.
func testRepo(n int) *question.MemoryRepository {
	repo := question.NewMemoryRepository(nil)
	for level := 1; level <= 3; level++ {
		for i := 0; i < n; i++ {
			repo.Add(question.Question{
				ID:            fmt.Sprintf("c%d-%d", level, i),
				Text:          fmt.Sprintf("question %d at level %d", i, level),
				Role:          question.RoleSoftwareDeveloper,
				Complexity:    level,
				CorrectAnswer: "reference answer",
			})
		}
	}
	return repo
}

func newTestController(repo question.Repository, eval evaluator.Evaluator, clock *fakeClock) *Controller {
	return New(repo, eval, Candidate{Name: "Test Candidate"}, question.RoleSoftwareDeveloper, Config{
		Now:         clock.Now,
		EvalTimeout: time.Second,
	})
}

func TestFullAnswerRaisesComplexity(t *testing.T) {
	clock := newFakeClock()
	mock := evaluator.NewMock(&evaluator.Result{Score: 0.9, Feedback: "good"})
	c := newTestController(testRepo(12), mock, clock)

	q, err := c.NextQuestion(context.Background())
	if err != nil {
		t.Fatalf("NextQuestion: %v", err)
	}
	if q.Complexity != 1 {
		t.Fatalf("first question complexity = %d, want 1", q.Complexity)
	}

	out, err := c.Submit(context.Background(), "an answer")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if out.Classification != ClassFull {
		t.Errorf("classification = %v, want full", out.Classification)
	}
	if out.AwardedPoints != 5 {
		t.Errorf("awarded = %v, want 5", out.AwardedPoints)
	}

	st := c.State()
	if st.Complexity != 2 {
		t.Errorf("complexity = %d after full answer, want 2", st.Complexity)
	}
	if st.QuestionsAsked != 1 {
		t.Errorf("questionsAsked = %d, want 1", st.QuestionsAsked)
	}
	if st.Phase != PhaseAwaitingQuestion {
		t.Errorf("phase = %v, want awaiting-question", st.Phase)
	}
}

func TestFailAnswerLowersComplexityWithFloor(t *testing.T) {
	clock := newFakeClock()
	mock := evaluator.NewMock(&evaluator.Result{Score: 0.1, Feedback: "off the mark"})
	c := newTestController(testRepo(12), mock, clock)

	if _, err := c.NextQuestion(context.Background()); err != nil {
		t.Fatalf("NextQuestion: %v", err)
	}
	out, err := c.Submit(context.Background(), "wrong")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if out.AwardedPoints != 0 {
		t.Errorf("awarded = %v, want 0", out.AwardedPoints)
	}
	// Already at the floor.
	if got := c.State().Complexity; got != 1 {
		t.Errorf("complexity = %d, want 1", got)
	}
}

func TestPartialAnswerOffersFollowUp(t *testing.T) {
	clock := newFakeClock()
	mock := evaluator.NewMock(
		&evaluator.Result{Score: 0.5, Feedback: "halfway there", FollowUp: "what about edge cases?"},
		&evaluator.Result{Score: 0.8, Feedback: "better"},
	)
	c := newTestController(testRepo(12), mock, clock)

	if _, err := c.NextQuestion(context.Background()); err != nil {
		t.Fatalf("NextQuestion: %v", err)
	}
	out, err := c.Submit(context.Background(), "partial answer")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !out.FollowUpOffered {
		t.Fatal("follow-up not offered for a partial answer")
	}
	if out.AwardedPoints != 2.5 {
		t.Errorf("base award = %v, want 2.5", out.AwardedPoints)
	}

	st := c.State()
	if st.Phase != PhaseFollowUpActive {
		t.Fatalf("phase = %v, want follow-up-active", st.Phase)
	}
	// The cycle is not counted and complexity holds until the follow-up
	// resolves.
	if st.QuestionsAsked != 0 {
		t.Errorf("questionsAsked = %d during follow-up, want 0", st.QuestionsAsked)
	}
	if st.Complexity != 1 {
		t.Errorf("complexity = %d during follow-up, want 1", st.Complexity)
	}

	fu, err := c.SubmitFollowUp(context.Background(), "edge cases are handled by X")
	if err != nil {
		t.Fatalf("SubmitFollowUp: %v", err)
	}
	if fu.AdditionalPoints != 0.8*5/2 {
		t.Errorf("bonus = %v, want %v", fu.AdditionalPoints, 0.8*5/2)
	}

	st = c.State()
	if st.QuestionsAsked != 1 {
		t.Errorf("questionsAsked = %d after follow-up, want 1", st.QuestionsAsked)
	}
	if st.Complexity != 1 {
		t.Errorf("complexity = %d after follow-up, want unchanged 1", st.Complexity)
	}
	if st.TotalScore != 2.5+0.8*5/2 {
		t.Errorf("totalScore = %v, want %v", st.TotalScore, 2.5+0.8*5/2)
	}
	if last := st.History[len(st.History)-1]; last.FollowUp == nil {
		t.Error("follow-up record not attached to history")
	}
}

func TestPartialWithoutFollowUpLowersComplexity(t *testing.T) {
	clock := newFakeClock()
	mock := evaluator.NewMock(
		&evaluator.Result{Score: 0.9, Feedback: "good"},
		&evaluator.Result{Score: 0.5, Feedback: "halfway", FollowUp: ""},
	)
	c := newTestController(testRepo(12), mock, clock)

	mustAnswer(t, c, "full answer")
	if got := c.State().Complexity; got != 2 {
		t.Fatalf("complexity = %d, want 2", got)
	}

	out := mustAnswer(t, c, "partial answer")
	if out.FollowUpOffered {
		t.Fatal("follow-up offered with no follow-up text")
	}
	if out.AwardedPoints != 5 {
		t.Errorf("awarded = %v, want 5", out.AwardedPoints)
	}
	st := c.State()
	if st.Complexity != 1 {
		t.Errorf("complexity = %d, want 1 (single decrement)", st.Complexity)
	}
	if st.QuestionsAsked != 2 {
		t.Errorf("questionsAsked = %d, want 2", st.QuestionsAsked)
	}
}

func TestExpiredQuestionDecrementsOnce(t *testing.T) {
	clock := newFakeClock()
	mock := evaluator.NewMock(
		&evaluator.Result{Score: 0.9, Feedback: "good"},
		&evaluator.Result{Score: 0.9, Feedback: "good"},
	)
	c := newTestController(testRepo(12), mock, clock)

	mustAnswer(t, c, "a")
	mustAnswer(t, c, "b")
	if got := c.State().Complexity; got != 3 {
		t.Fatalf("complexity = %d, want 3", got)
	}

	if _, err := c.NextQuestion(context.Background()); err != nil {
		t.Fatalf("NextQuestion: %v", err)
	}
	clock.Advance(91 * time.Second)

	out, due := c.ExpireIfDue()
	if !due {
		t.Fatal("question not expired 91s into a 90s budget")
	}
	if !out.Expired {
		t.Error("outcome not marked expired")
	}
	if out.AwardedPoints != 0 {
		t.Errorf("awarded = %v on expiry, want 0", out.AwardedPoints)
	}

	st := c.State()
	if st.Complexity != 2 {
		t.Errorf("complexity = %d after expiry, want 2 (exactly one decrement)", st.Complexity)
	}
	if st.QuestionsAsked != 3 {
		t.Errorf("questionsAsked = %d, want 3", st.QuestionsAsked)
	}
	if mock.CallCount() != 2 {
		t.Errorf("evaluator called %d times, want 2 (expiry skips evaluation)", mock.CallCount())
	}
}

func TestSubmitAfterDeadlineResolvesAsExpiry(t *testing.T) {
	clock := newFakeClock()
	mock := evaluator.NewMock()
	c := newTestController(testRepo(12), mock, clock)

	if _, err := c.NextQuestion(context.Background()); err != nil {
		t.Fatalf("NextQuestion: %v", err)
	}
	clock.Advance(46 * time.Second)

	out, err := c.Submit(context.Background(), "too late")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !out.Expired {
		t.Error("late submission not resolved as expiry")
	}
	if mock.CallCount() != 0 {
		t.Errorf("evaluator called %d times for a late submission, want 0", mock.CallCount())
	}
}

func TestEmptyAnswerSkipsEvaluator(t *testing.T) {
	clock := newFakeClock()
	mock := evaluator.NewMock()
	c := newTestController(testRepo(12), mock, clock)

	if _, err := c.NextQuestion(context.Background()); err != nil {
		t.Fatalf("NextQuestion: %v", err)
	}
	out, err := c.Submit(context.Background(), "   \n\t")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if out.AwardedPoints != 0 {
		t.Errorf("awarded = %v for a blank answer, want 0", out.AwardedPoints)
	}
	if out.Classification != ClassFail {
		t.Errorf("classification = %v, want fail", out.Classification)
	}
	if mock.CallCount() != 0 {
		t.Errorf("evaluator called %d times for a blank answer, want 0", mock.CallCount())
	}
	if got := len(c.State().History); got != 1 {
		t.Errorf("history length = %d, want 1", got)
	}
}

func TestEvaluatorErrorResolvesAsFail(t *testing.T) {
	clock := newFakeClock()
	mock := evaluator.NewMock()
	mock.Err = errors.New("provider unreachable")
	c := newTestController(testRepo(12), mock, clock)

	if _, err := c.NextQuestion(context.Background()); err != nil {
		t.Fatalf("NextQuestion: %v", err)
	}
	out, err := c.Submit(context.Background(), "an answer")
	if err != nil {
		t.Fatalf("Submit returned error %v, want fail-soft resolution", err)
	}
	if out.Classification != ClassFail {
		t.Errorf("classification = %v, want fail", out.Classification)
	}
	if out.Feedback == "" {
		t.Error("no substitute feedback for an evaluator outage")
	}
	// The session is not stuck.
	if got := c.State().Phase; got != PhaseAwaitingQuestion {
		t.Errorf("phase = %v after evaluator error, want awaiting-question", got)
	}
}

// blockingEval parks Evaluate until release is closed, so a second
// submission can race the first.
type blockingEval struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingEval) Evaluate(context.Context, string, string, string) (*evaluator.Result, error) {
	close(b.started)
	<-b.release
	return &evaluator.Result{Score: 1, Feedback: "ok"}, nil
}

func TestSecondSubmitWhileScoringIsRejected(t *testing.T) {
	clock := newFakeClock()
	eval := &blockingEval{started: make(chan struct{}), release: make(chan struct{})}
	c := newTestController(testRepo(12), eval, clock)

	if _, err := c.NextQuestion(context.Background()); err != nil {
		t.Fatalf("NextQuestion: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background(), "first answer")
		done <- err
	}()
	<-eval.started

	if _, err := c.Submit(context.Background(), "second answer"); !errors.Is(err, ErrDuplicateSubmission) {
		t.Errorf("second submit: err = %v, want ErrDuplicateSubmission", err)
	}

	close(eval.release)
	if err := <-done; err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if got := len(c.State().History); got != 1 {
		t.Errorf("history length = %d, want 1", got)
	}
}

func TestSubmitWrongPhase(t *testing.T) {
	clock := newFakeClock()
	c := newTestController(testRepo(12), evaluator.NewMock(), clock)

	if _, err := c.Submit(context.Background(), "x"); !errors.Is(err, ErrNoActiveQuestion) {
		t.Errorf("Submit before NextQuestion: err = %v, want ErrNoActiveQuestion", err)
	}
	if _, err := c.SubmitFollowUp(context.Background(), "x"); !errors.Is(err, ErrNoPendingFollowUp) {
		t.Errorf("SubmitFollowUp with none pending: err = %v, want ErrNoPendingFollowUp", err)
	}
}

func TestNoRepeatedQuestions(t *testing.T) {
	clock := newFakeClock()
	mock := evaluator.NewMock()
	for i := 0; i < MaxQuestions; i++ {
		mock.Enqueue(&evaluator.Result{Score: 0.9, Feedback: "good"}, nil)
	}
	c := newTestController(testRepo(12), mock, clock)

	seen := map[string]bool{}
	for i := 0; i < MaxQuestions; i++ {
		q, err := c.NextQuestion(context.Background())
		if err != nil {
			t.Fatalf("NextQuestion %d: %v", i, err)
		}
		if seen[q.ID] {
			t.Fatalf("question %q served twice", q.ID)
		}
		seen[q.ID] = true
		if _, err := c.Submit(context.Background(), "answer"); err != nil {
			t.Fatalf("Submit %d: %v", i, err)
		}
	}
	if got := c.State().Phase; got != PhaseCompleted {
		t.Errorf("phase = %v after %d cycles, want completed", got, MaxQuestions)
	}
}

func TestSessionCompletesAfterMaxQuestions(t *testing.T) {
	clock := newFakeClock()
	mock := evaluator.NewMock()
	c := newTestController(testRepo(12), mock, clock)

	for i := 0; i < MaxQuestions; i++ {
		if _, err := c.NextQuestion(context.Background()); err != nil {
			t.Fatalf("NextQuestion %d: %v", i, err)
		}
		// Neutral fallback: 0.5 scores partial without a follow-up.
		if _, err := c.Submit(context.Background(), "answer"); err != nil {
			t.Fatalf("Submit %d: %v", i, err)
		}
	}

	if _, err := c.NextQuestion(context.Background()); !errors.Is(err, ErrSessionComplete) {
		t.Errorf("NextQuestion after completion: err = %v, want ErrSessionComplete", err)
	}
	if _, err := c.Submit(context.Background(), "x"); !errors.Is(err, ErrSessionComplete) {
		t.Errorf("Submit after completion: err = %v, want ErrSessionComplete", err)
	}
}

func TestFallbackToOtherComplexityLevels(t *testing.T) {
	clock := newFakeClock()
	// Only level 3 has questions; a fresh session starts at level 1.
	repo := question.NewMemoryRepository(nil)
	repo.Add(question.Question{
		ID: "hard-1", Text: "hard question",
		Role: question.RoleSoftwareDeveloper, Complexity: 3,
		CorrectAnswer: "answer",
	})
	c := newTestController(repo, evaluator.NewMock(), clock)

	q, err := c.NextQuestion(context.Background())
	if err != nil {
		t.Fatalf("NextQuestion: %v", err)
	}
	if q.ID != "hard-1" {
		t.Errorf("got question %q, want fallback to hard-1", q.ID)
	}
	if got := c.State().Complexity; got != 3 {
		t.Errorf("complexity = %d after fallback, want 3", got)
	}
}

func TestRepositoryExhausted(t *testing.T) {
	clock := newFakeClock()
	c := newTestController(question.NewMemoryRepository(nil), evaluator.NewMock(), clock)

	if _, err := c.NextQuestion(context.Background()); !errors.Is(err, ErrRepositoryExhausted) {
		t.Errorf("NextQuestion on empty repo: err = %v, want ErrRepositoryExhausted", err)
	}
}

// failingRepo returns a fixed error from every Sample call.
type failingRepo struct {
	err error
}

func (r *failingRepo) Sample(question.Role, int, map[string]bool) (*question.Question, error) {
	return nil, r.err
}

func TestRepositoryErrorPropagates(t *testing.T) {
	clock := newFakeClock()
	dbErr := errors.New("database is locked")
	c := newTestController(&failingRepo{err: dbErr}, evaluator.NewMock(), clock)

	_, err := c.NextQuestion(context.Background())
	if !errors.Is(err, dbErr) {
		t.Fatalf("NextQuestion: err = %v, want the repository error", err)
	}
	if errors.Is(err, ErrRepositoryExhausted) {
		t.Error("a repository failure must not masquerade as exhaustion")
	}
}

func mustAnswer(t *testing.T, c *Controller, answer string) *Outcome {
	t.Helper()
	if _, err := c.NextQuestion(context.Background()); err != nil {
		t.Fatalf("NextQuestion: %v", err)
	}
	out, err := c.Submit(context.Background(), answer)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	return out
}
