package evaluator

import (
	"context"
	"sync"
)

// MockCall records the arguments of one Evaluate invocation.
type MockCall struct {
	Question      string
	Answer        string
	CorrectAnswer string
}

// Mock is a deterministic Evaluator for tests. Results are returned in
// FIFO order; when the queue is empty the Fallback result (or an error) is
// returned.
type Mock struct {
	mu      sync.Mutex
	results []*Result
	errs    []error
	Calls   []MockCall

	// Err, when set, is returned after the queue is drained.
	Err error
}

// NewMock creates a Mock with the given canned results. The error queue is
// padded so Enqueue keeps results and errors paired positionally.
func NewMock(results ...*Result) *Mock {
	return &Mock{results: results, errs: make([]error, len(results))}
}

// Enqueue appends a canned result (and optional paired error) to the queue.
func (m *Mock) Enqueue(r *Result, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, r)
	m.errs = append(m.errs, err)
}

// Evaluate pops the next canned result.
func (m *Mock) Evaluate(_ context.Context, questionText, answerText, correctAnswer string) (*Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, MockCall{
		Question:      questionText,
		Answer:        answerText,
		CorrectAnswer: correctAnswer,
	})

	if len(m.results) == 0 {
		if m.Err != nil {
			return nil, m.Err
		}
		return Neutral(), nil
	}

	r := m.results[0]
	m.results = m.results[1:]

	var err error
	if len(m.errs) > 0 {
		err = m.errs[0]
		m.errs = m.errs[1:]
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// CallCount returns the number of Evaluate calls made.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
