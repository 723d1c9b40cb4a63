package question

import (
	"math/rand/v2"
	"sync"
)

// MemoryRepository is an in-memory Repository. It backs tests and the
// offline demo mode; production sessions use the sqlite-backed repository
// in internal/store.
type MemoryRepository struct {
	mu        sync.RWMutex
	questions []Question
	randInt   func(n int) int
}

// NewMemoryRepository creates a repository over the given questions.
func NewMemoryRepository(questions []Question) *MemoryRepository {
	return &MemoryRepository{
		questions: questions,
		randInt:   rand.IntN,
	}
}

// Sample picks a uniformly random eligible question.
func (r *MemoryRepository) Sample(role Role, complexity int, exclude map[string]bool) (*Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var eligible []*Question
	for i := range r.questions {
		q := &r.questions[i]
		if q.Role != role || q.Complexity != complexity {
			continue
		}
		if exclude[q.ID] {
			continue
		}
		eligible = append(eligible, q)
	}

	if len(eligible) == 0 {
		return nil, ErrNoQuestion
	}

	picked := *eligible[r.randInt(len(eligible))]
	return &picked, nil
}

// Add appends questions to the pool.
func (r *MemoryRepository) Add(questions ...Question) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.questions = append(r.questions, questions...)
}

// Len returns the number of questions in the pool.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.questions)
}
