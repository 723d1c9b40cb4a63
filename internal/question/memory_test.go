package question

import (
	"errors"
	"fmt"
	"testing"
)

func poolFixture() []Question {
	return []Question{
		{ID: "sd1-a", Role: RoleSoftwareDeveloper, Complexity: 1, Text: "q1", CorrectAnswer: "a1"},
		{ID: "sd1-b", Role: RoleSoftwareDeveloper, Complexity: 1, Text: "q2", CorrectAnswer: "a2"},
		{ID: "sd2-a", Role: RoleSoftwareDeveloper, Complexity: 2, Text: "q3", CorrectAnswer: "a3"},
		{ID: "py1-a", Role: RolePythonDeveloper, Complexity: 1, Text: "q4", CorrectAnswer: "a4"},
	}
}

func TestSampleFiltersRoleAndComplexity(t *testing.T) {
	repo := NewMemoryRepository(poolFixture())

	for i := 0; i < 20; i++ {
		q, err := repo.Sample(RoleSoftwareDeveloper, 1, nil)
		if err != nil {
			t.Fatalf("sample: %v", err)
		}
		if q.Role != RoleSoftwareDeveloper || q.Complexity != 1 {
			t.Fatalf("got %q (%s level %d)", q.ID, q.Role, q.Complexity)
		}
	}
}

func TestSampleHonorsExclusions(t *testing.T) {
	repo := NewMemoryRepository(poolFixture())

	q, err := repo.Sample(RoleSoftwareDeveloper, 1, map[string]bool{"sd1-a": true})
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if q.ID != "sd1-b" {
		t.Errorf("expected sd1-b, got %q", q.ID)
	}
}

func TestSampleEmptyPoolReturnsErrNoQuestion(t *testing.T) {
	repo := NewMemoryRepository(poolFixture())

	_, err := repo.Sample(RoleSoftwareDeveloper, 3, nil)
	if !errors.Is(err, ErrNoQuestion) {
		t.Fatalf("expected ErrNoQuestion, got %v", err)
	}

	// Exclusions can empty an otherwise populated pool.
	_, err = repo.Sample(RoleSoftwareDeveloper, 2, map[string]bool{"sd2-a": true})
	if !errors.Is(err, ErrNoQuestion) {
		t.Fatalf("expected ErrNoQuestion after exclusion, got %v", err)
	}
}

func TestSampleIsUniform(t *testing.T) {
	repo := NewMemoryRepository(poolFixture())
	next := 0
	repo.randInt = func(n int) int {
		v := next % n
		next++
		return v
	}

	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		q, err := repo.Sample(RoleSoftwareDeveloper, 1, nil)
		if err != nil {
			t.Fatalf("sample: %v", err)
		}
		seen[q.ID] = true
	}
	if len(seen) != 2 {
		t.Errorf("deterministic index walk should hit both candidates, saw %v", seen)
	}
}

func TestSeedBankCoversEveryRoleAndLevel(t *testing.T) {
	bank := SeedBank()
	counts := map[Role]map[int]int{}
	ids := map[string]bool{}

	for _, q := range bank {
		if ids[q.ID] {
			t.Errorf("duplicate question ID %q", q.ID)
		}
		ids[q.ID] = true
		if !q.Role.Valid() {
			t.Errorf("question %q has unknown role %q", q.ID, q.Role)
		}
		if q.Text == "" || q.CorrectAnswer == "" {
			t.Errorf("question %q missing text or answer", q.ID)
		}
		if counts[q.Role] == nil {
			counts[q.Role] = map[int]int{}
		}
		counts[q.Role][q.Complexity]++
	}

	for _, role := range Roles() {
		for level := MinComplexity; level <= MaxComplexity; level++ {
			if counts[role][level] == 0 {
				t.Errorf("no seed questions for %s level %d", role, level)
			}
		}
	}
}

func TestParseBank(t *testing.T) {
	data := []byte(`questions:
  - role: "Software Developer"
    complexity: 2
    text: "What is a race condition?"
    answer: "Unsynchronized concurrent access to shared state"
  - id: custom-1
    role: "Python Developer"
    complexity: 1
    text: "What is a list comprehension?"
    answer: "A concise expression that builds a list"
`)

	qs, err := ParseBank(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
	if qs[0].ID != "ext_0" {
		t.Errorf("derived ID = %q", qs[0].ID)
	}
	if qs[1].ID != "custom-1" {
		t.Errorf("explicit ID = %q", qs[1].ID)
	}
	if qs[0].Role != RoleSoftwareDeveloper || qs[0].Complexity != 2 {
		t.Errorf("entry 0 = %+v", qs[0])
	}
}

func TestParseBankRejectsInvalidEntries(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"unknown role", `questions: [{role: "Astronaut", complexity: 1, text: "t", answer: "a"}]`},
		{"complexity out of range", `questions: [{role: "Web Developer", complexity: 4, text: "t", answer: "a"}]`},
		{"missing answer", `questions: [{role: "Web Developer", complexity: 1, text: "t"}]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseBank([]byte(tc.yaml)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestAddGrowsPool(t *testing.T) {
	repo := NewMemoryRepository(nil)
	for i := 0; i < 3; i++ {
		repo.Add(Question{
			ID:            fmt.Sprintf("n%d", i),
			Role:          RoleWebDeveloper,
			Complexity:    1,
			Text:          "t",
			CorrectAnswer: "a",
		})
	}
	if repo.Len() != 3 {
		t.Errorf("Len = %d, want 3", repo.Len())
	}
}
