package question

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// bankFile is the on-disk corpus format:
//
//	questions:
//	  - role: "Software Developer"
//	    complexity: 2
//	    text: "What is a race condition?"
//	    answer: "Multiple threads accessing shared resources simultaneously"
type bankFile struct {
	Questions []bankFileEntry `yaml:"questions"`
}

type bankFileEntry struct {
	ID         string `yaml:"id"`
	Role       string `yaml:"role"`
	Complexity int    `yaml:"complexity"`
	Text       string `yaml:"text"`
	Answer     string `yaml:"answer"`
}

// LoadBankFile reads additional questions from a YAML file. Entries without
// an explicit id get one derived from their position, prefixed to avoid
// colliding with seed IDs.
func LoadBankFile(path string) ([]Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank file: %w", err)
	}
	return ParseBank(data)
}

// ParseBank parses YAML corpus data and validates each entry.
func ParseBank(data []byte) ([]Question, error) {
	var f bankFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse bank file: %w", err)
	}

	out := make([]Question, 0, len(f.Questions))
	for i, e := range f.Questions {
		role := Role(e.Role)
		if !role.Valid() {
			return nil, fmt.Errorf("question %d: unknown role %q", i, e.Role)
		}
		if e.Complexity < MinComplexity || e.Complexity > MaxComplexity {
			return nil, fmt.Errorf("question %d: complexity %d out of range", i, e.Complexity)
		}
		if e.Text == "" || e.Answer == "" {
			return nil, fmt.Errorf("question %d: text and answer are required", i)
		}
		id := e.ID
		if id == "" {
			id = "ext_" + strconv.Itoa(i)
		}
		out = append(out, Question{
			ID:            id,
			Text:          e.Text,
			Role:          role,
			Complexity:    e.Complexity,
			CorrectAnswer: e.Answer,
		})
	}
	return out, nil
}
