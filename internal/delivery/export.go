package delivery

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/abhisek/prescreen/internal/interview"
)

// exportDoc is the JSON artifact shape.
type exportDoc struct {
	SessionID string          `json:"session_id"`
	Candidate exportCandidate `json:"candidate"`
	Role      string          `json:"role"`

	TotalScore        float64 `json:"total_score"`
	MaxPossible       float64 `json:"max_possible"`
	Percentage        float64 `json:"percentage"`
	Verdict           string  `json:"verdict"`
	HighestComplexity int     `json:"highest_complexity"`

	StartedAt   time.Time      `json:"started_at"`
	GeneratedAt time.Time      `json:"generated_at"`
	Questions   []exportAnswer `json:"questions"`
}

type exportCandidate struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Experience string `json:"experience,omitempty"`
}

type exportAnswer struct {
	Question      string          `json:"question"`
	Answer        string          `json:"answer"`
	Complexity    int             `json:"complexity"`
	AwardedPoints float64         `json:"awarded_points"`
	Feedback      string          `json:"feedback"`
	FollowUp      *exportFollowUp `json:"follow_up,omitempty"`
}

type exportFollowUp struct {
	Question         string  `json:"question"`
	Answer           string  `json:"answer"`
	AdditionalPoints float64 `json:"additional_points"`
	Feedback         string  `json:"feedback"`
}

// WriteJSON renders the report as indented JSON to w.
func WriteJSON(w io.Writer, report *interview.Report) error {
	doc := exportDoc{
		SessionID: report.SessionID,
		Candidate: exportCandidate{
			Name:       report.Candidate.Name,
			Email:      report.Candidate.Email,
			Experience: report.Candidate.Experience,
		},
		Role:              report.Role,
		TotalScore:        report.TotalScore,
		MaxPossible:       report.MaxPossible,
		Percentage:        report.Percentage,
		Verdict:           string(report.Verdict),
		HighestComplexity: report.HighestComplexity,
		StartedAt:         report.StartedAt,
		GeneratedAt:       report.GeneratedAt,
	}
	for _, r := range report.History {
		a := exportAnswer{
			Question:      r.Question.Text,
			Answer:        r.AnswerText,
			Complexity:    r.ComplexityAtTime,
			AwardedPoints: r.AwardedPoints,
			Feedback:      r.Feedback,
		}
		if r.FollowUp != nil {
			a.FollowUp = &exportFollowUp{
				Question:         r.FollowUp.Text,
				Answer:           r.FollowUp.AnswerText,
				AdditionalPoints: r.FollowUp.AdditionalPoints,
				Feedback:         r.FollowUp.Feedback,
			}
		}
		doc.Questions = append(doc.Questions, a)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// ExportFile writes the report JSON to path.
func ExportFile(path string, report *interview.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	if err := WriteJSON(f, report); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// DefaultExportName builds a filename from the candidate and timestamp,
// e.g. "interview_ada_lovelace_20260301-0930.json".
func DefaultExportName(report *interview.Report) string {
	name := sanitizeName(report.Candidate.Name)
	if name == "" {
		name = "candidate"
	}
	return fmt.Sprintf("interview_%s_%s.json", name, report.GeneratedAt.Format("20060102-1504"))
}

func sanitizeName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ', r == '-', r == '_':
			out = append(out, '_')
		}
	}
	return string(out)
}
