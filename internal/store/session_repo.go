package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/prescreen/internal/interview"
)

// ErrSessionNotFound is returned when a session ID has no archived report.
var ErrSessionNotFound = errors.New("session not found")

// SessionSummary is one row of the session archive listing.
type SessionSummary struct {
	ID                string
	CandidateName     string
	CandidateEmail    string
	Role              string
	TotalScore        float64
	MaxPossible       float64
	Percentage        float64
	Verdict           string
	QuestionsAnswered int
	CompletedAt       time.Time
}

// SessionRepo archives completed interview reports. The full answer history
// is stored as JSON alongside the summary columns used for listing.
type SessionRepo struct {
	db *sql.DB
}

// Save archives a completed report. Saving the same session twice replaces
// the earlier row; reports are rebuilt from history, so the replacement is
// identical.
func (r *SessionRepo) Save(report *interview.Report) error {
	history, err := json.Marshal(report.History)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	_, err = r.db.Exec(`INSERT OR REPLACE INTO sessions (
			id, candidate_name, candidate_email, candidate_experience,
			role, total_score, max_possible, percentage, verdict,
			highest_complexity, questions_answered, started_at, completed_at,
			history_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.SessionID,
		report.Candidate.Name,
		report.Candidate.Email,
		report.Candidate.Experience,
		report.Role,
		report.TotalScore,
		report.MaxPossible,
		report.Percentage,
		string(report.Verdict),
		report.HighestComplexity,
		report.QuestionsAnswered,
		report.StartedAt.UTC(),
		report.GeneratedAt.UTC(),
		string(history),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Get loads one archived report by session ID.
func (r *SessionRepo) Get(id string) (*interview.Report, error) {
	row := r.db.QueryRow(`SELECT
			id, candidate_name, candidate_email, candidate_experience,
			role, total_score, max_possible, percentage, verdict,
			highest_complexity, questions_answered, started_at, completed_at,
			history_json
		FROM sessions WHERE id = ?`, id)

	var rep interview.Report
	var verdict, history string
	err := row.Scan(
		&rep.SessionID,
		&rep.Candidate.Name,
		&rep.Candidate.Email,
		&rep.Candidate.Experience,
		&rep.Role,
		&rep.TotalScore,
		&rep.MaxPossible,
		&rep.Percentage,
		&verdict,
		&rep.HighestComplexity,
		&rep.QuestionsAnswered,
		&rep.StartedAt,
		&rep.GeneratedAt,
		&history,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	rep.Verdict = interview.Verdict(verdict)
	if err := json.Unmarshal([]byte(history), &rep.History); err != nil {
		return nil, fmt.Errorf("unmarshal history: %w", err)
	}
	return &rep, nil
}

// List returns session summaries, most recent first.
func (r *SessionRepo) List(limit int) ([]SessionSummary, error) {
	query := `SELECT id, candidate_name, candidate_email, role,
			total_score, max_possible, percentage, verdict,
			questions_answered, completed_at
		FROM sessions ORDER BY completed_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var s SessionSummary
		if err := rows.Scan(
			&s.ID, &s.CandidateName, &s.CandidateEmail, &s.Role,
			&s.TotalScore, &s.MaxPossible, &s.Percentage, &s.Verdict,
			&s.QuestionsAnswered, &s.CompletedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Clear deletes every archived session. Used by the reset command.
func (r *SessionRepo) Clear() error {
	_, err := r.db.Exec(`DELETE FROM sessions`)
	return err
}
