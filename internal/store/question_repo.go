package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/prescreen/internal/question"
)

// QuestionRepo is the SQLite-backed question repository. It satisfies
// question.Repository.
type QuestionRepo struct {
	db *sql.DB
}

// Sample picks a uniformly random question for the role and complexity,
// skipping excluded IDs. Returns question.ErrNoQuestion when nothing is
// eligible.
func (r *QuestionRepo) Sample(role question.Role, complexity int, exclude map[string]bool) (*question.Question, error) {
	query := `SELECT id, role, complexity, text, correct_answer
		FROM questions WHERE role = ? AND complexity = ?`
	args := []any{string(role), complexity}

	if len(exclude) > 0 {
		placeholders := make([]string, 0, len(exclude))
		for id := range exclude {
			placeholders = append(placeholders, "?")
			args = append(args, id)
		}
		query += fmt.Sprintf(" AND id NOT IN (%s)", strings.Join(placeholders, ","))
	}
	query += " ORDER BY RANDOM() LIMIT 1"

	var q question.Question
	var roleStr string
	err := r.db.QueryRow(query, args...).Scan(&q.ID, &roleStr, &q.Complexity, &q.Text, &q.CorrectAnswer)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, question.ErrNoQuestion
	}
	if err != nil {
		return nil, fmt.Errorf("sample question: %w", err)
	}
	q.Role = question.Role(roleStr)
	return &q, nil
}

// Import upserts questions into the pool. Existing IDs are overwritten so
// a bank file can be re-imported after edits.
func (r *QuestionRepo) Import(questions []question.Question) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO questions (id, role, complexity, text, correct_answer)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			role = excluded.role,
			complexity = excluded.complexity,
			text = excluded.text,
			correct_answer = excluded.correct_answer`)
	if err != nil {
		return fmt.Errorf("prepare import: %w", err)
	}
	defer stmt.Close()

	for _, q := range questions {
		if _, err := stmt.Exec(q.ID, string(q.Role), q.Complexity, q.Text, q.CorrectAnswer); err != nil {
			return fmt.Errorf("import question %q: %w", q.ID, err)
		}
	}
	return tx.Commit()
}

// Seed loads the built-in bank when the questions table is empty. No-op on
// a populated database.
func (r *QuestionRepo) Seed() error {
	n, err := r.Count()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return r.Import(question.SeedBank())
}

// Count returns the number of questions in the pool.
func (r *QuestionRepo) Count() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM questions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return n, nil
}

// CountByRole returns per-complexity question counts for one role.
func (r *QuestionRepo) CountByRole(role question.Role) (map[int]int, error) {
	rows, err := r.db.Query(
		`SELECT complexity, COUNT(*) FROM questions WHERE role = ? GROUP BY complexity`,
		string(role),
	)
	if err != nil {
		return nil, fmt.Errorf("count by role: %w", err)
	}
	defer rows.Close()

	out := make(map[int]int)
	for rows.Next() {
		var complexity, n int
		if err := rows.Scan(&complexity, &n); err != nil {
			return nil, err
		}
		out[complexity] = n
	}
	return out, rows.Err()
}

// Clear deletes every question. Used by the reset command.
func (r *QuestionRepo) Clear() error {
	_, err := r.db.Exec(`DELETE FROM questions`)
	return err
}
