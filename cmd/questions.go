package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/prescreen/internal/question"
	"github.com/abhisek/prescreen/internal/store"
	"github.com/spf13/cobra"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Manage the question bank",
}

var questionsCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Show question counts per role and level",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		repo := s.QuestionRepo()
		total, err := repo.Count()
		if err != nil {
			return fmt.Errorf("count questions: %w", err)
		}
		if total == 0 {
			fmt.Println("Question bank is empty. Run an interview once to seed it, or import a YAML file.")
			return nil
		}

		fmt.Printf("%-24s  %4s  %4s  %4s  %5s\n", "Role", "L1", "L2", "L3", "Total")
		fmt.Println(strings.Repeat("─", 48))
		for _, role := range question.Roles() {
			byLevel, err := repo.CountByRole(role)
			if err != nil {
				return fmt.Errorf("count for %s: %w", role, err)
			}
			roleTotal := byLevel[1] + byLevel[2] + byLevel[3]
			fmt.Printf("%-24s  %4d  %4d  %4d  %5d\n",
				role, byLevel[1], byLevel[2], byLevel[3], roleTotal)
		}
		fmt.Println(strings.Repeat("─", 48))
		fmt.Printf("%-24s  %20d\n", "TOTAL", total)
		return nil
	},
}

var questionsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import questions from a YAML file",
	Long: `Import questions from a YAML file. Existing questions with the same ID
are updated in place, so a bank file can be re-imported after edits.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		questions, err := question.LoadBankFile(args[0])
		if err != nil {
			return fmt.Errorf("load bank file: %w", err)
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		if err := s.QuestionRepo().Import(questions); err != nil {
			return fmt.Errorf("import questions: %w", err)
		}
		fmt.Printf("Imported %d questions from %s\n", len(questions), args[0])
		return nil
	},
}

func init() {
	questionsCmd.AddCommand(questionsCountCmd)
	questionsCmd.AddCommand(questionsImportCmd)
}
