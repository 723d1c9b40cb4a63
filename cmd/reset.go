package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete archived sessions (and optionally the question bank)",
	RunE: func(cmd *cobra.Command, args []string) error {
		withQuestions, _ := cmd.Flags().GetBool("questions")
		yes, _ := cmd.Flags().GetBool("yes")

		if !yes {
			target := "all archived sessions"
			if withQuestions {
				target += " and the question bank"
			}
			fmt.Printf("This will delete %s. Continue? [y/N] ", target)
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if !strings.EqualFold(strings.TrimSpace(line), "y") {
				fmt.Println("Aborted.")
				return nil
			}
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.SessionRepo().Clear(); err != nil {
			return fmt.Errorf("clear sessions: %w", err)
		}
		fmt.Println("Archived sessions deleted.")

		if withQuestions {
			if err := s.QuestionRepo().Clear(); err != nil {
				return fmt.Errorf("clear questions: %w", err)
			}
			fmt.Println("Question bank deleted. It will be re-seeded on the next run.")
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("questions", false, "Also delete the question bank")
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
