package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/prescreen/internal/delivery"
	"github.com/abhisek/prescreen/internal/interview"
	"github.com/abhisek/prescreen/internal/store"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Inspect and deliver archived interview reports",
}

var reportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived interview sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		sessions, err := s.SessionRepo().List(limit)
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No archived sessions found.")
			return nil
		}

		fmt.Printf("%-36s  %-20s  %-22s  %6s  %-4s  %s\n",
			"ID", "Candidate", "Role", "Score", "", "Completed")
		fmt.Println(strings.Repeat("─", 104))
		for _, ses := range sessions {
			fmt.Printf("%-36s  %-20s  %-22s  %5.1f%%  %-4s  %s\n",
				ses.ID,
				clip(ses.CandidateName, 20),
				clip(ses.Role, 22),
				ses.Percentage,
				ses.Verdict,
				ses.CompletedAt.Local().Format("2006-01-02 15:04"),
			)
		}
		return nil
	},
}

var reportShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show the full report for a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		report, err := s.SessionRepo().Get(args[0])
		if err != nil {
			return fmt.Errorf("load session: %w", err)
		}

		printReport(report)
		return nil
	},
}

var reportExportCmd = &cobra.Command{
	Use:   "export <session-id>",
	Short: "Export a session report as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		report, err := s.SessionRepo().Get(args[0])
		if err != nil {
			return fmt.Errorf("load session: %w", err)
		}

		if out == "" {
			out = delivery.DefaultExportName(report)
		}
		if err := delivery.ExportFile(out, report); err != nil {
			return fmt.Errorf("export report: %w", err)
		}
		fmt.Println("Report written to", out)
		return nil
	},
}

var reportSendCmd = &cobra.Command{
	Use:   "send <session-id>",
	Short: "Email a session report to the recruiter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		smtp := delivery.SMTPConfigFromEnv()
		if err := smtp.Validate(); err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		report, err := s.SessionRepo().Get(args[0])
		if err != nil {
			return fmt.Errorf("load session: %w", err)
		}

		if err := delivery.NewMailer(smtp).SendReport(report); err != nil {
			return fmt.Errorf("send report: %w", err)
		}
		fmt.Println("Report sent to", smtp.RecruiterEmail)
		return nil
	},
}

// openStore resolves the DB path and opens the store for a subcommand.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func printReport(r *interview.Report) {
	sep := strings.Repeat("─", 72)

	fmt.Printf("Session:    %s\n", r.SessionID)
	fmt.Printf("Candidate:  %s <%s>\n", r.Candidate.Name, r.Candidate.Email)
	if r.Candidate.Experience != "" {
		fmt.Printf("Experience: %s\n", r.Candidate.Experience)
	}
	fmt.Printf("Role:       %s\n", r.Role)
	fmt.Printf("Completed:  %s\n", r.GeneratedAt.Local().Format("2006-01-02 15:04"))
	fmt.Println()
	fmt.Printf("Score:      %.1f / %.0f (%.1f%%)\n", r.TotalScore, r.MaxPossible, r.Percentage)
	fmt.Printf("Verdict:    %s\n", r.Verdict)
	fmt.Printf("Questions:  %d answered, highest level %d\n", r.QuestionsAnswered, r.HighestComplexity)

	fmt.Println()
	fmt.Println(sep)
	for i, rec := range r.History {
		fmt.Printf("Q%d (level %d, %.1f/%.0f points)\n",
			i+1, rec.ComplexityAtTime, rec.AwardedPoints, interview.PointsFor(rec.ComplexityAtTime))
		fmt.Printf("  %s\n", rec.Question.Text)
		if rec.AnswerText != "" {
			fmt.Printf("  Answer:   %s\n", clip(rec.AnswerText, 120))
		}
		if rec.Feedback != "" {
			fmt.Printf("  Feedback: %s\n", clip(rec.Feedback, 120))
		}
		if fu := rec.FollowUp; fu != nil {
			fmt.Printf("  Follow-up (+%.1f points): %s\n", fu.AdditionalPoints, fu.Text)
		}
		fmt.Println()
	}
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

func init() {
	reportListCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
	reportExportCmd.Flags().StringP("out", "o", "", "Output file path (default: derived from candidate name)")

	reportCmd.AddCommand(reportListCmd)
	reportCmd.AddCommand(reportShowCmd)
	reportCmd.AddCommand(reportExportCmd)
	reportCmd.AddCommand(reportSendCmd)
}
