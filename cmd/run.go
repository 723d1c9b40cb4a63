package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/prescreen/internal/app"
	"github.com/abhisek/prescreen/internal/delivery"
	"github.com/abhisek/prescreen/internal/evaluator"
	"github.com/abhisek/prescreen/internal/llm"
	"github.com/abhisek/prescreen/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	questions := st.QuestionRepo()
	if err := questions.Seed(); err != nil {
		return fmt.Errorf("seed question bank: %w", err)
	}

	opts := app.Options{
		Questions: questions,
		Sessions:  st.SessionRepo(),
	}

	provider, err := llm.NewProviderFromEnv(ctx, st.EventSink())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Answers will be scored with offline keyword matching.")
		opts.Evaluator = evaluator.NewStatic()
	} else {
		opts.Evaluator = evaluator.NewLLM(provider)
	}

	smtp := delivery.SMTPConfigFromEnv()
	if err := smtp.Validate(); err == nil {
		opts.Mailer = delivery.NewMailer(smtp)
	}

	return app.Run(opts)
}
