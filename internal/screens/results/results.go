// Package results displays the final report and offers delivery actions:
// exporting a JSON artifact and emailing the recruiter.
package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	itv "github.com/abhisek/prescreen/internal/interview"
	"github.com/abhisek/prescreen/internal/screen"
	"github.com/abhisek/prescreen/internal/ui/components"
	"github.com/abhisek/prescreen/internal/ui/layout"
	"github.com/abhisek/prescreen/internal/ui/theme"
)

// Deps are the delivery hooks injected by the app. Any of them may be nil,
// which disables the corresponding action.
type Deps struct {
	// Archive persists the report to the session archive. Called once on
	// screen init.
	Archive func(*itv.Report) error

	// Export writes the JSON artifact and returns the file path.
	Export func(*itv.Report) (string, error)

	// Email sends the report to the recruiter.
	Email func(*itv.Report) error
}

// actionDoneMsg reports the outcome of a delivery action.
type actionDoneMsg struct {
	status string
	isErr  bool
}

// ResultsScreen implements screen.Screen for the completed interview.
type ResultsScreen struct {
	report *itv.Report
	deps   Deps

	menu    components.Menu
	status  string
	statErr bool
	running bool
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a ResultsScreen for the given report.
func New(report *itv.Report, deps Deps) *ResultsScreen {
	s := &ResultsScreen{report: report, deps: deps}

	// begin marks an action as in flight so further keys are ignored until
	// its actionDoneMsg arrives.
	begin := func(run func() tea.Msg) func() tea.Cmd {
		return func() tea.Cmd {
			s.running = true
			s.status = ""
			return run
		}
	}

	var items []components.MenuItem
	if deps.Export != nil {
		items = append(items, components.MenuItem{
			Label: "Export results as JSON",
			Action: begin(func() tea.Msg {
				path, err := deps.Export(report)
				if err != nil {
					return actionDoneMsg{status: "Export failed: " + err.Error(), isErr: true}
				}
				return actionDoneMsg{status: "Results written to " + path}
			}),
		})
	}
	if deps.Email != nil {
		items = append(items, components.MenuItem{
			Label: "Email report to recruiter",
			Action: begin(func() tea.Msg {
				if err := deps.Email(report); err != nil {
					return actionDoneMsg{status: "Email failed: " + err.Error(), isErr: true}
				}
				return actionDoneMsg{status: "Report sent to the recruiter"}
			}),
		})
	}
	items = append(items, components.MenuItem{
		Label:  "Exit",
		Action: func() tea.Cmd { return tea.Quit },
	})
	s.menu = components.NewMenu(items)

	return s
}

func (s *ResultsScreen) Init() tea.Cmd {
	if s.deps.Archive == nil {
		return nil
	}
	report := s.report
	archive := s.deps.Archive
	return func() tea.Msg {
		if err := archive(report); err != nil {
			return actionDoneMsg{status: "Could not archive session: " + err.Error(), isErr: true}
		}
		return nil
	}
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case actionDoneMsg:
		s.running = false
		s.status = msg.status
		s.statErr = msg.isErr
		return s, nil

	case tea.KeyMsg:
		if s.running {
			return s, nil
		}
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	r := s.report
	var b strings.Builder

	verdictStyle := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.Success)
	verdictText := "PASSED"
	if r.Verdict != itv.VerdictPass {
		verdictStyle = verdictStyle.Foreground(theme.Error)
		verdictText = "NOT PASSED"
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Interview complete"))
	b.WriteString("\n\n")
	b.WriteString(verdictStyle.Render(verdictText))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Score: %.1f/%.0f (%.1f%%)        Questions: %d        Highest level: %d",
		r.TotalScore, r.MaxPossible, r.Percentage, r.QuestionsAnswered, r.HighestComplexity)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Answers")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for i, rec := range r.History {
		points := rec.AwardedPoints
		bonus := ""
		if rec.FollowUp != nil {
			points += rec.FollowUp.AdditionalPoints
			bonus = fmt.Sprintf("  (+%.1f follow-up)", rec.FollowUp.AdditionalPoints)
		}
		line := fmt.Sprintf("  Q%d  L%d  %.1f/%.0f pts%s  %s",
			i+1, rec.ComplexityAtTime, points, itv.PointsFor(rec.ComplexityAtTime),
			bonus, truncate(rec.Question.Text, 48))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if rec.AwardedPoints == 0 {
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for _, line := range strings.Split(strings.TrimRight(s.menu.View(), "\n"), "\n") {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	if s.status != "" {
		statusStyle := lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Secondary)
		if s.statErr {
			statusStyle = statusStyle.Foreground(theme.Error)
		}
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(s.status))
	}

	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
