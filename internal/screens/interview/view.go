package interview

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	itv "github.com/abhisek/prescreen/internal/interview"
	"github.com/abhisek/prescreen/internal/ui/components"
	"github.com/abhisek/prescreen/internal/ui/theme"
)

func (s *InterviewScreen) View(width, height int) string {
	s.width = width

	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.showingQuit {
		return renderQuitConfirm(width)
	}
	if s.showingFeedback {
		return s.renderFeedback(width)
	}
	if s.followUp != "" {
		return s.renderFollowUp(width)
	}
	if s.current == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Selecting the next question...")
	}
	return s.renderQuestion(width)
}

// renderQuestion renders the active question with the countdown and input.
func (s *InterviewScreen) renderQuestion(width int) string {
	state := s.ctrl.State()
	q := s.current

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s — Level %d", state.Role, q.Complexity))

	timerStyle := lipgloss.NewStyle().Foreground(theme.Accent)
	if s.remaining <= 10*time.Second {
		timerStyle = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	}
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  Score %.1f  ", state.QuestionsAsked+1, itv.MaxQuestions, state.TotalScore)) +
		timerStyle.Render(formatDuration(s.remaining))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")

	budget := itv.TimeFor(q.Complexity)
	pct := 0.0
	if budget > 0 {
		pct = float64(s.remaining) / float64(budget)
	}
	bar := components.NewProgressBar("", pct, false, min(width-4, 80))
	b.WriteString("  " + bar.View())
	b.WriteString("\n\n")

	questionStyle := lipgloss.NewStyle().
		Width(min(width-8, 76)).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, questionStyle.Render(q.Text)))
	b.WriteString("\n\n")

	if s.scoring {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Evaluating your answer..."))
		return b.String()
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.input.View()))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Italic(true).
		Render(fmt.Sprintf("Worth %.0f points  ·  Ctrl+S to submit", itv.PointsFor(q.Complexity))))

	return b.String()
}

// renderFollowUp renders the follow-up question entry.
func (s *InterviewScreen) renderFollowUp(width int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Bold(true).
		Render("Follow-up question"))
	b.WriteString("\n\n")

	questionStyle := lipgloss.NewStyle().
		Width(min(width-8, 76)).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, questionStyle.Render(s.followUp)))
	b.WriteString("\n\n")

	if s.scoring {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Evaluating your answer..."))
		return b.String()
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.input.View()))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Italic(true).
		Render("Bonus points available  ·  Ctrl+S to submit"))

	return b.String()
}

// renderFeedback renders the post-answer feedback overlay.
func (s *InterviewScreen) renderFeedback(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	if s.lastFollowUp != nil {
		fu := s.lastFollowUp
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Secondary).
			Bold(true).
			Render(fmt.Sprintf("+%.1f bonus points", fu.AdditionalPoints)))
		b.WriteString("\n\n")
		b.WriteString(feedbackBody(width, fu.Feedback))
	} else if s.lastOutcome != nil {
		out := s.lastOutcome
		switch {
		case out.Expired:
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.Error).
				Bold(true).
				Render("Time expired"))
		case out.Classification == itv.ClassFull:
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.Success).
				Bold(true).
				Render(fmt.Sprintf("Excellent — %.1f points", out.AwardedPoints)))
		case out.Classification == itv.ClassPartial:
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.Accent).
				Bold(true).
				Render(fmt.Sprintf("Partially correct — %.1f points", out.AwardedPoints)))
		default:
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.Error).
				Bold(true).
				Render("Not quite"))
		}
		b.WriteString("\n\n")
		b.WriteString(feedbackBody(width, out.Feedback))

		if out.FollowUpOffered {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.Secondary).
				Render("A follow-up question is coming — bonus points available."))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press any key to continue..."))

	return b.String()
}

func feedbackBody(width int, feedback string) string {
	if feedback == "" {
		return ""
	}
	style := lipgloss.NewStyle().
		Width(min(width-8, 70)).
		Foreground(theme.Text)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(feedback))
}

// renderQuitConfirm renders the end-early confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("End the interview early?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Answered questions will be scored as they stand."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, end interview"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to see your results.", errMsg))
}

// formatDuration renders a countdown as m:ss.
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
