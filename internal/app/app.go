package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prescreen/internal/delivery"
	"github.com/abhisek/prescreen/internal/evaluator"
	itv "github.com/abhisek/prescreen/internal/interview"
	"github.com/abhisek/prescreen/internal/question"
	"github.com/abhisek/prescreen/internal/router"
	"github.com/abhisek/prescreen/internal/screen"
	itvscreen "github.com/abhisek/prescreen/internal/screens/interview"
	"github.com/abhisek/prescreen/internal/screens/results"
	"github.com/abhisek/prescreen/internal/screens/welcome"
	"github.com/abhisek/prescreen/internal/store"
	"github.com/abhisek/prescreen/internal/ui/layout"
)

// Options carries the dependencies the TUI needs. Sessions and Mailer are
// optional; when nil the corresponding delivery action is unavailable.
type Options struct {
	Questions question.Repository
	Evaluator evaluator.Evaluator
	Sessions  *store.SessionRepo
	Mailer    *delivery.Mailer
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel starting at the candidate intake form.
func newAppModel(opts Options) AppModel {
	welcomeScreen := welcome.New(func(candidate itv.Candidate, role question.Role) screen.Screen {
		ctrl := itv.New(opts.Questions, opts.Evaluator, candidate, role, itv.DefaultConfig())
		return itvscreen.New(ctrl, func(report *itv.Report) screen.Screen {
			return results.New(report, resultsDeps(opts))
		})
	})
	return AppModel{
		router: router.New(welcomeScreen),
	}
}

// resultsDeps wires the optional delivery hooks for the results screen.
func resultsDeps(opts Options) results.Deps {
	deps := results.Deps{
		Export: func(report *itv.Report) (string, error) {
			path := delivery.DefaultExportName(report)
			if err := delivery.ExportFile(path, report); err != nil {
				return "", err
			}
			return path, nil
		},
	}
	if opts.Sessions != nil {
		sessions := opts.Sessions
		deps.Archive = func(report *itv.Report) error {
			return sessions.Save(report)
		}
	}
	if opts.Mailer != nil {
		mailer := opts.Mailer
		deps.Email = func(report *itv.Report) error {
			return mailer.SendReport(report)
		}
	}
	return deps
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, "", m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if provider, ok := active.(screen.KeyHintProvider); ok {
		if hints := provider.KeyHints(); len(hints) > 0 {
			footerHints = hints
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
