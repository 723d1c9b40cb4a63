// Package welcome collects candidate details and the target role before
// handing off to the interview screen.
package welcome

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prescreen/internal/interview"
	"github.com/abhisek/prescreen/internal/question"
	"github.com/abhisek/prescreen/internal/router"
	"github.com/abhisek/prescreen/internal/screen"
	"github.com/abhisek/prescreen/internal/ui/components"
	"github.com/abhisek/prescreen/internal/ui/layout"
	"github.com/abhisek/prescreen/internal/ui/theme"
)

type stage int

const (
	stageForm stage = iota
	stageRole
)

// field indexes into the candidate form.
const (
	fieldName = iota
	fieldEmail
	fieldExperience
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name", "Email", "Experience"}

// InterviewFactory builds the interview screen once the candidate and role
// are known.
type InterviewFactory func(candidate interview.Candidate, role question.Role) screen.Screen

// WelcomeScreen is the candidate intake form.
type WelcomeScreen struct {
	factory InterviewFactory

	stage    stage
	fields   [fieldCount]components.TextInput
	fieldIdx int

	roles    []question.Role
	roleIdx  int
	errMsg   string
	started  bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that hands off to the screen produced by factory.
func New(factory InterviewFactory) *WelcomeScreen {
	w := &WelcomeScreen{
		factory: factory,
		roles:   question.Roles(),
	}
	w.fields[fieldName] = components.NewTextInput("Your full name", false, 60)
	w.fields[fieldEmail] = components.NewTextInput("you@example.com", false, 80)
	w.fields[fieldExperience] = components.NewTextInput("e.g. 3 years backend development", false, 100)
	return w
}

func (w *WelcomeScreen) Title() string {
	return "Candidate Details"
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return w.fields[fieldName].Init()
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	if w.stage == stageRole {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose role"},
			{Key: "Enter", Description: "Start interview"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Next field"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if w.stage == stageForm {
			var cmd tea.Cmd
			w.fields[w.fieldIdx], cmd = w.fields[w.fieldIdx].Update(msg)
			return w, cmd
		}
		return w, nil
	}

	switch w.stage {
	case stageForm:
		return w.updateForm(kmsg)
	case stageRole:
		return w.updateRole(kmsg)
	}
	return w, nil
}

func (w *WelcomeScreen) updateForm(kmsg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch kmsg.String() {
	case "enter":
		if w.fieldIdx < fieldCount-1 {
			w.fieldIdx++
			return w, w.fields[w.fieldIdx].Init()
		}
		if err := w.validate(); err != "" {
			w.errMsg = err
			w.fieldIdx = w.firstInvalidField()
			return w, nil
		}
		w.errMsg = ""
		w.stage = stageRole
		return w, nil
	case "up", "shift+tab":
		if w.fieldIdx > 0 {
			w.fieldIdx--
		}
		return w, nil
	case "down", "tab":
		if w.fieldIdx < fieldCount-1 {
			w.fieldIdx++
		}
		return w, nil
	}

	var cmd tea.Cmd
	w.fields[w.fieldIdx], cmd = w.fields[w.fieldIdx].Update(kmsg)
	return w, cmd
}

func (w *WelcomeScreen) updateRole(kmsg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch kmsg.String() {
	case "up", "k":
		if w.roleIdx > 0 {
			w.roleIdx--
		}
	case "down", "j":
		if w.roleIdx < len(w.roles)-1 {
			w.roleIdx++
		}
	case "esc":
		w.stage = stageForm
	case "enter":
		return w, w.start()
	}
	return w, nil
}

// start transitions to the interview screen. Fires once.
func (w *WelcomeScreen) start() tea.Cmd {
	if w.started {
		return nil
	}
	w.started = true

	candidate := interview.Candidate{
		Name:       strings.TrimSpace(w.fields[fieldName].Value()),
		Email:      strings.TrimSpace(w.fields[fieldEmail].Value()),
		Experience: strings.TrimSpace(w.fields[fieldExperience].Value()),
	}
	next := w.factory(candidate, w.roles[w.roleIdx])
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

// validate returns an error message, or "" when the form is complete.
func (w *WelcomeScreen) validate() string {
	if strings.TrimSpace(w.fields[fieldName].Value()) == "" {
		return "Please enter your name."
	}
	email := strings.TrimSpace(w.fields[fieldEmail].Value())
	if email == "" || !strings.Contains(email, "@") {
		return "Please enter a valid email address."
	}
	return ""
}

func (w *WelcomeScreen) firstInvalidField() int {
	if strings.TrimSpace(w.fields[fieldName].Value()) == "" {
		return fieldName
	}
	return fieldEmail
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, RenderBanner(width))
	sections = append(sections, "")
	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("Adaptive technical pre-screening interview"))
	sections = append(sections, "")

	switch w.stage {
	case stageForm:
		sections = append(sections, w.viewForm()...)
	case stageRole:
		sections = append(sections, w.viewRoles()...)
	}

	if w.errMsg != "" {
		sections = append(sections, "")
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Error).
			Render(w.errMsg))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (w *WelcomeScreen) viewForm() []string {
	out := make([]string, 0, fieldCount*2)
	for i := 0; i < fieldCount; i++ {
		label := fieldLabels[i]
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == w.fieldIdx {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		out = append(out, style.Render(label))
		out = append(out, w.fields[i].View())
	}
	return out
}

func (w *WelcomeScreen) viewRoles() []string {
	out := []string{
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Select the role you are interviewing for:"),
		"",
	}
	for i, role := range w.roles {
		if i == w.roleIdx {
			out = append(out, lipgloss.NewStyle().
				Foreground(theme.Primary).
				Bold(true).
				Render("  ▸ "+string(role)))
		} else {
			out = append(out, lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("    "+string(role)))
		}
	}
	return out
}
