// Package interview renders the live question-and-answer loop: countdown
// timer, answer entry, feedback overlays, and the follow-up sub-flow.
package interview

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	itv "github.com/abhisek/prescreen/internal/interview"
	"github.com/abhisek/prescreen/internal/question"
	"github.com/abhisek/prescreen/internal/router"
	"github.com/abhisek/prescreen/internal/screen"
	"github.com/abhisek/prescreen/internal/ui/components"
	"github.com/abhisek/prescreen/internal/ui/layout"
)

// Answer length limits, matching the candidate-facing form.
const (
	answerCharLimit   = 500
	followUpCharLimit = 250
)

// ResultsFactory builds the results screen for a finished interview.
type ResultsFactory func(report *itv.Report) screen.Screen

// InterviewScreen implements screen.Screen for an active interview.
type InterviewScreen struct {
	ctrl    *itv.Controller
	results ResultsFactory

	input     components.TextArea
	current   *question.Question
	followUp  string
	remaining time.Duration

	scoring         bool
	showingFeedback bool
	showingQuit     bool
	lastOutcome     *itv.Outcome
	lastFollowUp    *itv.FollowUpOutcome
	errMsg          string
	ended           bool

	width int
}

var _ screen.Screen = (*InterviewScreen)(nil)
var _ screen.KeyHintProvider = (*InterviewScreen)(nil)

// New creates an InterviewScreen over a session controller.
func New(ctrl *itv.Controller, results ResultsFactory) *InterviewScreen {
	return &InterviewScreen{
		ctrl:    ctrl,
		results: results,
		input:   components.NewTextArea("Type your answer...", answerCharLimit, 70, 6),
	}
}

func (s *InterviewScreen) Title() string {
	return "Interview"
}

func (s *InterviewScreen) Init() tea.Cmd {
	return tea.Batch(
		s.nextQuestion(),
		s.input.Init(),
		tickCmd(),
	)
}

func (s *InterviewScreen) KeyHints() []layout.KeyHint {
	if s.showingQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "End interview"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.showingFeedback {
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	}
	return []layout.KeyHint{
		{Key: "Ctrl+S", Description: "Submit answer"},
		{Key: "Esc", Description: "End interview"},
	}
}

func (s *InterviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionReadyMsg:
		return s.handleQuestionReady(msg)

	case outcomeMsg:
		return s.handleOutcome(msg)

	case followUpOutcomeMsg:
		return s.handleFollowUpOutcome(msg)

	case timerTickMsg:
		return s.handleTimerTick()

	case feedbackDoneMsg:
		return s.handleFeedbackDone()

	case interviewEndMsg:
		return s.handleEnd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.answerable() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// answerable reports whether keystrokes should reach the answer input.
func (s *InterviewScreen) answerable() bool {
	if s.scoring || s.showingFeedback || s.showingQuit || s.errMsg != "" {
		return false
	}
	phase := s.ctrl.State().Phase
	return phase == itv.PhaseQuestionActive || phase == itv.PhaseFollowUpActive
}

func (s *InterviewScreen) handleQuestionReady(msg questionReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		// An exhausted question pool ends the interview with whatever
		// history exists; everything else is a hard error.
		if errors.Is(msg.Err, itv.ErrRepositoryExhausted) || errors.Is(msg.Err, itv.ErrSessionComplete) {
			return s, func() tea.Msg { return interviewEndMsg{} }
		}
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	s.current = msg.Question
	s.followUp = ""
	s.remaining = itv.TimeFor(msg.Question.Complexity)
	s.input = components.NewTextArea("Type your answer...", answerCharLimit, 70, 6)
	return s, s.input.Init()
}

func (s *InterviewScreen) handleOutcome(msg outcomeMsg) (screen.Screen, tea.Cmd) {
	s.scoring = false
	if msg.Err != nil {
		if errors.Is(msg.Err, itv.ErrDuplicateSubmission) {
			return s, nil
		}
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	s.lastOutcome = msg.Outcome
	s.lastFollowUp = nil
	s.showingFeedback = true
	return s, nil
}

func (s *InterviewScreen) handleFollowUpOutcome(msg followUpOutcomeMsg) (screen.Screen, tea.Cmd) {
	s.scoring = false
	if msg.Err != nil {
		if errors.Is(msg.Err, itv.ErrDuplicateSubmission) {
			return s, nil
		}
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	s.lastFollowUp = msg.Outcome
	s.showingFeedback = true
	return s, nil
}

func (s *InterviewScreen) handleTimerTick() (screen.Screen, tea.Cmd) {
	if s.ended {
		return s, nil
	}

	if remaining, expired := s.ctrl.Remaining(); !expired {
		s.remaining = remaining
	}

	// Expiry is polled, not pushed: the controller resolves the cycle the
	// moment the tick observes the deadline has passed.
	if out, due := s.ctrl.ExpireIfDue(); due {
		s.lastOutcome = out
		s.lastFollowUp = nil
		s.showingFeedback = true
		s.remaining = 0
	}

	return s, tickCmd()
}

func (s *InterviewScreen) handleFeedbackDone() (screen.Screen, tea.Cmd) {
	s.showingFeedback = false

	state := s.ctrl.State()
	switch state.Phase {
	case itv.PhaseCompleted:
		return s, func() tea.Msg { return interviewEndMsg{} }
	case itv.PhaseFollowUpActive:
		s.followUp = state.PendingFollowUp
		s.current = nil
		s.input = components.NewTextArea("Type your answer...", followUpCharLimit, 70, 4)
		return s, s.input.Init()
	default:
		s.current = nil
		return s, s.nextQuestion()
	}
}

func (s *InterviewScreen) handleEnd() (screen.Screen, tea.Cmd) {
	if s.ended {
		return s, nil
	}
	s.ended = true

	report := itv.BuildReport(s.ctrl.State(), time.Now())
	next := s.results(report)
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *InterviewScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return interviewEndMsg{} }
	}

	if s.showingQuit {
		switch key {
		case "y", "Y":
			s.showingQuit = false
			return s, func() tea.Msg { return interviewEndMsg{} }
		case "n", "N", "esc":
			s.showingQuit = false
		}
		return s, nil
	}

	if s.showingFeedback {
		return s, func() tea.Msg { return feedbackDoneMsg{} }
	}

	if s.scoring {
		return s, nil
	}

	switch key {
	case "esc":
		s.showingQuit = true
		return s, nil
	case "ctrl+s":
		return s.submit()
	}

	if s.answerable() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// submit sends the current answer to the controller asynchronously.
func (s *InterviewScreen) submit() (screen.Screen, tea.Cmd) {
	answer := s.input.Value()
	phase := s.ctrl.State().Phase

	s.scoring = true
	ctrl := s.ctrl

	switch phase {
	case itv.PhaseQuestionActive:
		return s, func() tea.Msg {
			out, err := ctrl.Submit(context.Background(), answer)
			return outcomeMsg{Outcome: out, Err: err}
		}
	case itv.PhaseFollowUpActive:
		return s, func() tea.Msg {
			out, err := ctrl.SubmitFollowUp(context.Background(), answer)
			return followUpOutcomeMsg{Outcome: out, Err: err}
		}
	default:
		s.scoring = false
		return s, nil
	}
}

// nextQuestion samples the next question asynchronously.
func (s *InterviewScreen) nextQuestion() tea.Cmd {
	ctrl := s.ctrl
	return func() tea.Msg {
		q, err := ctrl.NextQuestion(context.Background())
		return questionReadyMsg{Question: q, Err: err}
	}
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
