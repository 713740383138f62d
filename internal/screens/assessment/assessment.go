package assessment

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	assess "github.com/abhisek/wardtrain/internal/assessment"
	"github.com/abhisek/wardtrain/internal/progress"
	"github.com/abhisek/wardtrain/internal/registry"
	"github.com/abhisek/wardtrain/internal/router"
	"github.com/abhisek/wardtrain/internal/screen"
	"github.com/abhisek/wardtrain/internal/screens/results"
	"github.com/abhisek/wardtrain/internal/ui/components"
	"github.com/abhisek/wardtrain/internal/ui/layout"
)

// AssessmentScreen walks the learner through one attempt at a module.
type AssessmentScreen struct {
	deps    screen.Deps
	module  registry.Module
	attempt *assess.Attempt
	choice  components.MultiChoice

	confirmQuit bool
	errMsg      string
}

var _ screen.Screen = (*AssessmentScreen)(nil)
var _ screen.KeyHintProvider = (*AssessmentScreen)(nil)
var _ screen.EscapeHandler = (*AssessmentScreen)(nil)

// New starts a new attempt at module using its bank from deps.Catalog.
func New(deps screen.Deps, module registry.Module) *AssessmentScreen {
	s := &AssessmentScreen{deps: deps, module: module}

	var bank assess.Bank
	if deps.Catalog != nil {
		bank, _ = deps.Catalog.Bank(module.ID)
	}
	attempt, err := assess.NewAttempt(module, bank, deps.Rand, deps.Clock())
	if err != nil {
		s.errMsg = fmt.Sprintf("Cannot start %s: %v", module.Title, err)
		return s
	}
	s.attempt = attempt
	s.syncChoice()
	return s
}

func (s *AssessmentScreen) Init() tea.Cmd {
	return nil
}

func (s *AssessmentScreen) Title() string {
	return s.module.Title
}

func (s *AssessmentScreen) HandlesEscape() bool {
	return s.attempt != nil
}

func (s *AssessmentScreen) KeyHints() []layout.KeyHint {
	if s.attempt == nil {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave assessment"},
			{Key: "N", Description: "Keep going"},
		}
	}
	next := "Next"
	if s.attempt.IsLast() {
		next = "Complete"
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Choose"},
		{Key: "A-D", Description: "Answer"},
		{Key: "←→", Description: "Previous/" + next},
		{Key: "Esc", Description: "Quit"},
	}
}

// syncChoice rebuilds the option list for the current question, keeping
// any answer already recorded for it.
func (s *AssessmentScreen) syncChoice() {
	q := s.attempt.Current()
	s.choice = components.NewMultiChoice(q.Prompt, q.Options, s.attempt.Selected())
}

func (s *AssessmentScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	if s.attempt == nil {
		switch kmsg.String() {
		case "esc", "enter", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}
	if s.confirmQuit {
		return s.handleQuitConfirm(kmsg)
	}
	return s.handleKey(kmsg)
}

func (s *AssessmentScreen) handleQuitConfirm(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "n", "N", "esc":
		s.confirmQuit = false
	}
	return s, nil
}

func (s *AssessmentScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.confirmQuit = true
		return s, nil
	case "right", "tab", "n":
		return s.advance()
	case "left", "shift+tab", "p":
		if s.attempt.Previous() {
			s.syncChoice()
		}
		return s, nil
	case "enter":
		// Enter on the already chosen option moves on.
		if s.attempt.CanAdvance() && s.choice.Cursor == s.attempt.Selected() {
			return s.advance()
		}
	}

	s.choice, _ = s.choice.Update(msg)
	if s.choice.Chosen != components.NoChoice && s.choice.Chosen != s.attempt.Selected() {
		s.attempt.Select(s.choice.Chosen)
	}
	return s, nil
}

// advance moves to the next question, or finishes the attempt on the last
// one. Nothing happens while the current question is unanswered.
func (s *AssessmentScreen) advance() (screen.Screen, tea.Cmd) {
	if !s.attempt.CanAdvance() {
		return s, nil
	}
	if !s.attempt.IsLast() {
		s.attempt.Next()
		s.syncChoice()
		return s, nil
	}
	return s, s.finish()
}

// finish scores the attempt and records it before the results screen is
// shown, so quitting from the results cannot lose the attempt.
func (s *AssessmentScreen) finish() tea.Cmd {
	result := s.attempt.Finish(s.deps.Clock())
	deps, module := s.deps, s.module

	var record *progress.ModuleProgress
	if deps.Progress != nil {
		rec := deps.Progress.UpdateProgress(context.Background(), module.ID, result.Update())
		record = &rec
	}
	next := results.New(deps, module, result, record, func() screen.Screen {
		return New(deps, module)
	})
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}
