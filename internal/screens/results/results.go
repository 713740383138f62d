package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wardtrain/internal/assessment"
	"github.com/abhisek/wardtrain/internal/progress"
	"github.com/abhisek/wardtrain/internal/registry"
	"github.com/abhisek/wardtrain/internal/router"
	"github.com/abhisek/wardtrain/internal/screen"
	"github.com/abhisek/wardtrain/internal/ui/components"
	"github.com/abhisek/wardtrain/internal/ui/layout"
	"github.com/abhisek/wardtrain/internal/ui/theme"
)

// ResultsScreen shows the outcome of a finished attempt.
type ResultsScreen struct {
	deps   screen.Deps
	module registry.Module
	result assessment.Result
	retake func() screen.Screen

	record    *progress.ModuleProgress
	menu      components.Menu
	reviewing bool
	reviewTop int
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)
var _ screen.EscapeHandler = (*ResultsScreen)(nil)

// New creates a ResultsScreen. record is the module progress already saved
// for result, or nil when nothing was recorded. retake builds a fresh attempt
// screen; when nil the retake option is not offered.
func New(deps screen.Deps, module registry.Module, result assessment.Result, record *progress.ModuleProgress, retake func() screen.Screen) *ResultsScreen {
	s := &ResultsScreen{
		deps:   deps,
		module: module,
		result: result,
		record: record,
		retake: retake,
	}
	s.menu = components.NewMenu(s.menuItems())
	return s
}

func (s *ResultsScreen) menuItems() []components.MenuItem {
	var items []components.MenuItem
	if !s.result.Passed && s.retake != nil {
		items = append(items, components.MenuItem{
			Label: "Retake Assessment",
			Action: func() tea.Cmd {
				next := s.retake()
				return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
			},
		})
	}
	items = append(items,
		components.MenuItem{
			Label:    "Review Missed Questions",
			Disabled: len(s.result.Missed()) == 0,
			Action: func() tea.Cmd {
				s.reviewing = true
				s.reviewTop = 0
				return nil
			},
		},
		components.MenuItem{
			Label: "Return to Dashboard",
			Action: func() tea.Cmd {
				return func() tea.Msg { return router.PopToRootMsg{} }
			},
		},
	)
	return items
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) HandlesEscape() bool {
	return s.reviewing
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	if s.reviewing {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Scroll"},
			{Key: "Esc", Description: "Back to results"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Dashboard"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if s.reviewing {
			return s.handleReviewKey(msg)
		}
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ResultsScreen) handleReviewKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q":
		s.reviewing = false
	case "up", "k":
		if s.reviewTop > 0 {
			s.reviewTop--
		}
	case "down", "j":
		if s.reviewTop < len(s.result.Missed())-1 {
			s.reviewTop++
		}
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	if s.reviewing {
		return s.renderReview(width, height)
	}

	cw := components.ContentWidth(width)
	passed := s.result.Passed
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render("Assessment Complete!"))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.ScoreColor(passed)).Bold(true).
		Render(fmt.Sprintf("%d%%", s.result.Score)))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).
		Render(fmt.Sprintf("You scored %d out of %d questions correctly", s.result.Correct, s.result.Total)))
	b.WriteString("\n\n")

	b.WriteString(components.Card(
		lipgloss.NewStyle().Foreground(theme.ScoreColor(passed)).Bold(true).Render(s.verdict()),
		cw, theme.ScoreColor(passed)))
	b.WriteString("\n")

	if s.record != nil {
		line := fmt.Sprintf("Attempts: %d", s.record.Attempts)
		if s.record.BestScore != nil {
			line += fmt.Sprintf("   Best score: %d%%", *s.record.BestScore)
		}
		line += "   Time: " + formatElapsed(s.result.Duration.Seconds())
		b.WriteString(center.Foreground(theme.TextDim).Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(s.menu.View())

	return components.Center(b.String(), width, height)
}

func (s *ResultsScreen) verdict() string {
	if s.result.Passed {
		return fmt.Sprintf("Congratulations! You have passed the %s.", s.module.Title)
	}
	return fmt.Sprintf("You need %d%% or higher to pass. Please review the material and try again.",
		s.module.PassingScore)
}

func (s *ResultsScreen) renderReview(width, height int) string {
	missed := s.result.Missed()
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render(
		fmt.Sprintf("Missed questions (%d of %d)", len(missed), s.result.Total)))
	b.WriteString("\n\n")

	used := 2
	for i := s.reviewTop; i < len(missed); i++ {
		item := missed[i]
		block := components.RenderReview(
			fmt.Sprintf("%d. %s", i+1, item.Question.Prompt),
			item.Question.Options, item.Question.CorrectAnswer, item.Chosen, cw)
		h := lipgloss.Height(block) + 1
		if used+h > height && i > s.reviewTop {
			break
		}
		b.WriteString(block)
		b.WriteString("\n")
		used += h
	}

	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Left).Render(b.String()))
}

func formatElapsed(secs float64) string {
	total := int(secs + 0.5)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
