package overview

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wardtrain/internal/assessment"
	"github.com/abhisek/wardtrain/internal/registry"
	"github.com/abhisek/wardtrain/internal/router"
	"github.com/abhisek/wardtrain/internal/screen"
	assessmentscreen "github.com/abhisek/wardtrain/internal/screens/assessment"
	"github.com/abhisek/wardtrain/internal/ui/components"
	"github.com/abhisek/wardtrain/internal/ui/layout"
	"github.com/abhisek/wardtrain/internal/ui/theme"
)

// OverviewScreen introduces a module before the assessment starts.
type OverviewScreen struct {
	deps    screen.Deps
	module  registry.Module
	hasBank bool
	start   components.Button
}

var _ screen.Screen = (*OverviewScreen)(nil)
var _ screen.KeyHintProvider = (*OverviewScreen)(nil)

// New creates an OverviewScreen for module.
func New(deps screen.Deps, module registry.Module) *OverviewScreen {
	s := &OverviewScreen{deps: deps, module: module}
	if deps.Catalog != nil {
		b, ok := deps.Catalog.Bank(module.ID)
		s.hasBank = ok && len(b.Questions) > 0
	}
	s.start = components.NewButton("Start Assessment", func() tea.Cmd {
		next := assessmentscreen.New(s.deps, s.module)
		return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	})
	s.start.Disabled = !s.hasBank
	return s
}

func (s *OverviewScreen) Init() tea.Cmd {
	return nil
}

func (s *OverviewScreen) Title() string {
	return "Assessment Overview"
}

func (s *OverviewScreen) KeyHints() []layout.KeyHint {
	if !s.hasBank {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start assessment"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *OverviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.start, cmd = s.start.Update(msg)
	return s, cmd
}

func (s *OverviewScreen) View(width, height int) string {
	m := s.module
	cw := components.ContentWidth(width)
	accent := theme.ModuleColor(m.Color)
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString(center.Foreground(accent).Bold(true).Render(strings.TrimSpace(m.Icon + " " + m.Title)))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render(m.Category.DisplayName()))
	b.WriteString("\n\n")
	if m.Description != "" {
		b.WriteString(center.Foreground(theme.Text).Render(m.Description))
		b.WriteString("\n\n")
	}

	stats := []string{
		stat(fmt.Sprintf("%d", m.QuestionCount), "Questions"),
		stat(fmt.Sprintf("%d%%", m.PassingScore), "Passing Score"),
		stat("~"+assessment.FormatDuration(m.EstimatedMinutes), "Duration"),
	}
	b.WriteString(center.Render(lipgloss.JoinHorizontal(lipgloss.Top, stats...)))
	b.WriteString("\n")

	if len(m.Topics) > 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Topics Covered:"))
		b.WriteString("\n")
		for _, t := range m.Topics {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("  • " + t))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if line := s.priorLine(); line != "" {
		b.WriteString(center.Foreground(theme.Secondary).Render(line))
		b.WriteString("\n\n")
	}

	if !layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight) {
		b.WriteString(theme.Notice.Width(cw).Render(
			"Important: this assessment covers critical safety information. " +
				"Consult hospital protocols for clinical practice."))
		b.WriteString("\n\n")
	}

	if s.hasBank {
		b.WriteString(center.Render(s.start.View()))
	} else {
		b.WriteString(center.Render(theme.Incorrect.Render("No questions are available for this module yet.")))
	}

	return components.Center(b.String(), width, height)
}

// priorLine summarizes earlier attempts, or returns "" when there are none.
func (s *OverviewScreen) priorLine() string {
	if s.deps.Progress == nil {
		return ""
	}
	p, ok := s.deps.Progress.Get(s.module.ID)
	if !ok || p.Attempts == 0 && p.BestScore == nil {
		return ""
	}
	parts := []string{fmt.Sprintf("Attempts: %d", p.Attempts)}
	if p.BestScore != nil {
		parts = append(parts, fmt.Sprintf("Best score: %d%%", *p.BestScore))
	}
	if p.Completed {
		parts = append(parts, "Completed "+assessment.FormatDate(p.CompletedAt))
	}
	return strings.Join(parts, "   ")
}

func stat(value, label string) string {
	return lipgloss.NewStyle().
		Width(18).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(value) + "\n" +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(label))
}
