package assessment

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wardtrain/internal/ui/components"
	"github.com/abhisek/wardtrain/internal/ui/theme"
)

func (s *AssessmentScreen) View(width, height int) string {
	if s.attempt == nil {
		return components.Center(theme.Incorrect.Render(s.errMsg)+"\n\n"+
			theme.Hint.Render("Press Esc to go back"), width, height)
	}
	if s.confirmQuit {
		return renderQuitConfirm(s.attempt.Answered(), width, height)
	}

	cw := components.ContentWidth(width)
	accent := theme.ModuleColor(s.module.Color)

	var b strings.Builder

	counter := fmt.Sprintf("Question %d of %d", s.attempt.Index()+1, s.attempt.Len())
	pct := fmt.Sprintf("%d%% complete", int(s.attempt.Progress()*100+0.5))
	gap := cw - lipgloss.Width(counter) - lipgloss.Width(pct)
	if gap < 1 {
		gap = 1
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(counter))
	b.WriteString(strings.Repeat(" ", gap))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(pct))
	b.WriteString("\n")

	bar := components.NewProgressBar("", s.attempt.Progress(), false, cw)
	bar.Color = accent
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	b.WriteString(components.Card(s.choice.View(cw-6), cw, accent))
	b.WriteString("\n\n")

	prev := components.Button{Label: "◂ Previous", Disabled: s.attempt.IsFirst()}
	nextLabel := "Next ▸"
	if s.attempt.IsLast() {
		nextLabel = "Complete Assessment"
	}
	next := components.Button{Label: nextLabel, Disabled: !s.attempt.CanAdvance(), Focused: true}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center, prev.View(), "   ", next.View())
	b.WriteString(lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(buttons))
	b.WriteString("\n")

	if !s.attempt.CanAdvance() {
		b.WriteString(lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Render(theme.Hint.Render("Choose an answer to continue")))
	}

	return components.Center(b.String(), width, height)
}

func renderQuitConfirm(answered, width, height int) string {
	msg := theme.Title.Render("Leave this assessment?") + "\n\n" +
		theme.Body.Render(fmt.Sprintf("You have answered %d question(s). Nothing will be recorded.", answered)) + "\n\n" +
		theme.Hint.Render("Y to leave, N to keep going")
	return components.Center(components.Card(msg, components.ContentWidth(width), theme.Accent), width, height)
}
