package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wardtrain/internal/ui/theme"
)

// NoChoice marks a MultiChoice without a chosen option.
const NoChoice = -1

// MultiChoice is a lettered option list. Cursor is the highlighted row;
// Chosen is the recorded answer and survives cursor movement.
type MultiChoice struct {
	Prompt  string
	Options []string
	Cursor  int
	Chosen  int
}

// NewMultiChoice creates a selector with chosen pre-selected (NoChoice for
// none). The cursor starts on the chosen option.
func NewMultiChoice(prompt string, options []string, chosen int) MultiChoice {
	cursor := 0
	if chosen >= 0 && chosen < len(options) {
		cursor = chosen
	} else {
		chosen = NoChoice
	}
	return MultiChoice{
		Prompt:  prompt,
		Options: options,
		Cursor:  cursor,
		Chosen:  chosen,
	}
}

// OptionLabel returns the letter shown before option i.
func OptionLabel(i int) string {
	return string(rune('A' + i))
}

// Update moves the cursor and records choices. Enter or space chooses the
// highlighted option; a letter or digit chooses that option directly.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
		return m, nil
	case "enter", "space", " ":
		m.Chosen = m.Cursor
		return m, nil
	}

	if len(key) == 1 {
		idx := -1
		switch c := key[0]; {
		case c >= '1' && c <= '9':
			idx = int(c - '1')
		case c >= 'a' && c <= 'z':
			idx = int(c - 'a')
		case c >= 'A' && c <= 'Z':
			idx = int(c - 'A')
		}
		if idx >= 0 && idx < len(m.Options) {
			m.Cursor = idx
			m.Chosen = idx
		}
	}
	return m, nil
}

// View renders the prompt and options.
func (m MultiChoice) View(width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(width).
		Render(m.Prompt))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		marker := "○"
		if i == m.Chosen {
			marker = "●"
		}
		prefix := "  "
		if i == m.Cursor {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s %s)  %s", prefix, marker, OptionLabel(i), opt)

		style := theme.Unselected
		switch {
		case i == m.Chosen:
			style = theme.Selected
		case i == m.Cursor:
			style = lipgloss.NewStyle().Foreground(theme.Secondary)
		}
		b.WriteString(style.Width(width).Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderReview renders a question with its correct option marked and, when
// different, the chosen option marked wrong.
func RenderReview(prompt string, options []string, correct, chosen, width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(width).Render(prompt))
	b.WriteString("\n")
	for i, opt := range options {
		line := fmt.Sprintf("  %s)  %s", OptionLabel(i), opt)
		switch {
		case i == correct:
			b.WriteString(theme.Correct.Width(width).Render("✓" + line))
		case i == chosen:
			b.WriteString(theme.Incorrect.Width(width).Render("✗" + line))
		default:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(width).Render(" " + line))
		}
		b.WriteString("\n")
	}
	if chosen < 0 {
		b.WriteString(theme.Hint.Render("   (not answered)"))
		b.WriteString("\n")
	}
	return b.String()
}
