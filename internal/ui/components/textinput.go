package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// FilterInput wraps bubbles/textinput as a search box.
type FilterInput struct {
	Model textinput.Model
}

// NewFilterInput creates a blurred filter input.
func NewFilterInput(placeholder string, maxLen int) FilterInput {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = placeholder
	if maxLen > 0 {
		ti.CharLimit = maxLen
	}
	return FilterInput{Model: ti}
}

// Focus starts capturing keystrokes.
func (f *FilterInput) Focus() tea.Cmd {
	return f.Model.Focus()
}

// Blur stops capturing keystrokes and keeps the current value.
func (f *FilterInput) Blur() {
	f.Model.Blur()
}

// Focused reports whether the input captures keystrokes.
func (f FilterInput) Focused() bool {
	return f.Model.Focused()
}

// Clear empties the input.
func (f *FilterInput) Clear() {
	f.Model.SetValue("")
}

// Update handles messages.
func (f FilterInput) Update(msg tea.Msg) (FilterInput, tea.Cmd) {
	var cmd tea.Cmd
	f.Model, cmd = f.Model.Update(msg)
	return f, cmd
}

// View renders the input.
func (f FilterInput) View() string {
	return f.Model.View()
}

// Query returns the trimmed, lower-cased filter text.
func (f FilterInput) Query() string {
	return strings.ToLower(strings.TrimSpace(f.Model.Value()))
}
