package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wardtrain/internal/ui/theme"
)

// Button is a styled button component. A disabled button renders dimmed and
// ignores key presses.
type Button struct {
	Label    string
	Disabled bool
	Focused  bool
	OnPress  func() tea.Cmd
}

// NewButton creates a new focused button.
func NewButton(label string, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		Focused: true,
		OnPress: onPress,
	}
}

// Update handles key events.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if b.Disabled || !b.Focused {
		return b, nil
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok {
		if kmsg.String() == "enter" && b.OnPress != nil {
			return b, b.OnPress()
		}
	}

	return b, nil
}

// View renders the button.
func (b Button) View() string {
	if b.Disabled {
		return theme.ButtonInactive.Render(b.Label)
	}
	if b.Focused {
		return theme.ButtonActive.Render("▸ " + b.Label)
	}
	return theme.ButtonInactive.
		BorderForeground(theme.Primary).
		Foreground(theme.Text).
		Render(b.Label)
}
