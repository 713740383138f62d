package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestMultiChoice_CursorAndChoose(t *testing.T) {
	mc := NewMultiChoice("Which zone?", []string{"Red", "Amber", "Green"}, NoChoice)

	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if mc.Cursor != 1 {
		t.Fatalf("Cursor = %d, want 1", mc.Cursor)
	}
	if mc.Chosen != NoChoice {
		t.Fatalf("moving the cursor must not choose, got %d", mc.Chosen)
	}

	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if mc.Chosen != 1 {
		t.Errorf("Chosen = %d, want 1", mc.Chosen)
	}
}

func TestMultiChoice_DirectSelection(t *testing.T) {
	mc := NewMultiChoice("q", []string{"a", "b", "c", "d"}, NoChoice)

	mc, _ = mc.Update(tea.KeyPressMsg{Code: 'c', Text: "c"})
	if mc.Chosen != 2 || mc.Cursor != 2 {
		t.Errorf("after 'c': Chosen=%d Cursor=%d, want 2/2", mc.Chosen, mc.Cursor)
	}

	mc, _ = mc.Update(tea.KeyPressMsg{Code: '4', Text: "4"})
	if mc.Chosen != 3 {
		t.Errorf("after '4': Chosen=%d, want 3", mc.Chosen)
	}

	mc, _ = mc.Update(tea.KeyPressMsg{Code: '9', Text: "9"})
	if mc.Chosen != 3 {
		t.Errorf("out of range digit changed choice to %d", mc.Chosen)
	}
}

func TestMultiChoice_KeepsPriorChoice(t *testing.T) {
	mc := NewMultiChoice("q", []string{"a", "b"}, 1)
	if mc.Cursor != 1 || mc.Chosen != 1 {
		t.Errorf("Cursor=%d Chosen=%d, want 1/1", mc.Cursor, mc.Chosen)
	}

	mc = NewMultiChoice("q", []string{"a", "b"}, 7)
	if mc.Chosen != NoChoice {
		t.Errorf("invalid prior choice kept: %d", mc.Chosen)
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	pressed := ""
	m := NewMenu([]MenuItem{
		{Label: "Retake", Disabled: true},
		{Label: "Review", Action: func() tea.Cmd { pressed = "review"; return nil }},
		{Label: "Dashboard", Action: func() tea.Cmd { pressed = "dashboard"; return nil }},
	})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want first enabled item 1", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("moved onto disabled item: %d", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if pressed != "dashboard" {
		t.Errorf("pressed = %q, want dashboard", pressed)
	}
}

func TestButton_Disabled(t *testing.T) {
	calls := 0
	b := NewButton("Next", func() tea.Cmd { calls++; return nil })
	b.Disabled = true
	b.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if calls != 0 {
		t.Error("disabled button was pressed")
	}

	b.Disabled = false
	b.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestProgressBar_Clamps(t *testing.T) {
	v := NewProgressBar("", 1.7, true, 30).View()
	if !strings.Contains(v, "100%") {
		t.Errorf("expected clamped 100%%, got %q", v)
	}
	v = NewProgressBar("", -1, true, 30).View()
	if !strings.Contains(v, "0%") {
		t.Errorf("expected clamped 0%%, got %q", v)
	}
}

func TestFilterInput_Query(t *testing.T) {
	f := NewFilterInput("search", 40)
	f.Focus()
	for _, r := range " Sepsis " {
		f, _ = f.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	if got := f.Query(); got != "sepsis" {
		t.Errorf("Query() = %q, want %q", got, "sepsis")
	}
	f.Clear()
	if f.Query() != "" {
		t.Error("Clear did not empty the input")
	}
}
