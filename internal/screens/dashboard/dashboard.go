package dashboard

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wardtrain/internal/registry"
	"github.com/abhisek/wardtrain/internal/router"
	"github.com/abhisek/wardtrain/internal/screen"
	"github.com/abhisek/wardtrain/internal/screens/overview"
	"github.com/abhisek/wardtrain/internal/ui/components"
	"github.com/abhisek/wardtrain/internal/ui/layout"
)

// resetAll is the confirmReset value for a reset of every module.
const resetAll = "*"

// DashboardScreen lists the training modules with their progress.
type DashboardScreen struct {
	deps screen.Deps

	cursor   int
	category registry.Category // empty for all categories
	filter   components.FilterInput

	confirmReset string // module ID, resetAll, or empty
	notice       string
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)
var _ screen.EscapeHandler = (*DashboardScreen)(nil)

// New creates a DashboardScreen.
func New(deps screen.Deps) *DashboardScreen {
	return &DashboardScreen{
		deps:   deps,
		filter: components.NewFilterInput("filter modules", 40),
	}
}

func (s *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (s *DashboardScreen) Title() string {
	return "Training Dashboard"
}

func (s *DashboardScreen) HandlesEscape() bool {
	return true
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirmReset != "":
		return []layout.KeyHint{
			{Key: "Y", Description: "Reset"},
			{Key: "N", Description: "Cancel"},
		}
	case s.filter.Focused():
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Clear"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Tab", Description: "Category"},
		{Key: "/", Description: "Filter"},
		{Key: "r/R", Description: "Reset one/all"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// visible returns the registered modules that pass the category and text
// filters, in registration order.
func (s *DashboardScreen) visible() []registry.Module {
	var mods []registry.Module
	if s.category == "" {
		mods = s.deps.Registry.All()
	} else {
		mods = s.deps.Registry.ByCategory(s.category)
	}

	q := s.filter.Query()
	if q == "" {
		return mods
	}
	out := mods[:0]
	for _, m := range mods {
		if matches(m, q) {
			out = append(out, m)
		}
	}
	return out
}

func matches(m registry.Module, q string) bool {
	fields := append([]string{m.ID, m.Title, m.Description}, m.Topics...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func (s *DashboardScreen) selected() (registry.Module, bool) {
	mods := s.visible()
	if s.cursor < 0 || s.cursor >= len(mods) {
		return registry.Module{}, false
	}
	return mods[s.cursor], true
}

func (s *DashboardScreen) clampCursor() {
	n := len(s.visible())
	if s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if s.filter.Focused() {
			var cmd tea.Cmd
			s.filter, cmd = s.filter.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	switch {
	case s.confirmReset != "":
		return s.handleResetConfirm(kmsg)
	case s.filter.Focused():
		return s.handleFilterKey(kmsg)
	}
	return s.handleKey(kmsg)
}

func (s *DashboardScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	s.notice = ""
	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.visible())-1 {
			s.cursor++
		}
	case "enter":
		if m, ok := s.selected(); ok {
			next := overview.New(s.deps, m)
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	case "tab":
		s.category = cycleCategory(s.category, 1)
		s.clampCursor()
	case "shift+tab":
		s.category = cycleCategory(s.category, -1)
		s.clampCursor()
	case "/":
		return s, s.filter.Focus()
	case "esc":
		if s.filter.Query() != "" {
			s.filter.Clear()
			s.clampCursor()
		}
	case "r":
		if m, ok := s.selected(); ok {
			s.confirmReset = m.ID
		}
	case "R":
		s.confirmReset = resetAll
	}
	return s, nil
}

func (s *DashboardScreen) handleFilterKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.filter.Clear()
		s.filter.Blur()
		s.clampCursor()
		return s, nil
	case "enter":
		s.filter.Blur()
		return s, nil
	}
	var cmd tea.Cmd
	s.filter, cmd = s.filter.Update(msg)
	s.cursor = 0
	return s, cmd
}

func (s *DashboardScreen) handleResetConfirm(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		target := s.confirmReset
		s.confirmReset = ""
		if s.deps.Progress == nil {
			return s, nil
		}
		ctx := context.Background()
		if target == resetAll {
			s.deps.Progress.ResetAll(ctx)
			s.notice = "All progress reset."
		} else {
			s.deps.Progress.Reset(ctx, target)
			s.notice = "Progress reset for " + s.moduleTitle(target) + "."
		}
	case "n", "N", "esc":
		s.confirmReset = ""
	}
	return s, nil
}

func (s *DashboardScreen) moduleTitle(id string) string {
	if m, ok := s.deps.Registry.ByID(id); ok {
		return m.Title
	}
	return id
}

// cycleCategory steps through "all" followed by every category.
func cycleCategory(c registry.Category, step int) registry.Category {
	order := append([]registry.Category{""}, registry.AllCategories()...)
	idx := 0
	for i, oc := range order {
		if oc == c {
			idx = i
			break
		}
	}
	idx = (idx + step + len(order)) % len(order)
	return order[idx]
}
