package dashboard

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wardtrain/internal/assessment"
	"github.com/abhisek/wardtrain/internal/progress"
	"github.com/abhisek/wardtrain/internal/registry"
	"github.com/abhisek/wardtrain/internal/router"
	"github.com/abhisek/wardtrain/internal/screen"
	"github.com/abhisek/wardtrain/internal/store"
)

func testDeps(t *testing.T) screen.Deps {
	t.Helper()
	reg := registry.Builtin()
	catalog, err := assessment.BuiltinCatalog()
	if err != nil {
		t.Fatalf("BuiltinCatalog: %v", err)
	}
	ps := progress.NewStore(reg, store.NewMemoryKV(), progress.DefaultConfig())
	ps.Load(context.Background())
	return screen.Deps{Registry: reg, Progress: ps, Catalog: catalog}
}

func press(s screen.Screen, keys ...tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		s, cmd = s.Update(k)
	}
	return s, cmd
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func typeText(s screen.Screen, text string) screen.Screen {
	for _, r := range text {
		s, _ = s.Update(key(r))
	}
	return s
}

func TestDashboard_Title(t *testing.T) {
	s := New(testDeps(t))
	if s.Title() != "Training Dashboard" {
		t.Errorf("Title = %q", s.Title())
	}
}

func TestDashboard_ViewListsModules(t *testing.T) {
	s := New(testDeps(t))
	view := s.View(100, 60)
	for _, want := range []string{"3Zone Deep Clean Assessment", "Noradrenaline Training", "Sepsis Guidelines 2024", "Completion Rate"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestDashboard_EnterOpensOverview(t *testing.T) {
	s := New(testDeps(t))
	_, cmd := press(s, tea.KeyPressMsg{Code: tea.KeyDown}, tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if push.Screen.Title() != "Assessment Overview" {
		t.Errorf("pushed %q", push.Screen.Title())
	}
}

func TestDashboard_CursorStaysInRange(t *testing.T) {
	s := New(testDeps(t))
	press(s, tea.KeyPressMsg{Code: tea.KeyUp})
	if s.cursor != 0 {
		t.Errorf("cursor = %d after up at top", s.cursor)
	}
	for range 10 {
		press(s, tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if s.cursor != 2 {
		t.Errorf("cursor = %d, want 2", s.cursor)
	}
}

func TestDashboard_CategoryTabs(t *testing.T) {
	s := New(testDeps(t))

	press(s, tea.KeyPressMsg{Code: tea.KeyTab})
	if s.category != registry.CategoryFundamentals {
		t.Fatalf("category = %q after one tab", s.category)
	}
	press(s, tea.KeyPressMsg{Code: tea.KeyTab})
	mods := s.visible()
	if len(mods) != 1 || mods[0].ID != "noradrenaline" {
		t.Errorf("critical care tab shows %v", mods)
	}

	press(s, tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	press(s, tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if s.category != "" {
		t.Errorf("category = %q, want all", s.category)
	}
}

func TestDashboard_Filter(t *testing.T) {
	s := New(testDeps(t))

	press(s, key('/'))
	if !s.filter.Focused() {
		t.Fatal("expected filter to take focus on /")
	}
	typeText(s, "fluid")
	mods := s.visible()
	if len(mods) != 1 || mods[0].ID != "sepsis" {
		t.Fatalf("filter by topic matched %v", mods)
	}

	press(s, tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.filter.Focused() {
		t.Error("Enter should leave the filter")
	}
	if len(s.visible()) != 1 {
		t.Error("Enter should keep the filter applied")
	}

	press(s, tea.KeyPressMsg{Code: tea.KeyEscape})
	if len(s.visible()) != 3 {
		t.Errorf("Esc should clear the filter, visible = %d", len(s.visible()))
	}
}

func TestDashboard_ResetModule(t *testing.T) {
	deps := testDeps(t)
	ctx := context.Background()
	deps.Progress.UpdateProgress(ctx, "sepsis", progress.Update{Completed: progress.Bool(true), Score: progress.Int(90)})
	deps.Progress.UpdateProgress(ctx, "3zone", progress.Update{Completed: progress.Bool(true), Score: progress.Int(85)})

	s := New(deps)
	press(s, tea.KeyPressMsg{Code: tea.KeyDown}, tea.KeyPressMsg{Code: tea.KeyDown}, key('r'))
	if s.confirmReset != "sepsis" {
		t.Fatalf("confirmReset = %q", s.confirmReset)
	}
	press(s, key('y'))

	p, _ := deps.Progress.Get("sepsis")
	if p.Completed || p.BestScore != nil || p.Attempts != 0 {
		t.Errorf("sepsis not reset: %+v", p)
	}
	p, _ = deps.Progress.Get("3zone")
	if !p.Completed {
		t.Error("reset of one module touched another")
	}
}

func TestDashboard_ResetAllCancel(t *testing.T) {
	deps := testDeps(t)
	deps.Progress.UpdateProgress(context.Background(), "3zone", progress.Update{Completed: progress.Bool(true)})

	s := New(deps)
	press(s, key('R'), key('n'))
	if s.confirmReset != "" {
		t.Error("expected confirmation to close")
	}
	if p, _ := deps.Progress.Get("3zone"); !p.Completed {
		t.Error("cancelled reset changed progress")
	}

	press(s, key('R'), key('y'))
	if deps.Progress.Overall().CompletedModules != 0 {
		t.Error("reset all left completed modules")
	}
}

func TestDashboard_KeyHints(t *testing.T) {
	s := New(testDeps(t))
	if len(s.KeyHints()) == 0 {
		t.Error("expected key hints")
	}
	press(s, key('R'))
	hints := s.KeyHints()
	if len(hints) != 2 || hints[0].Key != "Y" {
		t.Errorf("confirm hints = %v", hints)
	}
}
