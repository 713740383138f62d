package results

import (
	"context"
	"strings"
	"testing"
	"time"

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
	ps := progress.NewStore(reg, store.NewMemoryKV(), progress.DefaultConfig())
	ps.Load(context.Background())
	return screen.Deps{Registry: reg, Progress: ps}
}

func sepsis(t *testing.T, deps screen.Deps) registry.Module {
	t.Helper()
	m, ok := deps.Registry.ByID("sepsis")
	if !ok {
		t.Fatal("sepsis not registered")
	}
	return m
}

func result(correct, total int, passed bool) assessment.Result {
	q := assessment.Question{ID: 7, Prompt: "First-line fluid?", Options: []string{"Crystalloid", "Colloid"}, CorrectAnswer: 0}
	var review []assessment.ReviewItem
	for i := 0; i < total; i++ {
		chosen := 0
		if i >= correct {
			chosen = 1
		}
		review = append(review, assessment.ReviewItem{Question: q, Chosen: chosen})
	}
	return assessment.Result{
		AttemptID: "a1",
		ModuleID:  "sepsis",
		Correct:   correct,
		Total:     total,
		Score:     assessment.Score(make([]int, correct), make([]assessment.Question, total)),
		Passed:    passed,
		Duration:  95 * time.Second,
		Review:    review,
	}
}

type stubScreen struct{}

func (stubScreen) Init() tea.Cmd                           { return nil }
func (s stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (stubScreen) View(int, int) string                    { return "" }
func (stubScreen) Title() string                           { return "retake" }

func TestResults_ShowsSavedRecord(t *testing.T) {
	deps := testDeps(t)
	rec := progress.ModuleProgress{Completed: true, Attempts: 2, BestScore: progress.Int(100)}
	s := New(deps, sepsis(t, deps), result(8, 8, true), &rec, nil)

	if s.Init() != nil {
		t.Error("results should not defer any work to Init")
	}
	view := s.View(100, 40)
	if !strings.Contains(view, "Attempts: 2") || !strings.Contains(view, "Best score: 100%") {
		t.Error("missing saved record line")
	}
	if !strings.Contains(view, "Time: 1:35") {
		t.Error("missing elapsed time")
	}
}

func TestResults_PassedView(t *testing.T) {
	deps := testDeps(t)
	s := New(deps, sepsis(t, deps), result(8, 8, true), nil, func() screen.Screen { return stubScreen{} })
	view := s.View(100, 40)

	if !strings.Contains(view, "You scored 8 out of 8 questions correctly") {
		t.Error("missing score line")
	}
	if !strings.Contains(view, "Congratulations! You have passed the Sepsis Guidelines 2024.") {
		t.Error("missing pass message")
	}
	if strings.Contains(view, "Retake") {
		t.Error("retake must not be offered after a pass")
	}
}

func TestResults_FailedOffersRetake(t *testing.T) {
	deps := testDeps(t)
	s := New(deps, sepsis(t, deps), result(5, 8, false), nil, func() screen.Screen { return stubScreen{} })

	if !strings.Contains(s.View(100, 40), "You need 80% or higher to pass") {
		t.Error("missing fail message")
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected Retake on Enter")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok || msg.Screen.Title() != "retake" {
		t.Errorf("expected ReplaceScreenMsg with retake screen, got %#v", cmd())
	}
}

func TestResults_ReturnToDashboard(t *testing.T) {
	deps := testDeps(t)
	s := New(deps, sepsis(t, deps), result(8, 8, true), nil, nil)

	// Review is disabled without misses, so Dashboard is the only choice.
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Errorf("expected PopToRootMsg, got %T", cmd())
	}
}

func TestResults_Review(t *testing.T) {
	deps := testDeps(t)
	s := New(deps, sepsis(t, deps), result(6, 8, false), nil, nil)

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !s.reviewing || !s.HandlesEscape() {
		t.Fatal("expected review mode")
	}
	if !strings.Contains(s.View(100, 40), "Missed questions (2 of 8)") {
		t.Error("missing review heading")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if s.reviewing {
		t.Error("Esc should leave review mode")
	}
}
