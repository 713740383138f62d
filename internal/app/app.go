package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wardtrain/internal/router"
	"github.com/abhisek/wardtrain/internal/screen"
	"github.com/abhisek/wardtrain/internal/screens/dashboard"
	"github.com/abhisek/wardtrain/internal/screens/overview"
	"github.com/abhisek/wardtrain/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router   *router.Router
	deps     screen.Deps
	initCmds []tea.Cmd
	width    int
	height   int
}

// Options configures the application.
type Options struct {
	Deps screen.Deps

	// StartModule opens the overview of this module on launch when set.
	StartModule string
}

// newAppModel creates a new AppModel with the dashboard as root screen.
func newAppModel(opts Options) AppModel {
	var start screen.Screen
	if opts.StartModule != "" && opts.Deps.Registry != nil {
		if m, ok := opts.Deps.Registry.ByID(opts.StartModule); ok {
			start = overview.New(opts.Deps, m)
		}
	}
	return assemble(opts.Deps, dashboard.New(opts.Deps), start)
}

// assemble builds the model with root at the bottom of the stack and start,
// when non-nil, pushed on top. The screens' Init commands run from Init.
func assemble(deps screen.Deps, root, start screen.Screen) AppModel {
	r := router.New(root)
	cmds := []tea.Cmd{root.Init()}
	if start != nil {
		cmds = append(cmds, r.Push(start))
	}
	return AppModel{
		router:   r,
		deps:     deps,
		initCmds: cmds,
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.initCmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) headerStats() layout.HeaderStats {
	if m.deps.Progress == nil {
		return layout.HeaderStats{}
	}
	o := m.deps.Progress.Overall()
	return layout.HeaderStats{CompletionRate: o.CompletionRate, AverageScore: o.AverageScore}
}

func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if frame := m.render(); frame != "" {
		v.SetContent(frame)
	}
	return v
}

// render draws the full frame, or "" before the first window size arrives.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	title := ""
	if active := m.router.Active(); active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.headerStats(), m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
