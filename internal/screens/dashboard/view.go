package dashboard

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wardtrain/internal/assessment"
	"github.com/abhisek/wardtrain/internal/progress"
	"github.com/abhisek/wardtrain/internal/registry"
	"github.com/abhisek/wardtrain/internal/ui/components"
	"github.com/abhisek/wardtrain/internal/ui/layout"
	"github.com/abhisek/wardtrain/internal/ui/theme"
)

// cardHeight is the rendered height of one module card including borders.
const cardHeight = 6

func (s *DashboardScreen) View(width, height int) string {
	cw := width - 4
	if cw > 100 {
		cw = 100
	}

	var data progress.Data
	var overall progress.Overall
	if s.deps.Progress != nil {
		data = s.deps.Progress.Snapshot()
		overall = s.deps.Progress.Overall()
	}

	var b strings.Builder
	used := 0

	if !layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight) {
		b.WriteString(s.renderStats(overall, cw))
		b.WriteString("\n")
		used += 4
	}

	bar := components.NewProgressBar("Overall", float64(overall.CompletionRate)/100, true, cw)
	b.WriteString(bar.View())
	b.WriteString("\n\n")
	b.WriteString(renderTabs(s.category))
	b.WriteString("\n")
	used += 4

	if s.filter.Focused() || s.filter.Query() != "" {
		b.WriteString(s.filter.View())
		b.WriteString("\n")
		used++
	}

	switch {
	case s.confirmReset == resetAll:
		b.WriteString(theme.Notice.Render("Reset progress for ALL modules? (y/n)"))
		b.WriteString("\n")
		used += 3
	case s.confirmReset != "":
		b.WriteString(theme.Notice.Render("Reset progress for " + s.moduleTitle(s.confirmReset) + "? (y/n)"))
		b.WriteString("\n")
		used += 3
	case s.notice != "":
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render(s.notice))
		b.WriteString("\n")
		used++
	}

	mods := s.visible()
	if len(mods) == 0 {
		b.WriteString(theme.Hint.Render("No modules match."))
		return lipgloss.NewStyle().Padding(0, 2).Render(b.String())
	}

	fit := (height - used) / cardHeight
	if fit < 1 {
		fit = 1
	}
	first := 0
	if s.cursor >= fit {
		first = s.cursor - fit + 1
	}
	last := min(first+fit, len(mods))

	for i := first; i < last; i++ {
		m := mods[i]
		b.WriteString(renderCard(m, data[m.ID], i == s.cursor, cw, layout.IsCompactWidth(width)))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Padding(0, 2).Render(b.String())
}

func (s *DashboardScreen) renderStats(o progress.Overall, width int) string {
	totalMinutes := 0
	for _, m := range s.deps.Registry.All() {
		totalMinutes += m.EstimatedMinutes
	}

	boxWidth := width/4 - 2
	box := func(value, label string, c lipgloss.Style) string {
		return lipgloss.NewStyle().
			Width(boxWidth).
			Align(lipgloss.Center).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Render(c.Bold(true).Render(value) + "\n" +
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(label))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		box(fmt.Sprintf("%d/%d", o.CompletedModules, o.TotalModules), "Completed",
			lipgloss.NewStyle().Foreground(theme.Success)),
		box(fmt.Sprintf("%d%%", o.CompletionRate), "Completion Rate",
			lipgloss.NewStyle().Foreground(theme.Secondary)),
		box(fmt.Sprintf("%d%%", o.AverageScore), "Average Score",
			lipgloss.NewStyle().Foreground(theme.Accent)),
		box(assessment.FormatDuration(totalMinutes), "Total Time",
			lipgloss.NewStyle().Foreground(theme.Text)),
	)
}

func renderTabs(active registry.Category) string {
	tabs := []string{tab("All", active == "")}
	for _, c := range registry.AllCategories() {
		tabs = append(tabs, tab(c.DisplayName(), active == c))
	}
	return strings.Join(tabs, "  ")
}

func tab(label string, active bool) string {
	if active {
		return lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.Primary).Bold(true).Padding(0, 1).Render(label)
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Padding(0, 1).Render(label)
}

func renderCard(m registry.Module, p progress.ModuleProgress, selected bool, width int, compact bool) string {
	accent := theme.ModuleColor(m.Color)

	title := strings.TrimSpace(m.Icon + " " + m.Title)
	if selected {
		title = "▸ " + title
	}
	titleStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	if selected {
		titleStyle = titleStyle.Foreground(accent)
	}
	left := titleStyle.Render(title)
	right := statusBadge(p)
	gap := width - 6 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	line1 := left + strings.Repeat(" ", gap) + right

	desc := []rune(m.Description)
	if limit := width - 8; len(desc) > limit && limit > 3 {
		desc = append(desc[:limit-3], []rune("...")...)
	}
	line2 := lipgloss.NewStyle().Foreground(theme.TextDim).Render(string(desc))

	meta := []string{
		m.Category.DisplayName(),
		assessment.FormatDuration(m.EstimatedMinutes),
		fmt.Sprintf("%d questions", m.QuestionCount),
	}
	if !compact {
		meta = append(meta, fmt.Sprintf("pass %d%%", m.PassingScore))
	}
	line3 := lipgloss.NewStyle().Foreground(theme.TextDim).Render(strings.Join(meta, " · "))

	var rec []string
	if p.BestScore != nil {
		rec = append(rec, fmt.Sprintf("Best %d%%", *p.BestScore))
	}
	if p.Attempts > 0 {
		rec = append(rec, fmt.Sprintf("%d attempt(s)", p.Attempts))
	}
	if p.Completed && p.CompletedAt != nil {
		rec = append(rec, "Completed "+assessment.FormatDate(p.CompletedAt))
	}
	line4 := lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Join(rec, " · "))
	if len(rec) == 0 {
		line4 = theme.Hint.Render("Not attempted yet")
	}

	border := theme.Border
	if selected {
		border = accent
	}
	return components.Card(strings.Join([]string{line1, line2, line3, line4}, "\n"), width, border)
}

func statusBadge(p progress.ModuleProgress) string {
	switch {
	case p.Completed:
		return theme.Correct.Render("✓ Completed")
	case p.Attempts > 0 || p.Score != nil:
		return lipgloss.NewStyle().Foreground(theme.Accent).Render("● In progress")
	default:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("○ Not started")
	}
}
