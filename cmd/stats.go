package cmd

import (
	"fmt"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/wardtrain/internal/assessment"
	"github.com/abhisek/wardtrain/internal/progress"
	"github.com/abhisek/wardtrain/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show training progress statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		out := cmd.OutOrStdout()
		o := rt.progress.Overall()
		label := lipgloss.NewStyle().Foreground(theme.TextDim)
		value := lipgloss.NewStyle().Bold(true)

		fmt.Fprintln(out, label.Render("Completed modules: ")+value.Render(fmt.Sprintf("%d/%d", o.CompletedModules, o.TotalModules)))
		fmt.Fprintln(out, label.Render("Completion rate:   ")+value.Render(fmt.Sprintf("%d%%", o.CompletionRate)))
		fmt.Fprintln(out, label.Render("Average score:     ")+value.Render(fmt.Sprintf("%d%%", o.AverageScore)))

		if rt.db != nil {
			if at, ok, err := rt.db.KV().UpdatedAt(cmd.Context(), rt.cfg.ProgressKey); err != nil {
				return fmt.Errorf("read save time: %w", err)
			} else if ok {
				fmt.Fprintln(out, label.Render("Last saved:        ")+value.Render(at.Local().Format("Jan 2, 2006 15:04")))
			}
		}
		fmt.Fprintln(out)

		fmt.Fprintf(out, "%-16s  %-12s  %6s  %6s  %8s  %s\n",
			"Module", "Status", "Score", "Best", "Attempts", "Completed")
		fmt.Fprintln(out, strings.Repeat("─", 72))

		data := rt.progress.Snapshot()
		for _, id := range moduleOrder(rt.registry.IDs(), data) {
			p := data[id]
			fmt.Fprintf(out, "%-16s  %-12s  %6s  %6s  %8d  %s\n",
				id, status(p), pct(p.Score), pct(p.BestScore), p.Attempts, assessment.FormatDate(p.CompletedAt))
		}
		return nil
	},
}

// moduleOrder lists registered IDs first, then any IDs only present in data.
func moduleOrder(registered []string, data progress.Data) []string {
	seen := make(map[string]bool, len(registered))
	order := make([]string, 0, len(data))
	for _, id := range registered {
		seen[id] = true
		order = append(order, id)
	}
	var extra []string
	for id := range data {
		if !seen[id] {
			extra = append(extra, id)
		}
	}
	slices.Sort(extra)
	return append(order, extra...)
}

func status(p progress.ModuleProgress) string {
	switch {
	case p.Completed:
		return "completed"
	case p.Attempts > 0 || p.Score != nil:
		return "in progress"
	default:
		return "not started"
	}
}

func pct(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d%%", *v)
}
