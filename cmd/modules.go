package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/abhisek/wardtrain/internal/assessment"
	"github.com/abhisek/wardtrain/internal/registry"
)

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List training modules (optionally filtered by category)",
	RunE: func(cmd *cobra.Command, args []string) error {
		catVal, _ := cmd.Flags().GetString("category")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		reg := registry.Builtin()
		catalog, err := assessment.BuiltinCatalog()
		if err != nil {
			return fmt.Errorf("load question banks: %w", err)
		}
		for _, p := range cfg.Banks {
			if p == "" {
				continue
			}
			if _, err := catalog.LoadFile(p, reg); err != nil {
				return fmt.Errorf("load question bank: %w", err)
			}
		}

		modules := reg.All()
		if catVal != "" {
			cat, err := registry.ParseCategory(catVal)
			if err != nil {
				return err
			}
			modules = reg.ByCategory(cat)
			if len(modules) == 0 {
				return fmt.Errorf("no modules found for category %q", catVal)
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-16s  %-36s  %-15s  %8s  %9s  %5s  %s\n",
			"ID", "Title", "Category", "Duration", "Questions", "Pass", "Bank")
		fmt.Fprintln(out, strings.Repeat("─", 108))

		for _, m := range modules {
			title := fitColumn(m.Title, 36)
			bank := "-"
			if b, ok := catalog.Bank(m.ID); ok {
				bank = fmt.Sprintf("%d", len(b.Questions))
			}
			fmt.Fprintf(out, "%-16s  %s  %-15s  %8s  %9d  %4d%%  %s\n",
				m.ID, title, m.Category.DisplayName(),
				assessment.FormatDuration(m.EstimatedMinutes), m.QuestionCount, m.PassingScore, bank)
		}

		fmt.Fprintf(out, "\n%d modules\n", len(modules))
		return nil
	},
}

// fitColumn truncates s to width terminal cells, ending in "..." when cut,
// and pads it with spaces to exactly width cells.
func fitColumn(s string, width int) string {
	s = ansi.Truncate(s, width, "...")
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

func init() {
	modulesCmd.Flags().String("category", "", "Filter by category (fundamentals, critical-care, emergency, specialty)")
}
