package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/wardtrain/internal/progress"
)

var recordCmd = &cobra.Command{
	Use:   "record <module>",
	Short: "Record an externally supervised assessment result",
	Long: `Record a score for a module, for example from a supervised paper assessment.

The module is marked completed when --completed is given, or otherwise when the
score meets the module's passing score.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		score, _ := cmd.Flags().GetInt("score")
		if score < 0 || score > 100 {
			return fmt.Errorf("score must be between 0 and 100, got %d", score)
		}

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		m, err := rt.lookupModule(args[0])
		if err != nil {
			return err
		}

		completed := m.Passed(score)
		if cmd.Flags().Changed("completed") {
			completed, _ = cmd.Flags().GetBool("completed")
		}

		u := progress.Update{Score: progress.Int(score), Completed: progress.Bool(completed)}
		if minutes, _ := cmd.Flags().GetInt("minutes"); minutes > 0 {
			u.TimeSpent = progress.Int(minutes * 60)
		}
		p := rt.progress.UpdateProgress(cmd.Context(), m.ID, u)

		fmt.Fprintf(cmd.OutOrStdout(), "%s: score %d%%, best %s, %d attempt(s), %s\n",
			m.ID, score, pct(p.BestScore), p.Attempts, status(p))
		return nil
	},
}

func init() {
	recordCmd.Flags().Int("score", 0, "Score in percent (required)")
	recordCmd.Flags().Bool("completed", false, "Mark the module completed (default: score >= passing score)")
	recordCmd.Flags().Int("minutes", 0, "Time spent in minutes")
	_ = recordCmd.MarkFlagRequired("score")
}
