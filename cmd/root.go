package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wardtrain",
	Short: "Hospital staff training assessments",
	Long:  "WardTrain — terminal quiz app for hospital staff training modules, with persistent progress tracking.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides WARDTRAIN_DB env var)")
	rootCmd.PersistentFlags().StringArray("bank", nil, "Extra question bank JSON file (repeatable; adds to WARDTRAIN_BANKS)")
	rootCmd.PersistentFlags().Bool("ephemeral", false, "Keep progress in memory only (overrides WARDTRAIN_EPHEMERAL)")

	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(modulesCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}
