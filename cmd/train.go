package cmd

import (
	"github.com/spf13/cobra"
)

var trainCmd = &cobra.Command{
	Use:   "train <module>",
	Short: "Open a training module directly",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, args[0])
	},
}
