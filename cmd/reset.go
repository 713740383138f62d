package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset [module]",
	Short: "Reset progress for one module, or all modules",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		out := cmd.OutOrStdout()
		if len(args) == 0 {
			rt.progress.ResetAll(cmd.Context())
			fmt.Fprintln(out, "Progress reset for all modules.")
			return nil
		}

		m, err := rt.lookupModule(args[0])
		if err != nil {
			return err
		}
		rt.progress.Reset(cmd.Context(), m.ID)
		fmt.Fprintf(out, "Progress reset for %s.\n", m.Title)
		return nil
	},
}
