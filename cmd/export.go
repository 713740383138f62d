package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/wardtrain/internal/progress"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print saved progress as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		raw, ok, err := rt.kv.Get(cmd.Context(), rt.cfg.ProgressKey)
		if err != nil {
			return fmt.Errorf("read progress: %w", err)
		}
		if !ok {
			raw, err = progress.Encode(rt.progress.Snapshot())
			if err != nil {
				return fmt.Errorf("encode progress: %w", err)
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), raw)
		return nil
	},
}
