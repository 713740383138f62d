package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/wardtrain/internal/app"
)

// runApp wires the services and launches the TUI, optionally opening the
// overview of startModule.
func runApp(cmd *cobra.Command, startModule string) error {
	rt, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	if startModule != "" {
		if _, err := rt.lookupModule(startModule); err != nil {
			return err
		}
	}

	return app.Run(app.Options{
		Deps:        rt.deps(),
		StartModule: startModule,
	})
}
