package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDownCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Stop and remove the OpenHands deployment",
		Long: `Stop and remove the OpenHands container. The workspace and state
directories are left in place, so a later "up" resumes where you left off.
Running down when nothing is deployed is not an error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.Launcher.Down(cmd.Context()); err != nil {
				return fmt.Errorf("failed to stop deployment: %w", err)
			}
			app.Printer.Statusf("deployment stopped")
			return nil
		},
	}
}
