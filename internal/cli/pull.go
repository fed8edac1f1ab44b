package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPullCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Pull the application and sandbox images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			refs := []string{app.Config.Images.App, app.Config.Images.Sandbox}

			for _, ref := range refs {
				app.Printer.Statusf("pulling %s", ref)
				if err := app.Launcher.Pull(cmd.Context(), ref); err != nil {
					return fmt.Errorf("failed to pull %s: %w", ref, err)
				}
			}

			app.Printer.Statusf("images present")
			return nil
		},
	}
}
