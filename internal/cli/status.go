package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"openhandsctl/internal/config"
)

func newStatusCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the deployment status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			line, err := app.Launcher.Status(cmd.Context(), config.ContainerName)
			if err != nil {
				return fmt.Errorf("failed to query container status: %w", err)
			}
			app.Printer.Statusf("%s: %s", config.ContainerName, line)
			return nil
		},
	}
}
