package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"openhandsctl/internal/config"
)

func newLogsCommand(app *App) *cobra.Command {
	var tail int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the tail of the container log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := app.Launcher.Logs(cmd.Context(), config.ContainerName, tail)
			if err != nil {
				return fmt.Errorf("failed to read container logs: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().IntVar(&tail, "tail", 50, "number of log lines to show")

	return cmd
}
