package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRenderCommand(app *App) *cobra.Command {
	var toStdout bool

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the docker-compose configuration",
		Long: `Render the docker-compose document from the resolved configuration and
write it to its configured path. With --stdout the document is printed
instead of written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if toStdout {
				data, err := app.Emitter.Render()
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), string(data))
				return nil
			}

			path, err := app.Emitter.Write()
			if err != nil {
				return err
			}
			app.Printer.Statusf("wrote %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&toStdout, "stdout", false, "print the document instead of writing it")

	return cmd
}
