package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"openhandsctl/internal/provision"
)

func newUpCommand(app *App) *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "up",
		Short: "Provision the host and deploy OpenHands",
		Long: `Run the full provisioning sequence:
  1. VirtualizationReady - verify hardware virtualization
  2. RuntimeInstalled    - verify or install Docker
  3. RuntimeRunning      - verify or start the Docker daemon
  4. WorkspaceReady      - create the workspace and state directories
  5. ConfigWritten       - write the docker-compose configuration
  6. ImagesPulled        - pre-pull the application and sandbox images
  7. Deployed            - start the container and wait for it to run

Steps that need to change the machine ask for confirmation first; pass --yes
to accept every prompt for unattended runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.Printer.SetAssumeYes(assumeYes)

			pipeline := provision.NewPipeline(app.Config, app.Probe, app.Installer, app.Launcher, app.Emitter, app.Printer)
			pipeline.SetReporter(app.Printer)

			if err := pipeline.Run(cmd.Context()); err != nil {
				var stepErr *provision.StepError
				if errors.As(err, &stepErr) {
					app.Printer.Failure(stepErr.Step, stepErr.Result.Reason)
				}
				return NewExitError(1)
			}

			app.Printer.Success(app.Config.URL())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "accept every confirmation prompt")

	return cmd
}
