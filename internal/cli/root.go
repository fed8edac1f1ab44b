package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"openhandsctl/internal/config"
)

// NewRootCommand builds the command tree over the given [App].
func NewRootCommand(app *App) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "openhandsctl",
		Short: "Install, configure and run the OpenHands AI assistant",
		Long: `openhandsctl provisions a host to run the OpenHands AI assistant in Docker.

It walks the machine from bare metal to a running container: checking
virtualization, installing and starting Docker where needed, preparing the
workspace directories, writing the docker-compose configuration, pulling the
images and deploying the application.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if verbose {
				app.Config.Verbose = true
				app.Printer.SetVerbose(true)
			}
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show detail lines from each step")

	root.AddCommand(
		newUpCommand(app),
		newDownCommand(app),
		newCheckCommand(app),
		newStatusCommand(app),
		newLogsCommand(app),
		newPullCommand(app),
		newRenderCommand(app),
	)

	return root
}

// Execute loads configuration, wires the [App] and runs the command tree.
// It returns the process exit code; main calls os.Exit with it.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	app, err := NewApp(cfg, os.Stdout, os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	root := NewRootCommand(app)
	if err := root.ExecuteContext(ctx); err != nil {
		if code, ok := IsExitError(err); ok {
			return code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}
