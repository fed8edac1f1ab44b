package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"openhandsctl/internal/engine"
)

// minFreeDiskGiB is the advisory free-space floor: the two images plus the
// sandbox layers weigh in around this much.
const minFreeDiskGiB = 10

func newCheckCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report host readiness without changing anything",
		Long: `Probe the host and report whether an "up" run would find its
prerequisites in place. Nothing is installed, started or written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			p := app.Printer
			ready := true

			virt := app.Probe.IsVirtualizationEnabled(ctx)
			p.Checkf(virt, "virtualization enabled")
			ready = ready && virt

			installed := app.Probe.IsInstalled(ctx)
			p.Checkf(installed, "container runtime installed")
			ready = ready && installed

			running := app.Probe.IsRunning(ctx)
			if running {
				if version, known := app.Probe.Version(ctx); known {
					p.Checkf(true, "runtime daemon answering (server version %s)", version)
				} else {
					p.Checkf(true, "runtime daemon answering")
				}
			} else {
				p.Checkf(false, "runtime daemon answering")
			}
			ready = ready && running

			if !engine.HasWSL(ctx) {
				p.Warnf("WSL is not responding; Docker Desktop depends on it")
			}

			if free, err := engine.FreeDiskGiB(filepath.Dir(app.Config.Workspace.Dir)); err == nil && free < minFreeDiskGiB {
				p.Warnf("only %.1f GiB free; the images need roughly %d GiB", free, minFreeDiskGiB)
			}

			if !ready {
				p.Statusf("host is not ready; run \"openhandsctl up\" to provision it")
				return NewExitError(1)
			}

			p.Statusf("host is ready")
			return nil
		},
	}
}
