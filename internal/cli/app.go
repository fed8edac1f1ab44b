// Package cli implements the openhandsctl command tree.
//
// Commands receive their collaborators through an [App] container rather
// than constructing them inline, so tests can swap in scripted doubles and
// assert on behavior without a Docker daemon.
package cli

import (
	"fmt"
	"io"

	"openhandsctl/internal/compose"
	"openhandsctl/internal/config"
	"openhandsctl/internal/engine"
	"openhandsctl/internal/installer"
	"openhandsctl/internal/provision"
	"openhandsctl/internal/ui"
)

// App bundles the collaborators every command draws from.
type App struct {
	Config    *config.Config
	Printer   *ui.Printer
	Probe     provision.Probe
	Installer provision.Installer
	Launcher  provision.Launcher
	Emitter   *compose.Emitter
}

// NewApp wires the production collaborators for the resolved configuration.
// The launch strategy selects which launcher backs the deployment; everything
// else is shared between the two strategies.
func NewApp(cfg *config.Config, out io.Writer, in io.Reader) (*App, error) {
	client, err := engine.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize runtime client: %w", err)
	}

	var launcher provision.Launcher
	switch cfg.Deploy.LaunchStrategy {
	case config.StrategyDirect:
		launcher = engine.NewDirectLauncher(client)
	default:
		launcher = engine.NewComposeLauncher(client, cfg.Deploy.ComposePath)
	}

	return &App{
		Config:    cfg,
		Printer:   ui.NewPrinter(out, in, cfg.Verbose),
		Probe:     client,
		Installer: installer.New(),
		Launcher:  launcher,
		Emitter:   compose.NewEmitter(cfg),
	}, nil
}
