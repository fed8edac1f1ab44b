package engine

import (
	"context"
	"fmt"
	"os/exec"

	"openhandsctl/internal/config"
)

// runCombined executes an external command and returns its combined output.
// Swappable for tests.
type runCombined func(ctx context.Context, name string, args ...string) ([]byte, error)

func execCombined(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// ComposeLauncher deploys via `docker compose` using the emitted compose
// document. The declarative path is the default strategy; probing, pulls,
// logs and status checks still go through the embedded API [Client].
type ComposeLauncher struct {
	*Client
	composePath string
	run         runCombined
}

// NewComposeLauncher wraps a [Client] with the declarative-compose strategy,
// deploying the document at composePath.
func NewComposeLauncher(c *Client, composePath string) *ComposeLauncher {
	return &ComposeLauncher{
		Client:      c,
		composePath: composePath,
		run:         execCombined,
	}
}

// Run brings the service up detached. Compose does not report container IDs,
// so the reserved container name stands in as the identifier.
func (l *ComposeLauncher) Run(ctx context.Context) (string, error) {
	out, err := l.run(ctx, runtimeBinary, "compose", "-f", l.composePath, "up", "-d")
	if err != nil {
		return "", fmt.Errorf("compose up failed: %w: %s", err, out)
	}
	return config.ContainerName, nil
}

// Down tears the service down.
func (l *ComposeLauncher) Down(ctx context.Context) error {
	out, err := l.run(ctx, runtimeBinary, "compose", "-f", l.composePath, "down")
	if err != nil {
		return fmt.Errorf("compose down failed: %w: %s", err, out)
	}
	return nil
}
