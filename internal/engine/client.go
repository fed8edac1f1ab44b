// Package engine wraps the Docker control interface behind the narrow probe
// and launcher surfaces the provisioning pipeline depends on.
//
// Every daemon call is bounded by a short timeout so a wedged or absent
// daemon degrades to a false probe answer instead of a hang.
package engine

import (
	"fmt"
	"time"

	"github.com/docker/docker/client"

	"openhandsctl/internal/config"
)

// probeTimeout bounds each individual probe call against the daemon.
const probeTimeout = 5 * time.Second

// runtimeBinary is the container runtime CLI expected on PATH.
const runtimeBinary = "docker"

// Client implements the pipeline's Probe interface and the launcher
// operations shared by both launch strategies.
type Client struct {
	api client.APIClient
	cfg *config.Config
}

// NewClient creates a [Client] using environment configuration. Creating the
// client does not contact the daemon, so this succeeds even when the runtime
// is not installed; the probes report that state instead.
func NewClient(cfg *config.Config) (*Client, error) {
	api, err := client.NewClientWithOpts(
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}

	return &Client{api: api, cfg: cfg}, nil
}
