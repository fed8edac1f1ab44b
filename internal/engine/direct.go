package engine

import (
	"context"
	"fmt"
	"strconv"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"

	"openhandsctl/internal/compose"
	"openhandsctl/internal/config"
)

// DirectLauncher deploys the container through the Docker API. It builds the
// container parameters from the same compose-package renderers the emitted
// document uses, so the two launch strategies describe an identical
// deployment.
type DirectLauncher struct {
	*Client
}

// NewDirectLauncher wraps a [Client] with the direct-invocation strategy.
func NewDirectLauncher(c *Client) *DirectLauncher {
	return &DirectLauncher{Client: c}
}

// Run creates and starts the application container, returning its ID.
func (l *DirectLauncher) Run(ctx context.Context) (string, error) {
	servicePort, err := nat.NewPort("tcp", strconv.Itoa(config.ServicePort))
	if err != nil {
		return "", fmt.Errorf("failed to build port spec: %w", err)
	}

	containerCfg := &container.Config{
		Image:        l.cfg.Images.App,
		Env:          compose.Env(l.cfg),
		Tty:          true,
		OpenStdin:    true,
		ExposedPorts: nat.PortSet{servicePort: struct{}{}},
	}

	hostCfg := &container.HostConfig{
		Binds: compose.Binds(l.cfg),
		PortBindings: nat.PortMap{
			servicePort: []nat.PortBinding{
				{HostPort: strconv.Itoa(l.cfg.Deploy.Port)},
			},
		},
		ExtraHosts:    compose.ExtraHosts(),
		RestartPolicy: container.RestartPolicy{Name: restartPolicyMode(l.cfg.Deploy.RestartPolicy)},
	}

	created, err := l.api.ContainerCreate(ctx, containerCfg, hostCfg, nil, nil, config.ContainerName)
	if err != nil {
		return "", fmt.Errorf("failed to create container: %w", err)
	}

	if err := l.api.ContainerStart(ctx, created.ID, container.StartOptions{}); err != nil {
		return "", fmt.Errorf("failed to start container: %w", err)
	}

	return created.ID, nil
}

// Down stops and removes the deployed container.
func (l *DirectLauncher) Down(ctx context.Context) error {
	if err := l.Stop(ctx, config.ContainerName); err != nil {
		return err
	}
	return l.Remove(ctx, config.ContainerName)
}

// restartPolicyMode maps the config restart policy onto the Docker API
// enumeration.
func restartPolicyMode(policy string) container.RestartPolicyMode {
	if policy == config.RestartUnlessStopped {
		return container.RestartPolicyUnlessStopped
	}
	return container.RestartPolicyDisabled
}
