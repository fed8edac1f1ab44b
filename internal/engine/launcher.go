package engine

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"

	"openhandsctl/internal/provision"
)

// List returns containers whose name matches exactly. The name filter is
// anchored because Docker's filter is a substring match by default.
func (c *Client) List(ctx context.Context, name string) ([]provision.ContainerInfo, error) {
	filterArgs := filters.NewArgs()
	filterArgs.Add("name", "^/"+name+"$")

	containers, err := c.api.ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: filterArgs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	infos := make([]provision.ContainerInfo, 0, len(containers))
	for _, ctr := range containers {
		infos = append(infos, provision.ContainerInfo{
			ID:     ctr.ID,
			Name:   containerName(ctr.Names, name),
			State:  ctr.State,
			Status: ctr.Status,
		})
	}

	return infos, nil
}

// Stop stops the named container. A container that does not exist, or
// disappears mid-call, is not an error.
func (c *Client) Stop(ctx context.Context, name string) error {
	containers, err := c.List(ctx, name)
	if err != nil {
		return err
	}
	if len(containers) == 0 {
		return nil
	}

	err = c.api.ContainerStop(ctx, containers[0].ID, container.StopOptions{})
	if err != nil && !cerrdefs.IsNotFound(err) {
		return fmt.Errorf("failed to stop container %s: %w", name, err)
	}
	return nil
}

// Remove removes the named container if it exists.
func (c *Client) Remove(ctx context.Context, name string) error {
	containers, err := c.List(ctx, name)
	if err != nil {
		return err
	}
	if len(containers) == 0 {
		return nil
	}

	err = c.api.ContainerRemove(ctx, containers[0].ID, container.RemoveOptions{})
	if err != nil && !cerrdefs.IsNotFound(err) {
		return fmt.Errorf("failed to remove container %s: %w", name, err)
	}
	return nil
}

// Pull fetches an image, draining the progress stream so the call returns
// only once the pull has completed.
func (c *Client) Pull(ctx context.Context, ref string) error {
	reader, err := c.api.ImagePull(ctx, ref, image.PullOptions{})
	if err != nil {
		return fmt.Errorf("failed to pull %s: %w", ref, err)
	}
	defer reader.Close()

	if _, err := io.Copy(io.Discard, reader); err != nil {
		return fmt.Errorf("pull of %s interrupted: %w", ref, err)
	}
	return nil
}

// Logs returns the last tail lines of the named container's log. The
// container runs with a TTY, so the stream arrives unmultiplexed.
func (c *Client) Logs(ctx context.Context, name string, tail int) (string, error) {
	reader, err := c.api.ContainerLogs(ctx, name, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Tail:       strconv.Itoa(tail),
	})
	if err != nil {
		return "", fmt.Errorf("failed to read logs for %s: %w", name, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read logs for %s: %w", name, err)
	}
	return string(data), nil
}

// Status returns the named container's status line, or a note that it does
// not exist.
func (c *Client) Status(ctx context.Context, name string) (string, error) {
	containers, err := c.List(ctx, name)
	if err != nil {
		return "", err
	}
	if len(containers) == 0 {
		return "not created", nil
	}
	return containers[0].Status, nil
}

// containerName extracts the display name from Docker's leading-slash name
// list, falling back to the query name.
func containerName(names []string, fallback string) string {
	for _, raw := range names {
		if trimmed := strings.TrimPrefix(raw, "/"); trimmed != "" {
			return trimmed
		}
	}
	return fallback
}
