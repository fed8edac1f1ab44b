// Package compose renders the service configuration document for the
// OpenHands deployment.
//
// The emitter is a pure function of the resolved [config.Config]: identical
// configuration always yields byte-identical output, so repeated runs can
// overwrite the previous file without churn. The same package also renders
// the environment, mount and port parameters used by the direct-launch mode,
// so the two deployment strategies share one source of truth and cannot
// drift apart.
package compose

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"openhandsctl/internal/config"
)

// Paths inside the application container.
const (
	workspaceMount = "/opt/workspace_base"
	stateMount     = "/.openhands-state"
	dockerSocket   = "/var/run/docker.sock"
)

// hostAlias lets the containerized application reach the host machine.
const hostAlias = "host.docker.internal:host-gateway"

// Document is the top-level compose document.
type Document struct {
	Services Services `yaml:"services"`
}

// Services holds the single deployed service, keyed by its reserved name.
type Services struct {
	App Service `yaml:"openhands-app"`
}

// Service is the declared application service. Field order here fixes the
// emitted key order.
type Service struct {
	Image         string   `yaml:"image"`
	ContainerName string   `yaml:"container_name"`
	Environment   []string `yaml:"environment"`
	Volumes       []string `yaml:"volumes"`
	Ports         []string `yaml:"ports"`
	ExtraHosts    []string `yaml:"extra_hosts"`
	TTY           bool     `yaml:"tty"`
	StdinOpen     bool     `yaml:"stdin_open"`
	Restart       string   `yaml:"restart"`
}

// Env returns the container environment assignments, in emission order.
// SANDBOX_USER_ID keeps its inner quoting so regeneration stays byte-stable
// with the documents already deployed in the field.
func Env(cfg *config.Config) []string {
	return []string{
		"SANDBOX_RUNTIME_CONTAINER_IMAGE=" + cfg.Images.Sandbox,
		"LOG_ALL_EVENTS=" + strconv.FormatBool(cfg.Deploy.LogAllEvents),
		fmt.Sprintf("SANDBOX_USER_ID=%q", cfg.Deploy.SandboxUserID),
		"WORKSPACE_MOUNT_PATH=" + filepath.ToSlash(cfg.Workspace.Dir),
	}
}

// Binds returns the three bind mounts, host:container, in emission order:
// runtime control socket passthrough, state directory, workspace directory.
func Binds(cfg *config.Config) []string {
	return []string{
		dockerSocket + ":" + dockerSocket,
		filepath.ToSlash(cfg.Workspace.StateDir) + ":" + stateMount,
		filepath.ToSlash(cfg.Workspace.Dir) + ":" + workspaceMount,
	}
}

// PortSpec returns the single published port mapping.
func PortSpec(cfg *config.Config) string {
	return fmt.Sprintf("%d:%d", cfg.Deploy.Port, config.ServicePort)
}

// ExtraHosts returns the host-alias entries.
func ExtraHosts() []string {
	return []string{hostAlias}
}

// Emitter renders and persists the compose document for one configuration.
type Emitter struct {
	cfg *config.Config
}

// NewEmitter creates an [Emitter] over the resolved configuration.
func NewEmitter(cfg *config.Config) *Emitter {
	return &Emitter{cfg: cfg}
}

// Document builds the declarative service definition.
func (e *Emitter) Document() Document {
	return Document{
		Services: Services{
			App: Service{
				Image:         e.cfg.Images.App,
				ContainerName: config.ContainerName,
				Environment:   Env(e.cfg),
				Volumes:       Binds(e.cfg),
				Ports:         []string{PortSpec(e.cfg)},
				ExtraHosts:    ExtraHosts(),
				TTY:           true,
				StdinOpen:     true,
				Restart:       e.cfg.Deploy.RestartPolicy,
			},
		},
	}
}

// Render marshals the document to YAML. Output is deterministic: key order
// follows struct field order and list order is fixed by the builders above.
func (e *Emitter) Render() ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(e.Document()); err != nil {
		return nil, fmt.Errorf("failed to render compose document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to render compose document: %w", err)
	}

	return buf.Bytes(), nil
}

// Write renders the document and persists it at the configured path,
// creating parent directories as needed. It returns the path written.
func (e *Emitter) Write() (string, error) {
	data, err := e.Render()
	if err != nil {
		return "", err
	}

	path := e.cfg.Deploy.ComposePath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create compose directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write compose file: %w", err)
	}

	return path, nil
}
