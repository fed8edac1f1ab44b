// Package config provides configuration loading and management for openhandsctl.
//
// Configuration is loaded using Viper, supporting YAML config files and environment
// variable overrides. The package provides sensible defaults that deploy the stock
// OpenHands images out of the box, with the ability to customize image tags, host
// paths, the published port, and deployment policies.
//
// Key types:
//   - [Config] is the root configuration container with all settings
//   - [Loader] handles Viper-based configuration loading
//   - [DeployConfig] holds the deployment policies and launch strategy
//
// Configuration priority (highest to lowest):
//  1. Environment variables (OPENHANDS_ prefix)
//  2. Config file specified by OPENHANDS_CONFIG_PATH
//  3. ~/.openhands-assistant/config.yaml
//  4. ./config.yaml (legacy fallback)
//  5. [DefaultConfig] defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ContainerName is the reserved name of the deployed application container.
// Existence checks, stop, remove and run all target this single identifier.
const ContainerName = "openhands-app"

// ServicePort is the fixed in-container port the application listens on.
const ServicePort = 3000

// Launch strategy values for [DeployConfig.LaunchStrategy].
const (
	// StrategyCompose deploys via `docker compose up -d` using the emitted
	// compose document.
	StrategyCompose = "compose"

	// StrategyDirect deploys via the Docker API, creating and starting the
	// container from the same resolved parameters the compose document uses.
	StrategyDirect = "direct"
)

// Pull policy values for [DeployConfig.PullPolicy].
const (
	// PullPrompt asks the operator whether to continue after a pull failure.
	PullPrompt = "prompt"

	// PullAdvisory logs a warning on pull failure and continues.
	PullAdvisory = "advisory"

	// PullFatal aborts the run on any pull failure.
	PullFatal = "fatal"
)

// Restart policy values for [DeployConfig.RestartPolicy].
const (
	RestartNo            = "no"
	RestartUnlessStopped = "unless-stopped"
)

// Config represents the root configuration structure.
//
// This is the main configuration container loaded by [Loader] and used throughout
// the application. Use [DefaultConfig] to get sensible defaults. Once a run
// starts the config is treated as immutable: the compose emitter and the
// container launcher both read from the same instance so they cannot drift.
type Config struct {
	// Images holds the two container image references.
	Images ImagesConfig `mapstructure:"images"`

	// Workspace holds the host directories mounted into the container.
	Workspace WorkspaceConfig `mapstructure:"workspace"`

	// Deploy holds the deployment parameters and policies.
	Deploy DeployConfig `mapstructure:"deploy"`

	// Verbose enables detail lines from collaborators and sets
	// LOG_ALL_EVENTS inside the container.
	Verbose bool `mapstructure:"verbose"`
}

// ImagesConfig holds the application and sandbox image references.
type ImagesConfig struct {
	// App is the OpenHands application image, with tag.
	App string `mapstructure:"app"`

	// Sandbox is the runtime sandbox image the application uses to execute
	// untrusted workloads, with tag. Passed into the container via
	// SANDBOX_RUNTIME_CONTAINER_IMAGE.
	Sandbox string `mapstructure:"sandbox"`
}

// WorkspaceConfig holds the host-side directories backing the deployment.
type WorkspaceConfig struct {
	// Dir is the host workspace directory mounted at /opt/workspace_base.
	Dir string `mapstructure:"dir"`

	// StateDir is the host state directory mounted at /.openhands-state.
	StateDir string `mapstructure:"state_dir"`
}

// DeployConfig holds the deployment parameters and policies.
type DeployConfig struct {
	// Port is the host port published to the in-container service port.
	Port int `mapstructure:"port"`

	// SandboxUserID is the user identifier handed to the sandbox runtime.
	// Kept as a string because it is emitted quoted into the compose
	// document.
	SandboxUserID string `mapstructure:"sandbox_user_id"`

	// RestartPolicy is the container restart policy.
	// Recognized values: "no" (default), "unless-stopped".
	RestartPolicy string `mapstructure:"restart_policy"`

	// LaunchStrategy selects how the container is started.
	// Recognized values: "compose" (default), "direct". Selected once at
	// configuration time and never mixed within a run.
	LaunchStrategy string `mapstructure:"launch_strategy"`

	// PullPolicy controls how image pull failures are treated.
	// Recognized values: "prompt" (default), "advisory", "fatal".
	PullPolicy string `mapstructure:"pull_policy"`

	// LogAllEvents sets LOG_ALL_EVENTS inside the container, making the
	// application log every agent event. On by default.
	LogAllEvents bool `mapstructure:"log_all_events"`

	// ComposePath is where the compose document is written.
	ComposePath string `mapstructure:"compose_path"`
}

// DefaultConfig returns a new [Config] with sensible defaults.
//
// The defaults deploy the stock OpenHands 0.27 images, publish port 80,
// place the workspace under the user's home directory and write the compose
// document under ~/.openhands-assistant. They work without any config file.
func DefaultConfig() *Config {
	home := homeDir()

	return &Config{
		Images: ImagesConfig{
			App:     "docker.all-hands.dev/all-hands-ai/openhands:0.27",
			Sandbox: "docker.all-hands.dev/all-hands-ai/runtime:0.27-nikolaik",
		},
		Workspace: WorkspaceConfig{
			Dir:      filepath.Join(home, "Docker_Workspace"),
			StateDir: filepath.Join(home, ".openhands-state"),
		},
		Deploy: DeployConfig{
			Port:           80,
			SandboxUserID:  "1000",
			RestartPolicy:  RestartNo,
			LaunchStrategy: StrategyCompose,
			PullPolicy:     PullPrompt,
			LogAllEvents:   true,
			ComposePath:    filepath.Join(home, ".openhands-assistant", "compose", "docker-compose.yaml"),
		},
		Verbose: false,
	}
}

// Validate checks that all enumerated settings carry recognized values and
// that the published port is usable.
func (c *Config) Validate() error {
	switch c.Deploy.RestartPolicy {
	case RestartNo, RestartUnlessStopped:
	default:
		return fmt.Errorf("unrecognized restart_policy %q (want %q or %q)",
			c.Deploy.RestartPolicy, RestartNo, RestartUnlessStopped)
	}

	switch c.Deploy.LaunchStrategy {
	case StrategyCompose, StrategyDirect:
	default:
		return fmt.Errorf("unrecognized launch_strategy %q (want %q or %q)",
			c.Deploy.LaunchStrategy, StrategyCompose, StrategyDirect)
	}

	switch c.Deploy.PullPolicy {
	case PullPrompt, PullAdvisory, PullFatal:
	default:
		return fmt.Errorf("unrecognized pull_policy %q (want %q, %q or %q)",
			c.Deploy.PullPolicy, PullPrompt, PullAdvisory, PullFatal)
	}

	if c.Deploy.Port < 1 || c.Deploy.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Deploy.Port)
	}

	if c.Images.App == "" || c.Images.Sandbox == "" {
		return fmt.Errorf("image references must not be empty")
	}

	return nil
}

// URL returns the address the deployed service is published at.
func (c *Config) URL() string {
	return fmt.Sprintf("http://localhost:%d", c.Deploy.Port)
}

// homeDir returns the current user's home directory, falling back to the
// working directory when it cannot be resolved.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
