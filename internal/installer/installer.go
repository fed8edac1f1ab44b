// Package installer invokes platform package managers and service managers
// to set up missing container-runtime prerequisites.
//
// Each operation maps to a short sequence of external commands for the
// current platform, executed sequentially with fail-fast semantics. The
// package deliberately stays thin: readiness after an install is observed by
// the pipeline's probes, never assumed here.
package installer

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnsupportedPlatform is returned when no install recipe exists for the
// current platform and the prerequisite must be set up by hand.
var ErrUnsupportedPlatform = errors.New("no automated install for this platform")

// command is one external invocation of an install recipe.
type command struct {
	name string
	args []string
}

func (c command) String() string {
	return strings.Join(append([]string{c.name}, c.args...), " ")
}

// runFunc executes an external command and returns its combined output.
// Swappable for tests.
type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

func execCombined(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Installer installs and starts container-runtime prerequisites through the
// platform's package manager.
type Installer struct {
	goos string
	run  runFunc
}

// New creates an [Installer] for the current platform.
func New() *Installer {
	return &Installer{goos: runtime.GOOS, run: execCombined}
}

// InstallVirtualization enables the virtualization subsystem. On Windows
// this installs the WSL virtual machine platform; a restart may be required
// before it takes effect. On other platforms virtualization is a firmware
// setting and cannot be enabled from userspace.
func (i *Installer) InstallVirtualization(ctx context.Context) error {
	switch i.goos {
	case "windows":
		return i.runAll(ctx, []command{
			{name: "wsl", args: []string{"--install", "--no-distribution"}},
		})
	default:
		return fmt.Errorf("%w: enable virtualization in the machine firmware", ErrUnsupportedPlatform)
	}
}

// InstallRuntime installs the container runtime through the platform
// package manager.
func (i *Installer) InstallRuntime(ctx context.Context) error {
	switch i.goos {
	case "windows":
		return i.runAll(ctx, []command{
			{name: "winget", args: []string{
				"install", "--exact", "--silent",
				"--accept-package-agreements", "--accept-source-agreements",
				"Docker.DockerDesktop",
			}},
		})
	case "darwin":
		return i.runAll(ctx, []command{
			{name: "brew", args: []string{"install", "--cask", "docker"}},
		})
	case "linux":
		return i.runAll(ctx, []command{
			{name: "sh", args: []string{"-c", "curl -fsSL https://get.docker.com | sh"}},
		})
	default:
		return fmt.Errorf("%w: install the container runtime manually", ErrUnsupportedPlatform)
	}
}

// StartRuntime starts the runtime daemon without waiting for readiness.
func (i *Installer) StartRuntime(ctx context.Context) error {
	switch i.goos {
	case "windows":
		return i.runAll(ctx, []command{
			{name: "cmd", args: []string{"/C", "start", "", `C:\Program Files\Docker\Docker\Docker Desktop.exe`}},
		})
	case "darwin":
		return i.runAll(ctx, []command{
			{name: "open", args: []string{"-a", "Docker"}},
		})
	case "linux":
		return i.runAll(ctx, []command{
			{name: "systemctl", args: []string{"start", "docker"}},
		})
	default:
		return fmt.Errorf("%w: start the runtime daemon manually", ErrUnsupportedPlatform)
	}
}

// runAll executes commands in order, stopping at the first failure and
// surfacing its output.
func (i *Installer) runAll(ctx context.Context, commands []command) error {
	for _, cmd := range commands {
		out, err := i.run(ctx, cmd.name, cmd.args...)
		if err != nil {
			return fmt.Errorf("%s: %w: %s", cmd, err, strings.TrimSpace(string(out)))
		}
	}
	return nil
}
