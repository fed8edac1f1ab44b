package provision

import "context"

// Probe queries the state of the container runtime and its virtualization
// prerequisite. Implementations must bound every call with a short timeout;
// a probe that cannot answer reports false rather than hanging.
type Probe interface {
	// IsVirtualizationEnabled reports whether the virtualization subsystem
	// the runtime depends on is available.
	IsVirtualizationEnabled(ctx context.Context) bool

	// IsInstalled reports whether the runtime binary is present.
	IsInstalled(ctx context.Context) bool

	// IsRunning reports whether the runtime daemon answers a version query.
	IsRunning(ctx context.Context) bool

	// Version returns the daemon version when it can be queried.
	Version(ctx context.Context) (string, bool)
}

// Installer invokes platform package managers and service managers to set up
// missing prerequisites. Implementations are thin glue over external
// installer binaries.
type Installer interface {
	// InstallVirtualization enables the virtualization subsystem. The
	// change may require a host restart to take effect.
	InstallVirtualization(ctx context.Context) error

	// InstallRuntime installs the container runtime.
	InstallRuntime(ctx context.Context) error

	// StartRuntime starts the runtime daemon without waiting for it to
	// become ready; readiness is observed through [Probe.IsRunning].
	StartRuntime(ctx context.Context) error
}

// ContainerInfo describes one container returned by [Launcher.List].
type ContainerInfo struct {
	ID     string
	Name   string
	State  string // e.g. "running", "exited"
	Status string // human-readable, e.g. "Up 2 minutes"
}

// Launcher starts, stops and inspects the target container through the
// runtime's control interface. Stop and Remove are idempotent: acting on an
// absent container is not an error.
type Launcher interface {
	// List returns containers whose name matches exactly.
	List(ctx context.Context, name string) ([]ContainerInfo, error)

	// Stop stops the named container if it exists.
	Stop(ctx context.Context, name string) error

	// Remove removes the named container if it exists.
	Remove(ctx context.Context, name string) error

	// Pull fetches an image.
	Pull(ctx context.Context, imageRef string) error

	// Run starts a new container from the resolved deployment parameters
	// and returns its identifier.
	Run(ctx context.Context) (string, error)

	// Down stops and removes the deployment.
	Down(ctx context.Context) error

	// Logs returns the last tail lines of the named container's log.
	Logs(ctx context.Context, name string, tail int) (string, error)

	// Status returns the named container's status line, or a note that it
	// does not exist.
	Status(ctx context.Context, name string) (string, error)
}

// Emitter renders the service configuration document and persists it.
type Emitter interface {
	// Write renders the document and writes it to its configured location,
	// returning the path written.
	Write() (string, error)
}

// Prompter asks the operator a yes/no question. Implementations may be
// auto-accepting (--yes) for unattended runs.
type Prompter interface {
	Confirm(question string) bool
}

// Reporter receives progress notifications for display. All methods may be
// called only from the pipeline's single execution sequence.
type Reporter interface {
	// StepStart is invoked before a step's action runs. Index is 1-based.
	StepStart(index, total int, name StepName)

	// StepDone is invoked after a step's result is recorded.
	StepDone(name StepName, result StepResult)

	// Infof reports a detail line.
	Infof(format string, args ...any)

	// Warnf reports an advisory problem that does not abort the run.
	Warnf(format string, args ...any)
}

// noopReporter is the default Reporter when none is configured.
type noopReporter struct{}

func (noopReporter) StepStart(int, int, StepName)  {}
func (noopReporter) StepDone(StepName, StepResult) {}
func (noopReporter) Infof(string, ...any)          {}
func (noopReporter) Warnf(string, ...any)          {}
