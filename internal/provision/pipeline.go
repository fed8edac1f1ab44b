package provision

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"openhandsctl/internal/config"
)

// logTailLines is how many container log lines are surfaced when a launch
// fails or the container never reaches running status.
const logTailLines = 50

// PollSettings bounds the two synchronous wait loops in the pipeline.
type PollSettings struct {
	// RuntimeInterval and RuntimeAttempts bound the wait for the runtime
	// daemon to answer after being started.
	RuntimeInterval time.Duration
	RuntimeAttempts int

	// LaunchInterval and LaunchAttempts bound the wait for the deployed
	// container to reach running status.
	LaunchInterval time.Duration
	LaunchAttempts int
}

// DefaultPollSettings returns the standard poll bounds: the runtime daemon is
// probed every 5 seconds up to 60 times, the launched container every 2
// seconds up to 30 times.
func DefaultPollSettings() PollSettings {
	return PollSettings{
		RuntimeInterval: 5 * time.Second,
		RuntimeAttempts: 60,
		LaunchInterval:  2 * time.Second,
		LaunchAttempts:  30,
	}
}

// StepError reports the step a run aborted at, carrying its recorded result.
// Unwrap exposes the classified sentinel error for errors.Is dispatch.
type StepError struct {
	Step   StepName
	Result StepResult
}

func (e *StepError) Error() string {
	if e.Result.Reason != "" {
		return fmt.Sprintf("step %s %s: %s", e.Step, e.Result.Outcome, e.Result.Reason)
	}
	return fmt.Sprintf("step %s %s", e.Step, e.Result.Outcome)
}

func (e *StepError) Unwrap() error {
	return e.Result.Err
}

// step pairs a step name with its declared prerequisites and its action.
type step struct {
	name     StepName
	requires []StepName
	advisory bool
	run      func(ctx context.Context) StepResult
}

// Pipeline executes the provisioning step sequence against injected
// collaborators. Execution is strictly sequential: one step runs to
// completion before the next begins, and the run state is mutated only by
// this sequence.
type Pipeline struct {
	cfg       *config.Config
	probe     Probe
	installer Installer
	launcher  Launcher
	emitter   Emitter
	prompter  Prompter
	reporter  Reporter
	state     *RunState
	poll      PollSettings
	sleep     func(time.Duration)
}

// NewPipeline creates a [Pipeline] over the given collaborators with default
// poll settings and no reporter.
func NewPipeline(cfg *config.Config, probe Probe, installer Installer, launcher Launcher, emitter Emitter, prompter Prompter) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		probe:     probe,
		installer: installer,
		launcher:  launcher,
		emitter:   emitter,
		prompter:  prompter,
		reporter:  noopReporter{},
		state:     NewRunState(),
		poll:      DefaultPollSettings(),
		sleep:     time.Sleep,
	}
}

// SetReporter configures progress reporting. Passing nil restores the no-op
// reporter.
func (p *Pipeline) SetReporter(r Reporter) {
	if r == nil {
		p.reporter = noopReporter{}
		return
	}
	p.reporter = r
}

// SetPollSettings overrides the poll bounds for both wait loops.
func (p *Pipeline) SetPollSettings(poll PollSettings) {
	p.poll = poll
}

// State exposes the run state for inspection after a run.
func (p *Pipeline) State() *RunState {
	return p.state
}

// steps returns the hard-wired step table. Each step requires every earlier
// step, except that Deployed does not require ImagesPulled: the launch
// performs an implicit pull when an image is missing, so a pull failure is
// advisory rather than fatal.
func (p *Pipeline) steps() []step {
	return []step{
		{
			name: StepVirtualizationReady,
			run:  p.runVirtualizationReady,
		},
		{
			name: StepRuntimeInstalled,
			run:  p.runRuntimeInstalled,
		},
		{
			name:     StepRuntimeRunning,
			requires: []StepName{StepRuntimeInstalled},
			run:      p.runRuntimeRunning,
		},
		{
			name:     StepWorkspaceReady,
			requires: []StepName{StepVirtualizationReady, StepRuntimeInstalled, StepRuntimeRunning},
			run:      p.runWorkspaceReady,
		},
		{
			name:     StepConfigWritten,
			requires: []StepName{StepVirtualizationReady, StepRuntimeInstalled, StepRuntimeRunning, StepWorkspaceReady},
			run:      p.runConfigWritten,
		},
		{
			name:     StepImagesPulled,
			requires: []StepName{StepVirtualizationReady, StepRuntimeInstalled, StepRuntimeRunning, StepWorkspaceReady, StepConfigWritten},
			advisory: true,
			run:      p.runImagesPulled,
		},
		{
			name:     StepDeployed,
			requires: []StepName{StepVirtualizationReady, StepRuntimeInstalled, StepRuntimeRunning, StepWorkspaceReady, StepConfigWritten},
			run:      p.runDeployed,
		},
	}
}

// Run executes the pipeline. It returns nil when every step succeeded, or a
// [*StepError] naming the step the run aborted at. Already-completed steps
// are never rolled back.
func (p *Pipeline) Run(ctx context.Context) error {
	steps := p.steps()
	total := len(steps)

	for i, st := range steps {
		if unmet := p.state.Unmet(st.requires); len(unmet) > 0 {
			result := fail(fmt.Errorf("%w: %s requires %s", ErrPrerequisiteUnmet, st.name, joinSteps(unmet)))
			p.state.Record(st.name, result)
			p.reporter.StepDone(st.name, result)
			return &StepError{Step: st.name, Result: result}
		}

		p.reporter.StepStart(i+1, total, st.name)
		result := st.run(ctx)
		p.state.Record(st.name, result)
		p.reporter.StepDone(st.name, result)

		if result.Outcome == Succeeded {
			continue
		}

		if st.advisory {
			if p.continueAfterAdvisory(st.name, result) {
				continue
			}
		}

		return &StepError{Step: st.name, Result: result}
	}

	return nil
}

// continueAfterAdvisory decides whether an advisory step failure lets the
// run proceed, per the configured pull policy.
func (p *Pipeline) continueAfterAdvisory(name StepName, result StepResult) bool {
	switch p.cfg.Deploy.PullPolicy {
	case config.PullFatal:
		return false
	case config.PullAdvisory:
		p.reporter.Warnf("%s failed, continuing: %s", name, result.Reason)
		return true
	default: // config.PullPrompt
		p.reporter.Warnf("%s failed: %s", name, result.Reason)
		if p.prompter.Confirm("Image pull failed; the launch step will retry the fetch. Continue anyway?") {
			return true
		}
		return false
	}
}

func (p *Pipeline) runVirtualizationReady(ctx context.Context) StepResult {
	if p.probe.IsVirtualizationEnabled(ctx) {
		return ok("virtualization available")
	}

	if !p.prompter.Confirm("Virtualization appears to be disabled. Attempt to enable it now?") {
		return skip(fmt.Errorf("%w: virtualization setup", ErrUserDeclined))
	}

	if err := p.installer.InstallVirtualization(ctx); err != nil {
		return fail(fmt.Errorf("%w: virtualization: %v", ErrInstallFailed, err))
	}

	return ok("virtualization enabled; a restart may be required")
}

func (p *Pipeline) runRuntimeInstalled(ctx context.Context) StepResult {
	if p.probe.IsInstalled(ctx) {
		return ok("runtime binary found")
	}

	if !p.prompter.Confirm("The container runtime is not installed. Install it now?") {
		return skip(fmt.Errorf("%w: runtime install", ErrUserDeclined))
	}

	if err := p.installer.InstallRuntime(ctx); err != nil {
		return fail(fmt.Errorf("%w: runtime: %v", ErrInstallFailed, err))
	}

	return ok("runtime installed")
}

func (p *Pipeline) runRuntimeRunning(ctx context.Context) StepResult {
	if p.probe.IsRunning(ctx) {
		if version, known := p.probe.Version(ctx); known {
			return ok("runtime running, server version " + version)
		}
		return ok("runtime running")
	}

	if !p.prompter.Confirm("The runtime daemon is not answering. Start it and wait for it to come up?") {
		return skip(fmt.Errorf("%w: runtime start", ErrUserDeclined))
	}

	if err := p.installer.StartRuntime(ctx); err != nil {
		return fail(fmt.Errorf("%w: runtime start: %v", ErrInstallFailed, err))
	}

	for attempt := 1; attempt <= p.poll.RuntimeAttempts; attempt++ {
		if p.probe.IsRunning(ctx) {
			return ok(fmt.Sprintf("runtime running after %d attempts", attempt))
		}
		if ctx.Err() != nil {
			return fail(fmt.Errorf("%w: %v", ErrProbeTimeout, ctx.Err()))
		}
		p.sleep(p.poll.RuntimeInterval)
	}

	if p.prompter.Confirm("The daemon still is not answering. Confirm it is running and continue?") {
		return ok("operator confirmed the runtime is running")
	}

	return fail(fmt.Errorf("%w: runtime daemon after %d attempts", ErrProbeTimeout, p.poll.RuntimeAttempts))
}

func (p *Pipeline) runWorkspaceReady(_ context.Context) StepResult {
	dirs := []string{p.cfg.Workspace.Dir, p.cfg.Workspace.StateDir}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fail(fmt.Errorf("%w: %s: %v", ErrDirectoryCreate, dir, err))
		}
		info, err := os.Stat(dir)
		if err != nil {
			return fail(fmt.Errorf("%w: %s: %v", ErrDirectoryCreate, dir, err))
		}
		if !info.IsDir() {
			return fail(fmt.Errorf("%w: %s exists but is not a directory", ErrDirectoryCreate, dir))
		}
	}

	return ok("workspace and state directories ready")
}

func (p *Pipeline) runConfigWritten(_ context.Context) StepResult {
	path, err := p.emitter.Write()
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrConfigWrite, err))
	}
	return ok("wrote " + path)
}

func (p *Pipeline) runImagesPulled(ctx context.Context) StepResult {
	refs := []string{p.cfg.Images.App, p.cfg.Images.Sandbox}

	var failures []string
	for _, ref := range refs {
		p.reporter.Infof("pulling %s", ref)
		if err := p.launcher.Pull(ctx, ref); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", ref, err))
		}
	}

	if len(failures) > 0 {
		return fail(fmt.Errorf("%w: %s", ErrPullFailed, strings.Join(failures, "; ")))
	}

	return ok("images present")
}

func (p *Pipeline) runDeployed(ctx context.Context) StepResult {
	name := config.ContainerName

	existing, err := p.launcher.List(ctx, name)
	if err != nil {
		return fail(fmt.Errorf("%w: listing containers: %v", ErrLaunchFailed, err))
	}
	if len(existing) > 0 {
		p.reporter.Infof("replacing existing container %s (%s)", name, existing[0].Status)
		if err := p.launcher.Stop(ctx, name); err != nil {
			return fail(fmt.Errorf("%w: stopping %s: %v", ErrLaunchFailed, name, err))
		}
		if err := p.launcher.Remove(ctx, name); err != nil {
			return fail(fmt.Errorf("%w: removing %s: %v", ErrLaunchFailed, name, err))
		}
	}

	id, err := p.launcher.Run(ctx)
	if err != nil {
		return fail(fmt.Errorf("%w: %v%s", ErrLaunchFailed, err, p.logTail(ctx, name)))
	}

	for attempt := 1; attempt <= p.poll.LaunchAttempts; attempt++ {
		containers, listErr := p.launcher.List(ctx, name)
		if listErr == nil && len(containers) > 0 && containers[0].State == "running" {
			return ok(fmt.Sprintf("container %s running", shortID(id)))
		}
		if ctx.Err() != nil {
			return fail(fmt.Errorf("%w: %v", ErrStatusVerification, ctx.Err()))
		}
		p.sleep(p.poll.LaunchInterval)
	}

	return fail(fmt.Errorf("%w after %d attempts%s", ErrStatusVerification, p.poll.LaunchAttempts, p.logTail(ctx, name)))
}

// logTail fetches the container log tail for failure reporting. Errors are
// swallowed: the tail is best-effort context for an already-failed step.
func (p *Pipeline) logTail(ctx context.Context, name string) string {
	tail, err := p.launcher.Logs(ctx, name, logTailLines)
	if err != nil || strings.TrimSpace(tail) == "" {
		return ""
	}
	return "\nlast container logs:\n" + tail
}

// shortID abbreviates full-length container IDs; names and already-short
// identifiers pass through unchanged.
func shortID(id string) string {
	if len(id) >= 64 {
		return id[:12]
	}
	return id
}

func joinSteps(names []StepName) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = string(n)
	}
	return strings.Join(parts, ", ")
}
