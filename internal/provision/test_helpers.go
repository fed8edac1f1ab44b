package provision

import (
	"context"
	"fmt"
	"strings"
)

// Test doubles for the collaborator interfaces. Kept in a non-test file so
// the cli package tests can reuse them through small wrappers of their own.

// FakeProbe is a scripted [Probe].
type FakeProbe struct {
	Virt      bool
	Installed bool
	Running   bool
	Ver       string

	// RunningCalls counts IsRunning invocations.
	RunningCalls int
}

func (f *FakeProbe) IsVirtualizationEnabled(context.Context) bool { return f.Virt }
func (f *FakeProbe) IsInstalled(context.Context) bool             { return f.Installed }

func (f *FakeProbe) IsRunning(context.Context) bool {
	f.RunningCalls++
	return f.Running
}

func (f *FakeProbe) Version(context.Context) (string, bool) {
	return f.Ver, f.Ver != ""
}

// FakeInstaller records install invocations and can mutate a [FakeProbe] so
// installs become visible to subsequent probes, the way a real install does.
type FakeInstaller struct {
	Probe *FakeProbe

	VirtErr    error
	InstallErr error
	StartErr   error

	Calls []string
}

func (f *FakeInstaller) InstallVirtualization(context.Context) error {
	f.Calls = append(f.Calls, "virtualization")
	if f.VirtErr == nil && f.Probe != nil {
		f.Probe.Virt = true
	}
	return f.VirtErr
}

func (f *FakeInstaller) InstallRuntime(context.Context) error {
	f.Calls = append(f.Calls, "runtime")
	if f.InstallErr == nil && f.Probe != nil {
		f.Probe.Installed = true
	}
	return f.InstallErr
}

func (f *FakeInstaller) StartRuntime(context.Context) error {
	f.Calls = append(f.Calls, "start")
	if f.StartErr == nil && f.Probe != nil {
		f.Probe.Running = true
	}
	return f.StartErr
}

// FakeLauncher is a scripted [Launcher].
type FakeLauncher struct {
	// Existing is returned by List before Run has been called.
	Existing []ContainerInfo

	// StatesAfterRun scripts the container state seen by successive List
	// calls after Run. Once exhausted, the last state repeats; when empty,
	// "running" is reported immediately.
	StatesAfterRun []string

	RunID   string
	RunErr  error
	PullErr map[string]error

	LogsText string

	Pulled    []string
	Stopped   []string
	Removed   []string
	RunCalls  int
	DownCalls int
	LogCalls  int

	listAfterRun int
}

func (f *FakeLauncher) List(_ context.Context, name string) ([]ContainerInfo, error) {
	if f.RunCalls == 0 {
		return f.Existing, nil
	}

	state := "running"
	if len(f.StatesAfterRun) > 0 {
		idx := f.listAfterRun
		if idx >= len(f.StatesAfterRun) {
			idx = len(f.StatesAfterRun) - 1
		}
		state = f.StatesAfterRun[idx]
		f.listAfterRun++
	}

	if state == "absent" {
		return nil, nil
	}

	return []ContainerInfo{{ID: f.runID(), Name: name, State: state, Status: "Up"}}, nil
}

func (f *FakeLauncher) Stop(_ context.Context, name string) error {
	f.Stopped = append(f.Stopped, name)
	return nil
}

func (f *FakeLauncher) Remove(_ context.Context, name string) error {
	f.Removed = append(f.Removed, name)
	return nil
}

func (f *FakeLauncher) Pull(_ context.Context, ref string) error {
	f.Pulled = append(f.Pulled, ref)
	if f.PullErr != nil {
		return f.PullErr[ref]
	}
	return nil
}

func (f *FakeLauncher) Run(context.Context) (string, error) {
	f.RunCalls++
	if f.RunErr != nil {
		return "", f.RunErr
	}
	return f.runID(), nil
}

func (f *FakeLauncher) Down(context.Context) error {
	f.DownCalls++
	return nil
}

func (f *FakeLauncher) Logs(_ context.Context, _ string, _ int) (string, error) {
	f.LogCalls++
	return f.LogsText, nil
}

func (f *FakeLauncher) Status(_ context.Context, _ string) (string, error) {
	if f.RunCalls == 0 && len(f.Existing) == 0 {
		return "not created", nil
	}
	return "Up", nil
}

func (f *FakeLauncher) runID() string {
	if f.RunID != "" {
		return f.RunID
	}
	return "0123456789abcdef"
}

// FakeEmitter is a scripted [Emitter].
type FakeEmitter struct {
	Path   string
	Err    error
	Writes int
}

func (f *FakeEmitter) Write() (string, error) {
	f.Writes++
	if f.Err != nil {
		return "", f.Err
	}
	if f.Path == "" {
		return "docker-compose.yaml", nil
	}
	return f.Path, nil
}

// FakePrompter answers Confirm calls. DeclineContaining lists substrings of
// questions to answer "no" to; everything else is accepted.
type FakePrompter struct {
	DeclineContaining []string
	Questions         []string
}

func (f *FakePrompter) Confirm(question string) bool {
	f.Questions = append(f.Questions, question)
	for _, s := range f.DeclineContaining {
		if strings.Contains(question, s) {
			return false
		}
	}
	return true
}

// RecordingReporter records progress notifications in order.
type RecordingReporter struct {
	Started []StepName
	Done    map[StepName]StepResult
	Infos   []string
	Warns   []string
}

func NewRecordingReporter() *RecordingReporter {
	return &RecordingReporter{Done: make(map[StepName]StepResult)}
}

func (r *RecordingReporter) StepStart(_, _ int, name StepName) {
	r.Started = append(r.Started, name)
}

func (r *RecordingReporter) StepDone(name StepName, result StepResult) {
	r.Done[name] = result
}

func (r *RecordingReporter) Infof(format string, args ...any) {
	r.Infos = append(r.Infos, fmt.Sprintf(format, args...))
}

func (r *RecordingReporter) Warnf(format string, args ...any) {
	r.Warns = append(r.Warns, fmt.Sprintf(format, args...))
}
