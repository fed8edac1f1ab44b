// Package provision implements the provisioning pipeline that takes a host
// from an arbitrary state to a running OpenHands container.
//
// The pipeline walks a fixed, ordered list of named steps. Each step declares
// the steps that must have succeeded before it may run; the pipeline verifies
// those prerequisites against the run state before dispatching the step's
// action, records the result, and aborts on the first non-advisory failure.
//
// Key types:
//   - [Pipeline] executes the step sequence against injected collaborators
//   - [RunState] tracks per-step outcomes for a single run
//   - [StepResult] is the recorded outcome of one step execution
//
// Run state is created fresh for every run and never persisted: a retry is
// always a fresh process invocation.
package provision

import "fmt"

// StepName identifies one step of the provisioning pipeline.
type StepName string

// The seven pipeline steps, in execution order.
const (
	StepVirtualizationReady StepName = "VirtualizationReady"
	StepRuntimeInstalled    StepName = "RuntimeInstalled"
	StepRuntimeRunning      StepName = "RuntimeRunning"
	StepWorkspaceReady      StepName = "WorkspaceReady"
	StepConfigWritten       StepName = "ConfigWritten"
	StepImagesPulled        StepName = "ImagesPulled"
	StepDeployed            StepName = "Deployed"
)

// Outcome is the recorded result of a step.
type Outcome int

const (
	// NotAttempted is the zero value: the step has not executed yet.
	NotAttempted Outcome = iota

	// Succeeded means the step's action completed.
	Succeeded

	// Failed means the step's action failed.
	Failed

	// Skipped means the operator declined the step's action. For
	// prerequisite purposes a skipped step counts as not satisfied.
	Skipped
)

// String returns the outcome's display name.
func (o Outcome) String() string {
	switch o {
	case NotAttempted:
		return "not attempted"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// StepResult is the recorded result of one step execution.
type StepResult struct {
	// Outcome classifies the result.
	Outcome Outcome

	// Reason is an optional human-readable explanation, shown to the
	// operator. For launch failures it carries the container log tail.
	Reason string

	// Err is the classified failure, wrapping one of the sentinel errors
	// in this package. Nil unless Outcome is Failed or Skipped.
	Err error
}

// ok returns a succeeded result with an optional reason.
func ok(reason string) StepResult {
	return StepResult{Outcome: Succeeded, Reason: reason}
}

// fail returns a failed result carrying the classified error.
func fail(err error) StepResult {
	return StepResult{Outcome: Failed, Reason: err.Error(), Err: err}
}

// skip returns a skipped result carrying the decline error.
func skip(err error) StepResult {
	return StepResult{Outcome: Skipped, Reason: err.Error(), Err: err}
}

// RunState maps step names to their recorded results for a single run.
//
// It is created fresh by [NewRunState] at pipeline start and mutated only by
// the pipeline's main sequence, so no locking is required.
type RunState struct {
	results map[StepName]StepResult
}

// NewRunState returns an empty run state; every step reads as [NotAttempted].
func NewRunState() *RunState {
	return &RunState{results: make(map[StepName]StepResult)}
}

// Record stores the result for a step, replacing any earlier record.
func (s *RunState) Record(name StepName, result StepResult) {
	s.results[name] = result
}

// Outcome returns the recorded outcome for a step, or [NotAttempted].
func (s *RunState) Outcome(name StepName) Outcome {
	return s.results[name].Outcome
}

// Result returns the recorded result for a step and whether one exists.
func (s *RunState) Result(name StepName) (StepResult, bool) {
	r, recorded := s.results[name]
	return r, recorded
}

// Unmet returns the subset of requires whose outcome is not [Succeeded],
// in the order given.
func (s *RunState) Unmet(requires []StepName) []StepName {
	var unmet []StepName
	for _, name := range requires {
		if s.Outcome(name) != Succeeded {
			unmet = append(unmet, name)
		}
	}
	return unmet
}
