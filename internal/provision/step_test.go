package provision

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunState_DefaultsToNotAttempted(t *testing.T) {
	state := NewRunState()

	assert.Equal(t, NotAttempted, state.Outcome(StepDeployed))

	_, recorded := state.Result(StepDeployed)
	assert.False(t, recorded)
}

func TestRunState_RecordAndUnmet(t *testing.T) {
	state := NewRunState()

	state.Record(StepVirtualizationReady, ok(""))
	state.Record(StepRuntimeInstalled, ok(""))
	state.Record(StepRuntimeRunning, fail(errors.New("boom")))

	requires := []StepName{StepVirtualizationReady, StepRuntimeInstalled, StepRuntimeRunning, StepWorkspaceReady}
	unmet := state.Unmet(requires)

	assert.Equal(t, []StepName{StepRuntimeRunning, StepWorkspaceReady}, unmet)
	assert.Empty(t, state.Unmet([]StepName{StepVirtualizationReady, StepRuntimeInstalled}))
}

func TestRunState_SkippedIsNotSatisfied(t *testing.T) {
	state := NewRunState()
	state.Record(StepRuntimeRunning, skip(errors.New("declined")))

	unmet := state.Unmet([]StepName{StepRuntimeRunning})
	assert.Equal(t, []StepName{StepRuntimeRunning}, unmet)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "not attempted", NotAttempted.String())
	assert.Equal(t, "succeeded", Succeeded.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "skipped", Skipped.String())
}

func TestStepError_MessageAndUnwrap(t *testing.T) {
	err := &StepError{
		Step:   StepConfigWritten,
		Result: fail(errors.Join(ErrConfigWrite, errors.New("disk full"))),
	}

	assert.Contains(t, err.Error(), "ConfigWritten")
	assert.Contains(t, err.Error(), "failed")
	assert.ErrorIs(t, err, ErrConfigWrite)
}
