package provision

import "errors"

// Sentinel errors classifying step failures. Every step-level failure is
// caught at the step boundary, wrapped with one of these, and recorded in the
// [StepResult]; callers dispatch with errors.Is.
var (
	// ErrPrerequisiteUnmet indicates a step was reached while one of its
	// declared prerequisite steps had not succeeded.
	ErrPrerequisiteUnmet = errors.New("prerequisite step not satisfied")

	// ErrProbeTimeout indicates a bounded probe loop exhausted its attempts
	// without the probed condition becoming true.
	ErrProbeTimeout = errors.New("timed out waiting for probe")

	// ErrInstallFailed indicates a platform installer invocation failed.
	ErrInstallFailed = errors.New("install failed")

	// ErrUserDeclined indicates the operator declined a prompted action.
	ErrUserDeclined = errors.New("declined by operator")

	// ErrDirectoryCreate indicates a host directory could not be created
	// or verified.
	ErrDirectoryCreate = errors.New("directory create failed")

	// ErrConfigWrite indicates the service configuration document could
	// not be written.
	ErrConfigWrite = errors.New("config write failed")

	// ErrPullFailed indicates one or both image pulls failed. This is the
	// only failure class that may be downgraded to advisory.
	ErrPullFailed = errors.New("image pull failed")

	// ErrLaunchFailed indicates the container could not be started.
	ErrLaunchFailed = errors.New("container launch failed")

	// ErrStatusVerification indicates the container started but did not
	// reach running status within the bounded wait.
	ErrStatusVerification = errors.New("container did not reach running status")
)
