package installer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingRun captures invocations and returns scripted results.
type recordingRun struct {
	calls []string
	out   []byte
	err   error
}

func (r *recordingRun) run(_ context.Context, name string, args ...string) ([]byte, error) {
	r.calls = append(r.calls, command{name: name, args: args}.String())
	return r.out, r.err
}

func TestInstaller_InstallRuntimePerPlatform(t *testing.T) {
	tests := []struct {
		goos     string
		wantCall string
		wantErr  error
	}{
		{goos: "windows", wantCall: "winget install"},
		{goos: "darwin", wantCall: "brew install --cask docker"},
		{goos: "linux", wantCall: "get.docker.com"},
		{goos: "plan9", wantErr: ErrUnsupportedPlatform},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			rec := &recordingRun{}
			inst := &Installer{goos: tt.goos, run: rec.run}

			err := inst.InstallRuntime(context.Background())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, rec.calls)
				return
			}

			require.NoError(t, err)
			require.Len(t, rec.calls, 1)
			assert.Contains(t, rec.calls[0], tt.wantCall)
		})
	}
}

func TestInstaller_StartRuntimePerPlatform(t *testing.T) {
	tests := []struct {
		goos     string
		wantCall string
	}{
		{goos: "windows", wantCall: "Docker Desktop.exe"},
		{goos: "darwin", wantCall: "open -a Docker"},
		{goos: "linux", wantCall: "systemctl start docker"},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			rec := &recordingRun{}
			inst := &Installer{goos: tt.goos, run: rec.run}

			require.NoError(t, inst.StartRuntime(context.Background()))
			require.Len(t, rec.calls, 1)
			assert.Contains(t, rec.calls[0], tt.wantCall)
		})
	}
}

func TestInstaller_InstallVirtualization(t *testing.T) {
	rec := &recordingRun{}
	inst := &Installer{goos: "windows", run: rec.run}

	require.NoError(t, inst.InstallVirtualization(context.Background()))
	require.Len(t, rec.calls, 1)
	assert.Contains(t, rec.calls[0], "wsl --install")

	// Only firmware can enable virtualization elsewhere.
	inst = &Installer{goos: "linux", run: rec.run}
	assert.ErrorIs(t, inst.InstallVirtualization(context.Background()), ErrUnsupportedPlatform)
}

func TestInstaller_FailureSurfacesOutput(t *testing.T) {
	rec := &recordingRun{
		out: []byte("error: package not found"),
		err: errors.New("exit status 1"),
	}
	inst := &Installer{goos: "darwin", run: rec.run}

	err := inst.InstallRuntime(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "package not found")
	assert.Contains(t, err.Error(), "brew")
}
