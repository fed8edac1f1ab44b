package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/docker/docker/api/types/container"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openhandsctl/internal/config"
)

func TestHasVirtCPUFlags(t *testing.T) {
	tests := []struct {
		name    string
		cpuinfo string
		want    bool
	}{
		{
			name:    "intel vmx flag",
			cpuinfo: "processor\t: 0\nflags\t\t: fpu vme de pse vmx ssse3\n",
			want:    true,
		},
		{
			name:    "amd svm flag",
			cpuinfo: "processor\t: 0\nflags\t\t: fpu vme svm sse4_2\n",
			want:    true,
		},
		{
			name:    "no virtualization flags",
			cpuinfo: "processor\t: 0\nflags\t\t: fpu vme de pse sse\n",
			want:    false,
		},
		{
			name:    "vmx only as substring of another flag",
			cpuinfo: "flags\t\t: fpu avmx2 sse\n",
			want:    false,
		},
		{
			name:    "empty input",
			cpuinfo: "",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hasVirtCPUFlags([]byte(tt.cpuinfo)))
		})
	}
}

func TestRestartPolicyMode(t *testing.T) {
	assert.Equal(t, container.RestartPolicyDisabled, restartPolicyMode(config.RestartNo))
	assert.Equal(t, container.RestartPolicyUnlessStopped, restartPolicyMode(config.RestartUnlessStopped))
	// Unknown values fall back to disabled rather than guessing.
	assert.Equal(t, container.RestartPolicyDisabled, restartPolicyMode("always"))
}

func TestContainerName(t *testing.T) {
	assert.Equal(t, "openhands-app", containerName([]string{"/openhands-app"}, "fallback"))
	assert.Equal(t, "fallback", containerName(nil, "fallback"))
	assert.Equal(t, "fallback", containerName([]string{"/"}, "fallback"))
}

func TestComposeLauncher_Run(t *testing.T) {
	var gotName string
	var gotArgs []string

	launcher := &ComposeLauncher{
		composePath: "/tmp/docker-compose.yaml",
		run: func(_ context.Context, name string, args ...string) ([]byte, error) {
			gotName = name
			gotArgs = args
			return []byte("Started"), nil
		},
	}

	id, err := launcher.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, config.ContainerName, id)
	assert.Equal(t, "docker", gotName)
	assert.Equal(t, []string{"compose", "-f", "/tmp/docker-compose.yaml", "up", "-d"}, gotArgs)
}

func TestComposeLauncher_RunFailureIncludesOutput(t *testing.T) {
	launcher := &ComposeLauncher{
		composePath: "/tmp/docker-compose.yaml",
		run: func(context.Context, string, ...string) ([]byte, error) {
			return []byte("port is already allocated"), errors.New("exit status 1")
		},
	}

	_, err := launcher.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "port is already allocated")
}

func TestComposeLauncher_Down(t *testing.T) {
	var gotArgs []string

	launcher := &ComposeLauncher{
		composePath: "/tmp/docker-compose.yaml",
		run: func(_ context.Context, _ string, args ...string) ([]byte, error) {
			gotArgs = args
			return nil, nil
		},
	}

	require.NoError(t, launcher.Down(context.Background()))
	assert.Equal(t, []string{"compose", "-f", "/tmp/docker-compose.yaml", "down"}, gotArgs)
}

func TestFreeDiskGiB(t *testing.T) {
	free, err := FreeDiskGiB(t.TempDir())

	require.NoError(t, err)
	assert.Positive(t, free)
}
