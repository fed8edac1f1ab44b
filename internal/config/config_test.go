package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "docker.all-hands.dev/all-hands-ai/openhands:0.27", cfg.Images.App)
	assert.Equal(t, "docker.all-hands.dev/all-hands-ai/runtime:0.27-nikolaik", cfg.Images.Sandbox)

	assert.Equal(t, 80, cfg.Deploy.Port)
	assert.Equal(t, "1000", cfg.Deploy.SandboxUserID)
	assert.Equal(t, RestartNo, cfg.Deploy.RestartPolicy)
	assert.Equal(t, StrategyCompose, cfg.Deploy.LaunchStrategy)
	assert.Equal(t, PullPrompt, cfg.Deploy.PullPolicy)

	assert.Contains(t, cfg.Workspace.Dir, "Docker_Workspace")
	assert.Contains(t, cfg.Workspace.StateDir, ".openhands-state")
	assert.Contains(t, cfg.Deploy.ComposePath, "docker-compose.yaml")

	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:   "unless-stopped restart policy accepted",
			mutate: func(c *Config) { c.Deploy.RestartPolicy = RestartUnlessStopped },
		},
		{
			name:    "unknown restart policy rejected",
			mutate:  func(c *Config) { c.Deploy.RestartPolicy = "always" },
			wantErr: "restart_policy",
		},
		{
			name:    "unknown launch strategy rejected",
			mutate:  func(c *Config) { c.Deploy.LaunchStrategy = "kubernetes" },
			wantErr: "launch_strategy",
		},
		{
			name:    "unknown pull policy rejected",
			mutate:  func(c *Config) { c.Deploy.PullPolicy = "never" },
			wantErr: "pull_policy",
		},
		{
			name:    "port out of range rejected",
			mutate:  func(c *Config) { c.Deploy.Port = 0 },
			wantErr: "port",
		},
		{
			name:    "empty image rejected",
			mutate:  func(c *Config) { c.Images.App = "" },
			wantErr: "image",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestConfig_URL(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "http://localhost:80", cfg.URL())

	cfg.Deploy.Port = 8080
	assert.Equal(t, "http://localhost:8080", cfg.URL())
}

func TestLoader_LoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")

	configContent := `
images:
  app: docker.all-hands.dev/all-hands-ai/openhands:0.30
deploy:
  port: 8080
  restart_policy: unless-stopped
  launch_strategy: direct
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	loader := NewLoader()
	cfg, err := loader.LoadFromFile(configPath)

	require.NoError(t, err)
	assert.Equal(t, "docker.all-hands.dev/all-hands-ai/openhands:0.30", cfg.Images.App)
	assert.Equal(t, 8080, cfg.Deploy.Port)
	assert.Equal(t, RestartUnlessStopped, cfg.Deploy.RestartPolicy)
	assert.Equal(t, StrategyDirect, cfg.Deploy.LaunchStrategy)

	// Settings the file omits keep their defaults.
	assert.Equal(t, "docker.all-hands.dev/all-hands-ai/runtime:0.27-nikolaik", cfg.Images.Sandbox)
	assert.Equal(t, PullPrompt, cfg.Deploy.PullPolicy)
}

func TestLoader_LoadFromFile_InvalidValues(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "bad-config.yaml")

	err := os.WriteFile(configPath, []byte("deploy:\n  restart_policy: always\n"), 0644)
	require.NoError(t, err)

	loader := NewLoader()
	_, err = loader.LoadFromFile(configPath)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "restart_policy")
}

func TestLoader_EnvOverrides(t *testing.T) {
	t.Setenv("OPENHANDS_DEPLOY_PORT", "3001")
	t.Setenv("OPENHANDS_IMAGES_APP", "docker.all-hands.dev/all-hands-ai/openhands:0.31")
	t.Setenv("OPENHANDS_DEPLOY_SANDBOX_USER_ID", "1001")
	t.Setenv("OPENHANDS_VERBOSE", "true")

	loader := NewLoader()
	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, 3001, cfg.Deploy.Port)
	assert.Equal(t, "docker.all-hands.dev/all-hands-ai/openhands:0.31", cfg.Images.App)
	assert.Equal(t, "1001", cfg.Deploy.SandboxUserID)
	assert.True(t, cfg.Verbose)
}

func TestLoader_ConfigPathEnv(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "elsewhere.yaml")

	err := os.WriteFile(configPath, []byte("deploy:\n  port: 9090\n"), 0644)
	require.NoError(t, err)

	t.Setenv("OPENHANDS_CONFIG_PATH", configPath)

	loader := NewLoader()
	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Deploy.Port)
}
