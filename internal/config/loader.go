package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// envPrefix is the prefix for environment variable overrides.
// OPENHANDS_DEPLOY_PORT overrides deploy.port, OPENHANDS_IMAGES_APP
// overrides images.app, and so on.
const envPrefix = "OPENHANDS"

// Loader loads configuration from files and the environment using Viper.
//
// Use [NewLoader] to create an instance, then [Loader.Load] for the standard
// search order or [Loader.LoadFromFile] for an explicit path.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new [Loader] with environment override support enabled.
func NewLoader() *Loader {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

// Load loads configuration using the standard search order.
//
// It starts from [DefaultConfig], merges the first config file found
// (OPENHANDS_CONFIG_PATH, then ~/.openhands-assistant/config.yaml, then
// ./config.yaml), and applies environment overrides. A missing config file
// is not an error; the defaults already describe a working deployment.
func (l *Loader) Load() (*Config, error) {
	l.setDefaults(DefaultConfig())

	if path := os.Getenv(envPrefix + "_CONFIG_PATH"); path != "" {
		l.v.SetConfigFile(path)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		return l.unmarshal()
	}

	l.v.SetConfigName("config")
	l.v.SetConfigType("yaml")
	l.v.AddConfigPath(filepath.Join(homeDir(), ".openhands-assistant"))
	l.v.AddConfigPath(".")

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file anywhere; defaults plus env overrides apply.
	}

	return l.unmarshal()
}

// LoadFromFile loads configuration from an explicit file path, merged over
// the defaults with environment overrides applied.
func (l *Loader) LoadFromFile(path string) (*Config, error) {
	l.setDefaults(DefaultConfig())

	l.v.SetConfigFile(path)
	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return l.unmarshal()
}

// setDefaults registers every setting with Viper so environment overrides
// resolve even without a config file.
func (l *Loader) setDefaults(def *Config) {
	l.v.SetDefault("images.app", def.Images.App)
	l.v.SetDefault("images.sandbox", def.Images.Sandbox)
	l.v.SetDefault("workspace.dir", def.Workspace.Dir)
	l.v.SetDefault("workspace.state_dir", def.Workspace.StateDir)
	l.v.SetDefault("deploy.port", def.Deploy.Port)
	l.v.SetDefault("deploy.sandbox_user_id", def.Deploy.SandboxUserID)
	l.v.SetDefault("deploy.restart_policy", def.Deploy.RestartPolicy)
	l.v.SetDefault("deploy.launch_strategy", def.Deploy.LaunchStrategy)
	l.v.SetDefault("deploy.pull_policy", def.Deploy.PullPolicy)
	l.v.SetDefault("deploy.log_all_events", def.Deploy.LogAllEvents)
	l.v.SetDefault("deploy.compose_path", def.Deploy.ComposePath)
	l.v.SetDefault("verbose", def.Verbose)
}

// unmarshal decodes the merged settings and validates them.
func (l *Loader) unmarshal() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
