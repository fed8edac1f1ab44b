package compose

import "openhandsctl/internal/config"

// RunArgs returns the container CLI argument list equivalent to the compose
// document, for display and for the direct-launch mode. The order is fixed,
// so identical configuration yields an identical list.
func RunArgs(cfg *config.Config) []string {
	args := []string{
		"run", "-d",
		"--name", config.ContainerName,
	}

	for _, env := range Env(cfg) {
		args = append(args, "-e", env)
	}

	for _, bind := range Binds(cfg) {
		args = append(args, "-v", bind)
	}

	args = append(args, "-p", PortSpec(cfg))

	for _, host := range ExtraHosts() {
		args = append(args, "--add-host", host)
	}

	args = append(args,
		"--restart", cfg.Deploy.RestartPolicy,
		"-t", "-i",
		cfg.Images.App,
	)

	return args
}
