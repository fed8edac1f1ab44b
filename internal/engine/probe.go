package engine

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// IsInstalled reports whether the runtime binary is present on PATH.
func (c *Client) IsInstalled(_ context.Context) bool {
	_, err := exec.LookPath(runtimeBinary)
	return err == nil
}

// IsRunning reports whether the runtime daemon answers within the probe
// timeout.
func (c *Client) IsRunning(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	_, err := c.api.Ping(ctx)
	return err == nil
}

// Version returns the daemon's server version when it can be queried.
func (c *Client) Version(ctx context.Context) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	version, err := c.api.ServerVersion(ctx)
	if err != nil {
		return "", false
	}
	return version.Version, true
}

// IsVirtualizationEnabled reports whether the virtualization subsystem the
// runtime depends on is available on this host.
//
// On Linux it looks for KVM or hardware virtualization CPU flags. On Windows
// it asks systeminfo for the Hyper-V requirements section. On macOS the
// hypervisor framework is always present.
func (c *Client) IsVirtualizationEnabled(ctx context.Context) bool {
	switch runtime.GOOS {
	case "linux":
		return linuxVirtualizationAvailable()
	case "windows":
		return windowsVirtualizationAvailable(ctx)
	default:
		return true
	}
}

func linuxVirtualizationAvailable() bool {
	if _, err := os.Stat("/dev/kvm"); err == nil {
		return true
	}

	data, err := os.ReadFile("/proc/cpuinfo")
	if err != nil {
		return false
	}
	return hasVirtCPUFlags(data)
}

// hasVirtCPUFlags scans cpuinfo output for the Intel (vmx) or AMD (svm)
// hardware virtualization flags.
func hasVirtCPUFlags(cpuinfo []byte) bool {
	for _, line := range bytes.Split(cpuinfo, []byte("\n")) {
		if !bytes.HasPrefix(line, []byte("flags")) {
			continue
		}
		for _, flag := range strings.Fields(string(line)) {
			if flag == "vmx" || flag == "svm" {
				return true
			}
		}
	}
	return false
}

func windowsVirtualizationAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "systeminfo").Output()
	if err != nil {
		return false
	}
	return strings.Contains(string(out), "Virtualization Enabled In Firmware: Yes") ||
		strings.Contains(string(out), "A hypervisor has been detected")
}

// HasWSL reports whether the Windows Subsystem for Linux answers a status
// query. Trivially true on non-Windows hosts, where no WSL layer is needed.
func HasWSL(ctx context.Context) bool {
	if runtime.GOOS != "windows" {
		return true
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	return exec.CommandContext(ctx, "wsl", "--status").Run() == nil
}
