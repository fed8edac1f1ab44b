package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"openhandsctl/internal/compose"
	"openhandsctl/internal/config"
	"openhandsctl/internal/provision"
	"openhandsctl/internal/ui"
)

// testApp is an [App] over scripted collaborators, plus the handles the
// tests assert on.
type testApp struct {
	*App

	Out      *bytes.Buffer
	Probe    *provision.FakeProbe
	Launcher *provision.FakeLauncher
}

// newTestApp builds an [App] describing a healthy host with nothing
// deployed, writing to an in-memory buffer and reading prompt answers from
// an empty input. All paths live under a per-test temp directory.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	tmp := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Workspace.Dir = filepath.Join(tmp, "workspace")
	cfg.Workspace.StateDir = filepath.Join(tmp, "state")
	cfg.Deploy.ComposePath = filepath.Join(tmp, "compose", "docker-compose.yaml")

	out := &bytes.Buffer{}
	probe := &provision.FakeProbe{Virt: true, Installed: true, Running: true, Ver: "27.0.1"}
	launcher := &provision.FakeLauncher{}

	return &testApp{
		App: &App{
			Config:    cfg,
			Printer:   ui.NewPrinter(out, strings.NewReader(""), false),
			Probe:     probe,
			Installer: &provision.FakeInstaller{Probe: probe},
			Launcher:  launcher,
			Emitter:   compose.NewEmitter(cfg),
		},
		Out:      out,
		Probe:    probe,
		Launcher: launcher,
	}
}

// execute runs the command tree with the given arguments, capturing cobra's
// own output in the same buffer the printer writes to.
func (a *testApp) execute(t *testing.T, args ...string) error {
	t.Helper()

	root := NewRootCommand(a.App)
	root.SetOut(a.Out)
	root.SetErr(a.Out)
	root.SetArgs(args)

	return root.ExecuteContext(context.Background())
}
