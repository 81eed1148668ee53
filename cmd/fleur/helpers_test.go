package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fleuristes/fleur/internal/app"
	"github.com/fleuristes/fleur/internal/hostconfig"
	"github.com/fleuristes/fleur/internal/messages"
	"github.com/fleuristes/fleur/internal/prompt"
	"github.com/fleuristes/fleur/internal/registry"
	"github.com/fleuristes/fleur/internal/runner"
	"github.com/fleuristes/fleur/internal/settings"
	"github.com/fleuristes/fleur/internal/toolchain"
	"github.com/fleuristes/fleur/internal/update"
)

const testRegistry = `[{"name":"Browser","config":{"mcpKey":"puppeteer","runtime":"npx","args":["-y","@modelcontextprotocol/server-puppeteer"]}},{"name":"Time","config":{"mcpKey":"time","runtime":"uvx","args":["mcp-server-time"]}}]`

var errNotMocked = errors.New("not mocked")

type fakeEnvironment struct {
	err error
}

func (f *fakeEnvironment) EnsureRuntimePaths(context.Context) (toolchain.RuntimePaths, error) {
	if f.err != nil {
		return toolchain.RuntimePaths{}, f.err
	}
	return toolchain.RuntimePaths{NPX: "/test/npx-fleur", UVX: "/test/uvx"}, nil
}

func (f *fakeEnvironment) EnsureEnvironment(context.Context) string {
	return messages.ToolchainSetupStarted
}

type fakeRegistry struct {
	raw string
}

func (f *fakeRegistry) Fetch(context.Context) (json.RawMessage, error) {
	return json.RawMessage(f.raw), nil
}

type fakeToolchain struct {
	installed bool
}

func (f fakeToolchain) UVInstalled(context.Context) bool   { return f.installed }
func (f fakeToolchain) NVMInstalled(context.Context) bool  { return f.installed }
func (f fakeToolchain) NodeInstalled(context.Context) bool { return f.installed }

type fakeLister struct {
	err error
}

func (f fakeLister) Apps(context.Context) ([]registry.App, error) {
	if f.err != nil {
		return nil, f.err
	}
	return registry.ParseApps([]byte(testRegistry))
}

func (f fakeLister) URL() string { return "https://registry.test/apps.json" }

type recordingRunner struct {
	mu    sync.Mutex
	calls []runner.Command
}

func (r *recordingRunner) Run(_ context.Context, cmd runner.Command) (runner.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, cmd)
	return runner.Result{}, nil
}

type fakeUI struct {
	selectFunc  func(title string, options []string, value *string) error
	confirmFunc func(title string, value *bool) error
	secretFunc  func(title string, value *string) error
}

func (f *fakeUI) Select(title string, options []string, value *string) error {
	if f.selectFunc == nil {
		return errNotMocked
	}
	return f.selectFunc(title, options, value)
}

func (f *fakeUI) Confirm(title string, value *bool) error {
	if f.confirmFunc == nil {
		return errNotMocked
	}
	return f.confirmFunc(title, value)
}

func (f *fakeUI) SecretInput(title string, value *string) error {
	if f.secretFunc == nil {
		return errNotMocked
	}
	return f.secretFunc(title, value)
}

// cliFixture replaces the dependency graph with fakes backed by a temp host config.
type cliFixture struct {
	hostPath  string
	shimPath  string
	env       *fakeEnvironment
	runner    *recordingRunner
	toolchain fakeToolchain
	lister    fakeLister
	modes     []logMode
}

func newCLIFixture(t *testing.T) *cliFixture {
	t.Helper()
	f := &cliFixture{
		hostPath: filepath.Join(t.TempDir(), hostconfig.FileName),
		shimPath: filepath.Join(t.TempDir(), "npx-fleur"),
		env:      &fakeEnvironment{},
		runner:   &recordingRunner{},
	}

	origLoad, origInteractive, origUI, origCheck := loadDeps, isInteractive, newPromptUI, checkForUpdate
	t.Cleanup(func() {
		loadDeps, isInteractive, newPromptUI, checkForUpdate = origLoad, origInteractive, origUI, origCheck
	})
	checkForUpdate = func(_ context.Context, current string) (update.Result, error) {
		return update.Result{Current: current, Latest: current}, nil
	}
	isInteractive = func() bool { return false }
	newPromptUI = func() prompt.UI { return &fakeUI{} }
	loadDeps = func(_ *rootOptions, mode logMode) (*deps, error) {
		f.modes = append(f.modes, mode)
		s, err := settings.Defaults()
		if err != nil {
			return nil, err
		}
		svc, err := app.New(app.Options{
			Environment: f.env,
			Registry:    &fakeRegistry{raw: testRegistry},
			Store:       hostconfig.NewStore(f.hostPath, nil),
			Runner:      f.runner,
		})
		if err != nil {
			return nil, err
		}
		return &deps{
			settings:  s,
			logger:    zap.NewNop(),
			service:   svc,
			toolchain: f.toolchain,
			registry:  f.lister,
			hostPath:  f.hostPath,
			shimPath:  f.shimPath,
		}, nil
	}
	return f
}

func (f *cliFixture) useUI(ui prompt.UI) {
	isInteractive = func() bool { return true }
	newPromptUI = func() prompt.UI { return ui }
}

func (f *cliFixture) document(t *testing.T) hostconfig.Document {
	t.Helper()
	doc, err := hostconfig.NewStore(f.hostPath, nil).Load()
	require.NoError(t, err)
	return doc
}

func runCLI(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	err := execute(append([]string{"fleur"}, args...), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}
