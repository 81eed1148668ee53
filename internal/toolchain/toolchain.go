// Package toolchain probes for and installs the tools MCP apps launch with:
// uv (uvx), nvm, and a pinned Node release. Probes are cached in State so each
// tool is checked at most until it is first seen.
package toolchain

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/fleuristes/fleur/internal/messages"
	"github.com/fleuristes/fleur/internal/runner"
	"github.com/fleuristes/fleur/internal/shim"
	"github.com/fleuristes/fleur/internal/tasks"
)

const (
	// DefaultNodeVersion is the Node release pinned through nvm.
	DefaultNodeVersion = "v20.9.0"
	// DefaultNVMInstallURL is the nvm install script.
	DefaultNVMInstallURL = "https://raw.githubusercontent.com/nvm-sh/nvm/v0.40.1/install.sh"
	// DefaultUVInstallURL is the uv install script.
	DefaultUVInstallURL = "https://astral.sh/uv/install.sh"
)

// Config selects versions, installer sources, and locations.
type Config struct {
	// Home is the user's home directory.
	Home          string
	NodeVersion   string
	NVMInstallURL string
	UVInstallURL  string
	// NVMDir defaults to Home/.nvm.
	NVMDir string
	// ShimPath defaults to shim.DefaultPath(Home).
	ShimPath string
}

// Options configures a Manager. Runner is required.
type Options struct {
	Config Config
	Runner runner.Runner
	System System
	State  *State
	Tasks  *tasks.Group
	Logger *zap.Logger
}

// RuntimePaths are the commands written into host config entries.
type RuntimePaths struct {
	NPX string
	UVX string
}

// NodePaths are the nvm-managed node and npx executables.
type NodePaths struct {
	Node string
	NPX  string
}

// Manager runs probes and installers for every toolchain.
type Manager struct {
	cfg    Config
	runner runner.Runner
	sys    System
	state  *State
	shim   *shim.Publisher
	tasks  *tasks.Group
	logger *zap.Logger
}

// New validates opts and returns a Manager.
func New(opts Options) (*Manager, error) {
	cfg := opts.Config
	if cfg.Home == "" {
		return nil, errors.New(messages.ToolchainHomeRequired)
	}
	if opts.Runner == nil {
		return nil, errors.New(messages.ToolchainRunnerRequired)
	}
	if cfg.NodeVersion == "" {
		cfg.NodeVersion = DefaultNodeVersion
	}
	if cfg.NVMInstallURL == "" {
		cfg.NVMInstallURL = DefaultNVMInstallURL
	}
	if cfg.UVInstallURL == "" {
		cfg.UVInstallURL = DefaultUVInstallURL
	}
	if cfg.NVMDir == "" {
		cfg.NVMDir = filepath.Join(cfg.Home, ".nvm")
	}
	if cfg.ShimPath == "" {
		cfg.ShimPath = shim.DefaultPath(cfg.Home)
	}

	m := &Manager{
		cfg:    cfg,
		runner: opts.Runner,
		sys:    opts.System,
		state:  opts.State,
		tasks:  opts.Tasks,
		logger: opts.Logger,
	}
	if m.sys == nil {
		m.sys = RealSystem{}
	}
	if m.state == nil {
		m.state = NewState()
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	if m.tasks == nil {
		m.tasks = tasks.NewGroup(m.logger)
	}
	m.shim = shim.New(cfg.ShimPath, m, m.logger)
	return m, nil
}

// State returns the flags shared by this Manager.
func (m *Manager) State() *State {
	return m.state
}

// Config returns the effective configuration after defaults.
func (m *Manager) Config() Config {
	return m.cfg
}

// ShimPath returns where the npx shim lives.
func (m *Manager) ShimPath() string {
	return m.shim.Path()
}

// EnsureShim publishes the npx shim if it is missing.
func (m *Manager) EnsureShim(ctx context.Context) (string, error) {
	return m.shim.Ensure(ctx)
}

// ShimTarget resolves the executables the shim forwards to.
func (m *Manager) ShimTarget(ctx context.Context) (shim.Target, error) {
	paths, err := m.NodePaths(ctx)
	if err != nil {
		return shim.Target{}, err
	}
	return shim.Target{Node: paths.Node, NPX: paths.NPX}, nil
}

// EnsureRuntimePaths brings uv and Node up, publishes the shim, and returns the
// commands for npx and uvx apps.
func (m *Manager) EnsureRuntimePaths(ctx context.Context) (RuntimePaths, error) {
	if _, err := m.EnsureUV(ctx); err != nil {
		return RuntimePaths{}, fmt.Errorf(messages.ToolchainSetupUVFmt, err)
	}
	if _, err := m.EnsureNode(ctx); err != nil {
		return RuntimePaths{}, fmt.Errorf(messages.ToolchainSetupNodeFmt, err)
	}
	npx, err := m.EnsureShim(ctx)
	if err != nil {
		return RuntimePaths{}, fmt.Errorf(messages.ToolchainEnsureShimFmt, err)
	}
	uvx, err := m.UVXPath(ctx)
	if err != nil {
		return RuntimePaths{}, fmt.Errorf(messages.ToolchainUVXPathFmt, err)
	}
	return RuntimePaths{NPX: npx, UVX: uvx}, nil
}

// install runs an installer script. Installers are not cancelled with ctx.
func (m *Manager) install(ctx context.Context, tool string, script string) error {
	m.logger.Info("installing toolchain", zap.String("tool", tool))
	res, err := m.runner.Run(context.WithoutCancel(ctx), runner.Shell(script))
	if err != nil {
		return &InstallError{Tool: tool, Err: err}
	}
	if !res.Success() {
		return &InstallError{Tool: tool, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	m.logger.Info("toolchain installed", zap.String("tool", tool))
	return nil
}

// run executes cmd and reports whether it started and exited zero.
func (m *Manager) run(ctx context.Context, cmd runner.Command) (runner.Result, bool) {
	res, err := m.runner.Run(ctx, cmd)
	if err != nil {
		m.logger.Debug("probe failed to start", zap.String("command", cmd.Name), zap.Error(err))
		return res, false
	}
	return res, res.Success()
}

// quote wraps s in single quotes for sh.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
