package toolchain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/fleuristes/fleur/internal/messages"
	"github.com/fleuristes/fleur/internal/runner"
)

// nvmPathMarker must appear in node paths resolved through nvm.
const nvmPathMarker = ".nvm/versions/node"

// nvmScript prefixes body with the lines that load nvm into a bash session.
func (m *Manager) nvmScript(body string) string {
	return "export NVM_DIR=" + quote(m.cfg.NVMDir) + "\n" +
		`[ -s "$NVM_DIR/nvm.sh" ] && \. "$NVM_DIR/nvm.sh"` + "\n" +
		body
}

// NVMInstalled reports whether the nvm directory exists and nvm loads from it.
func (m *Manager) NVMInstalled(ctx context.Context) bool {
	if m.state.nvm.Load() {
		return true
	}
	if _, err := m.sys.Stat(m.cfg.NVMDir); err != nil {
		return false
	}
	if _, ok := m.run(ctx, runner.Shell(m.nvmScript("nvm --version"))); !ok {
		return false
	}
	m.state.nvm.Store(true)
	m.logger.Info("nvm is already installed", zap.String("dir", m.cfg.NVMDir))
	return true
}

// InstallNVM runs the nvm installer unless nvm is already present. Concurrent
// callers share one installer run.
func (m *Manager) InstallNVM(ctx context.Context) error {
	if m.state.nvm.Load() {
		return nil
	}
	m.state.nvmMu.Lock()
	defer m.state.nvmMu.Unlock()
	if m.NVMInstalled(ctx) {
		return nil
	}
	script := "export NVM_DIR=" + quote(m.cfg.NVMDir) + "\nmkdir -p \"$NVM_DIR\"\ncurl -o- " + quote(m.cfg.NVMInstallURL) + " | bash"
	if err := m.install(ctx, "nvm", script); err != nil {
		return err
	}
	m.state.nvm.Store(true)
	return nil
}

// NodeVersion returns the version of the node binary selected by nvm.
func (m *Manager) NodeVersion(ctx context.Context) (string, error) {
	if m.state.node.Load() {
		return m.cfg.NodeVersion, nil
	}
	script := m.nvmScript("nvm use " + quote(m.cfg.NodeVersion) + " >/dev/null 2>&1\nnode --version")
	res, err := m.runner.Run(ctx, runner.Shell(script))
	if err != nil {
		return "", err
	}
	if !res.Success() {
		return "", fmt.Errorf(messages.ToolchainNodeVersionFailedFmt, res.ExitCode, strings.TrimSpace(res.Stderr))
	}
	version := strings.TrimSpace(res.Stdout)
	if version == m.cfg.NodeVersion {
		m.state.node.Store(true)
	}
	return version, nil
}

// NodeInstalled reports whether the pinned Node version is active.
func (m *Manager) NodeInstalled(ctx context.Context) bool {
	version, err := m.NodeVersion(ctx)
	return err == nil && version == m.cfg.NodeVersion
}

// InstallNode installs the pinned Node version with nvm. nvm must already be
// loadable; otherwise ErrVersionManagerMissing is returned without attempting
// an install. A caller that waited on a concurrent install returns once that
// install has succeeded.
func (m *Manager) InstallNode(ctx context.Context) error {
	m.state.nodeMu.Lock()
	defer m.state.nodeMu.Unlock()
	if m.state.node.Load() {
		return nil
	}
	res, ok := m.run(ctx, runner.Shell(m.nvmScript("command -v nvm")))
	if !ok || strings.TrimSpace(res.Stdout) == "" {
		return ErrVersionManagerMissing
	}
	if err := m.install(ctx, "node", m.nvmScript("nvm install "+quote(m.cfg.NodeVersion))); err != nil {
		return err
	}
	m.state.node.Store(true)
	return nil
}

// EnsureNode makes nvm and the pinned Node version available, reinstalling
// Node when a different version is active, then publishes the npx shim.
func (m *Manager) EnsureNode(ctx context.Context) (string, error) {
	if err := m.InstallNVM(ctx); err != nil {
		return "", err
	}
	version, err := m.NodeVersion(ctx)
	if err != nil || version != m.cfg.NodeVersion {
		m.logger.Info("node version mismatch", zap.String("found", version), zap.String("required", m.cfg.NodeVersion))
		if err := m.InstallNode(ctx); err != nil {
			return "", err
		}
	}
	if _, err := m.EnsureShim(ctx); err != nil {
		return "", err
	}
	return messages.ToolchainNodeReady, nil
}

// NodePaths resolves node and npx for the pinned version through nvm.
func (m *Manager) NodePaths(ctx context.Context) (NodePaths, error) {
	script := m.nvmScript("nvm use " + quote(m.cfg.NodeVersion) + " >/dev/null 2>&1\ncommand -v node\ncommand -v npx")
	res, err := m.runner.Run(ctx, runner.Shell(script))
	if err != nil {
		return NodePaths{}, fmt.Errorf(messages.ToolchainNodePathsFmt, err)
	}
	if !res.Success() {
		return NodePaths{}, errors.New(messages.ToolchainNodePathsFailed)
	}

	lines := nonEmptyLines(res.Stdout)
	if len(lines) < 1 {
		return NodePaths{}, errors.New(messages.ToolchainNodePathMissing)
	}
	if len(lines) < 2 {
		return NodePaths{}, errors.New(messages.ToolchainNPXPathMissing)
	}
	paths := NodePaths{Node: lines[0], NPX: lines[1]}
	if !strings.Contains(paths.Node, nvmPathMarker) {
		return NodePaths{}, fmt.Errorf(messages.ToolchainNodeNotFromNVMFmt, paths.Node)
	}
	return paths, nil
}

func nonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
