package toolchain

import (
	"context"
	"errors"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/fleuristes/fleur/internal/messages"
	"github.com/fleuristes/fleur/internal/runner"
)

// UVInstalled reports whether uv is on PATH and answers --version.
func (m *Manager) UVInstalled(ctx context.Context) bool {
	if m.state.uv.Load() {
		return true
	}
	path, err := m.sys.LookPath("uv")
	if err != nil {
		return false
	}
	if _, ok := m.run(ctx, runner.Command{Name: path, Args: []string{"--version"}}); !ok {
		return false
	}
	m.state.uv.Store(true)
	m.logger.Info("uv is already installed", zap.String("path", path))
	return true
}

// InstallUV runs the uv installer unless uv is already present. Callers that
// arrive while an install is running wait for it and then see uv installed.
func (m *Manager) InstallUV(ctx context.Context) error {
	if m.state.uv.Load() {
		return nil
	}
	m.state.uvMu.Lock()
	defer m.state.uvMu.Unlock()
	if m.UVInstalled(ctx) {
		return nil
	}
	if err := m.install(ctx, "uv", "curl -LsSf "+quote(m.cfg.UVInstallURL)+" | sh"); err != nil {
		return err
	}
	m.state.uv.Store(true)
	return nil
}

// EnsureUV makes uv available and returns a readiness message.
func (m *Manager) EnsureUV(ctx context.Context) (string, error) {
	if err := m.InstallUV(ctx); err != nil {
		return "", err
	}
	return messages.ToolchainUVReady, nil
}

// UVXPath locates uvx on PATH, falling back to the installer's target
// directories for processes whose PATH predates the install.
func (m *Manager) UVXPath(_ context.Context) (string, error) {
	if path, err := m.sys.LookPath("uvx"); err == nil {
		return path, nil
	}
	for _, candidate := range []string{
		filepath.Join(m.cfg.Home, ".local", "bin", "uvx"),
		filepath.Join(m.cfg.Home, ".cargo", "bin", "uvx"),
	} {
		info, err := m.sys.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", errors.New(messages.ToolchainUVXNotFound)
}
