package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/fleuristes/fleur/internal/settings"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(settings.EnvSettings, "")
	t.Setenv(settings.EnvRegistryURL, "")
	t.Setenv(settings.EnvNVMDir, "")
	t.Setenv(settings.EnvHostConfig, filepath.Join(home, "claude_desktop_config.json"))
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	return home
}

func TestNewDeps_ConsoleDefaults(t *testing.T) {
	isolateHome(t)

	d, err := newDeps(&rootOptions{}, logConsole)
	require.NoError(t, err)
	defer d.close()

	assert.Equal(t, "v20.9.0", d.settings.Toolchain.NodeVersion)
	assert.False(t, d.logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, d.logger.Core().Enabled(zapcore.WarnLevel))
	require.NotNil(t, d.service)
}

func TestNewDeps_VerboseUsesConfiguredLevel(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"debug\"\n"), 0o644))

	d, err := newDeps(&rootOptions{settingsPath: path, verbose: true}, logConsole)
	require.NoError(t, err)
	defer d.close()

	assert.True(t, d.logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewDeps_FileLogging(t *testing.T) {
	isolateHome(t)
	logPath := filepath.Join(t.TempDir(), "logs", "fleur.log")
	settingsPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(settingsPath, []byte("[paths]\nlog_file = \""+logPath+"\"\n"), 0o644))

	d, err := newDeps(&rootOptions{settingsPath: settingsPath}, logFile)
	require.NoError(t, err)
	d.logger.Info("hello")
	d.close()

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestNewDeps_InvalidSettings(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[toolchain]\nnode_version = \"20\"\n"), 0o644))

	_, err := newDeps(&rootOptions{settingsPath: path}, logConsole)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vX.Y.Z")
}
