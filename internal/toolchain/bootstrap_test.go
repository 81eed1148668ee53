package toolchain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fleuristes/fleur/internal/messages"
	"github.com/fleuristes/fleur/internal/tasks"
)

func freshMachine() *fakeRunner {
	return (&fakeRunner{}).
		on("curl -LsSf", ok("")).
		on("nvm --version", failed(127, "")).
		on("curl -o-", ok("")).
		on("node --version", failed(127, "")).
		on("command -v nvm", ok("nvm\n")).
		on("nvm install", ok("")).
		on("command -v node", ok(nodePathsOutput))
}

func TestEnsureEnvironment_SecondCallDoesNotStartSecondBootstrap(t *testing.T) {
	r := freshMachine()
	m := newTestManager(t, r, testSystem{})

	first := m.EnsureEnvironment(context.Background())
	second := m.EnsureEnvironment(context.Background())
	m.Wait()

	assert.Equal(t, messages.ToolchainSetupStarted, first)
	assert.Equal(t, messages.ToolchainSetupInProgress, second)
	assert.Equal(t, 1, r.count("curl -LsSf"))
	assert.Equal(t, 1, r.count("curl -o-"))
	assert.Equal(t, 1, r.count("nvm install"))
	assert.True(t, m.State().SetupStarted())
	assert.True(t, m.State().UVInstalled())
	assert.True(t, m.State().NVMInstalled())
	assert.True(t, m.State().NodeInstalled())
}

func TestEnsureEnvironment_ResetAllowsNewBootstrap(t *testing.T) {
	r := freshMachine()
	m := newTestManager(t, r, testSystem{})

	m.EnsureEnvironment(context.Background())
	m.Wait()
	m.State().Reset()

	assert.Equal(t, messages.ToolchainSetupStarted, m.EnsureEnvironment(context.Background()))
	m.Wait()
	assert.Equal(t, 2, r.count("curl -LsSf"))
}

func TestBootstrap_UVFailureDoesNotStopNode(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := (&fakeRunner{}).
		on("curl -LsSf", failed(1, "uv offline")).
		on("nvm --version", ok("0.40.1")).
		on("node --version", ok("v20.9.0\n")).
		on("command -v node", ok(nodePathsOutput))
	m := newTestManager(t, r, testSystem{})
	m.logger = zap.New(core)
	m.tasks = tasks.NewGroup(m.logger)

	err := m.Bootstrap(context.Background(), "run-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "uv offline")
	assert.True(t, m.State().NodeInstalled())

	warnings := logs.FilterMessage("uv setup failed").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "run-1", warnings[0].ContextMap()["run_id"])
}

func TestEnsureEnvironment_LogsBackgroundFailure(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := (&fakeRunner{}).
		on("curl", failed(1, "offline")).
		on("nvm --version", failed(127, ""))
	m := newTestManager(t, r, testSystem{})
	m.logger = zap.New(core)
	m.tasks = tasks.NewGroup(m.logger)

	assert.Equal(t, messages.ToolchainSetupStarted, m.EnsureEnvironment(context.Background()))
	m.Wait()

	assert.Equal(t, 1, logs.FilterMessage("background task failed").Len())
}
