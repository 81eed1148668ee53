package toolchain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fleuristes/fleur/internal/messages"
)

// EnsureEnvironment starts the full bootstrap in the background the first time
// it is called and returns immediately. Later calls report that setup is
// already in progress. Bootstrap failures are logged, not returned.
func (m *Manager) EnsureEnvironment(ctx context.Context) string {
	if !m.state.claimSetup() {
		return messages.ToolchainSetupInProgress
	}
	runID := uuid.NewString()
	bg := context.WithoutCancel(ctx)
	m.tasks.Go("bootstrap", func() error {
		return m.Bootstrap(bg, runID)
	})
	return messages.ToolchainSetupStarted
}

// Bootstrap brings up uv and then Node. A uv failure does not stop the Node
// setup; both errors are joined.
func (m *Manager) Bootstrap(ctx context.Context, runID string) error {
	logger := m.logger.With(zap.String("run_id", runID))
	logger.Info("environment bootstrap started")

	var errs []error
	if _, err := m.EnsureUV(ctx); err != nil {
		logger.Warn("uv setup failed", zap.Error(err))
		errs = append(errs, err)
	}
	if _, err := m.EnsureNode(ctx); err != nil {
		logger.Warn("node environment setup failed", zap.Error(err))
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		logger.Info("environment bootstrap finished")
	}
	return errors.Join(errs...)
}

// Wait blocks until background bootstrap work has finished.
func (m *Manager) Wait() {
	m.tasks.Wait()
}
