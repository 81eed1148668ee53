// Package tasks runs detached background work.
//
// Tasks are fire-and-forget: a failure is logged and never returned to the
// caller that started it. Processes are free to exit without waiting.
package tasks

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Group tracks background tasks started by a component.
type Group struct {
	logger *zap.Logger
	wg     sync.WaitGroup
}

// NewGroup returns a Group that logs task outcomes to logger.
func NewGroup(logger *zap.Logger) *Group {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Group{logger: logger}
}

// Go runs fn on a new goroutine and returns the task id used in log entries.
func (g *Group) Go(name string, fn func() error) string {
	id := uuid.NewString()
	logger := g.logger.With(zap.String("task", name), zap.String("task_id", id))

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				logger.Error("background task panicked", zap.String("panic", fmt.Sprint(r)))
			}
		}()

		logger.Debug("background task started")
		if err := fn(); err != nil {
			logger.Warn("background task failed", zap.Error(err))
			return
		}
		logger.Debug("background task finished")
	}()
	return id
}

// Wait blocks until every task started so far has returned.
func (g *Group) Wait() {
	g.wg.Wait()
}
