// Package app implements the install, uninstall, and env operations that tie
// the registry, toolchains, and host config together.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/fleuristes/fleur/internal/hostconfig"
	"github.com/fleuristes/fleur/internal/messages"
	"github.com/fleuristes/fleur/internal/registry"
	"github.com/fleuristes/fleur/internal/runner"
	"github.com/fleuristes/fleur/internal/tasks"
	"github.com/fleuristes/fleur/internal/toolchain"
)

// Environment prepares the toolchains apps launch with.
type Environment interface {
	EnsureRuntimePaths(ctx context.Context) (toolchain.RuntimePaths, error)
	EnsureEnvironment(ctx context.Context) string
}

// Registry serves the raw registry document.
type Registry interface {
	Fetch(ctx context.Context) (json.RawMessage, error)
}

// Store reads and mutates the host config.
type Store interface {
	Load() (hostconfig.Document, error)
	Update(fn func(hostconfig.Document) (bool, error)) (bool, error)
	Diff(next hostconfig.Document) (string, error)
}

// Options configures a Service. Environment, Registry, and Store are required.
type Options struct {
	Environment Environment
	Registry    Registry
	Store       Store
	// Runner runs npm for cache warming; defaults to runner.NewExec.
	Runner runner.Runner
	Tasks  *tasks.Group
	Logger *zap.Logger
	// PreloadPackages are warmed into the npm cache by PreloadDependencies.
	PreloadPackages []string
}

// Statuses reports per-app install and configuration state keyed by app name.
type Statuses struct {
	Installed  map[string]bool `json:"installed"`
	Configured map[string]bool `json:"configured"`
}

// Service is the orchestrator behind every caller-facing operation.
type Service struct {
	env     Environment
	reg     Registry
	store   Store
	runner  runner.Runner
	tasks   *tasks.Group
	logger  *zap.Logger
	preload []string
}

// New validates opts and returns a Service.
func New(opts Options) (*Service, error) {
	if opts.Environment == nil {
		return nil, errors.New(messages.AppEnvironmentRequired)
	}
	if opts.Registry == nil {
		return nil, errors.New(messages.AppRegistryRequired)
	}
	if opts.Store == nil {
		return nil, errors.New(messages.AppStoreRequired)
	}
	s := &Service{
		env:     opts.Environment,
		reg:     opts.Registry,
		store:   opts.Store,
		runner:  opts.Runner,
		tasks:   opts.Tasks,
		logger:  opts.Logger,
		preload: append([]string(nil), opts.PreloadPackages...),
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.runner == nil {
		s.runner = runner.NewExec(s.logger.Named("runner"))
	}
	if s.tasks == nil {
		s.tasks = tasks.NewGroup(s.logger)
	}
	return s, nil
}

// Wait blocks until background cache warming has finished.
func (s *Service) Wait() {
	s.tasks.Wait()
}

// ResolveApps ensures the toolchains, fetches the registry, and resolves every
// entry against this machine. Results are never cached because they depend on
// the current shim and uvx paths.
func (s *Service) ResolveApps(ctx context.Context) ([]registry.Resolved, error) {
	paths, err := s.env.EnsureRuntimePaths(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := s.reg.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	apps, err := registry.ParseApps(raw)
	if err != nil {
		return nil, err
	}
	return registry.Resolve(apps, registry.Commands{NPX: paths.NPX, UVX: paths.UVX}), nil
}

func (s *Service) lookup(ctx context.Context, name string) (registry.Resolved, bool, error) {
	apps, err := s.ResolveApps(ctx)
	if err != nil {
		return registry.Resolved{}, false, err
	}
	app, ok := registry.Find(apps, name)
	return app, ok, nil
}

// GetAppRegistry returns the registry document unchanged, display fields included.
func (s *Service) GetAppRegistry(ctx context.Context) (json.RawMessage, error) {
	s.logger.Info("fetching app registry")
	raw, err := s.reg.Fetch(ctx)
	if err != nil {
		s.logger.Error("failed to fetch app registry", zap.Error(err))
		return nil, err
	}
	return raw, nil
}

// EnsureEnvironment starts the background toolchain bootstrap once per process.
func (s *Service) EnsureEnvironment(ctx context.Context) (string, error) {
	return s.env.EnsureEnvironment(ctx), nil
}

// SetupEnvironment brings every toolchain up synchronously.
func (s *Service) SetupEnvironment(ctx context.Context) (toolchain.RuntimePaths, error) {
	return s.env.EnsureRuntimePaths(ctx)
}

// GetAppStatuses reports, for every registry app, whether it is installed and
// whether it resolved to a command.
func (s *Service) GetAppStatuses(ctx context.Context) (Statuses, error) {
	doc, err := s.store.Load()
	if err != nil {
		return Statuses{}, fmt.Errorf(messages.AppLoadConfigFmt, err)
	}
	apps, err := s.ResolveApps(ctx)
	if err != nil {
		return Statuses{}, err
	}
	statuses := Statuses{
		Installed:  make(map[string]bool, len(apps)),
		Configured: make(map[string]bool, len(apps)),
	}
	for _, app := range apps {
		statuses.Installed[app.Name] = doc.HasServer(app.MCPKey)
		statuses.Configured[app.Name] = app.Command != ""
	}
	return statuses, nil
}
