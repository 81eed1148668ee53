package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/fleuristes/fleur/internal/hostconfig"
	"github.com/fleuristes/fleur/internal/messages"
	"github.com/fleuristes/fleur/internal/registry"
	"github.com/fleuristes/fleur/internal/runner"
)

// Install writes the host config entry for name, replacing any existing one.
// env is written only when non-nil. An unknown name is reported in the
// returned message rather than as an error.
func (s *Service) Install(ctx context.Context, name string, env map[string]string) (string, error) {
	s.logger.Info("installing app", zap.String("app", name))

	app, ok, err := s.lookup(ctx, name)
	if err != nil {
		return "", err
	}
	if !ok {
		return fmt.Sprintf(messages.AppNoConfigurationFmt, name), nil
	}

	_, err = s.store.Update(func(doc hostconfig.Document) (bool, error) {
		return true, doc.SetServer(app.MCPKey, serverEntry(app, env))
	})
	if err != nil {
		return "", fmt.Errorf(messages.AppUpdateConfigFmt, err)
	}

	s.warmCache(app)
	return fmt.Sprintf(messages.AppAddedFmt, app.MCPKey, name), nil
}

// PreviewInstall returns the diff Install would apply without writing it.
func (s *Service) PreviewInstall(ctx context.Context, name string, env map[string]string) (string, error) {
	app, ok, err := s.lookup(ctx, name)
	if err != nil {
		return "", err
	}
	if !ok {
		return fmt.Sprintf(messages.AppNoConfigurationFmt, name), nil
	}
	doc, err := s.store.Load()
	if err != nil {
		return "", fmt.Errorf(messages.AppLoadConfigFmt, err)
	}
	if err := doc.SetServer(app.MCPKey, serverEntry(app, env)); err != nil {
		return "", err
	}
	diff, err := s.store.Diff(doc)
	if err != nil {
		return "", err
	}
	if diff == "" {
		return messages.AppNoChanges, nil
	}
	return diff, nil
}

// Uninstall removes the host config entry for name. Unknown names and absent
// entries are reported in the returned message rather than as errors.
func (s *Service) Uninstall(ctx context.Context, name string) (string, error) {
	s.logger.Info("uninstalling app", zap.String("app", name))

	app, ok, err := s.lookup(ctx, name)
	if err != nil {
		return "", err
	}
	if !ok {
		return fmt.Sprintf(messages.AppNoConfigurationFmt, name), nil
	}

	removed, err := s.store.Update(func(doc hostconfig.Document) (bool, error) {
		return doc.RemoveServer(app.MCPKey)
	})
	if err != nil {
		return "", fmt.Errorf(messages.AppUpdateConfigFmt, err)
	}
	if !removed {
		return fmt.Sprintf(messages.AppConfigNotFoundFmt, name), nil
	}
	return fmt.Sprintf(messages.AppRemovedFmt, app.MCPKey, name), nil
}

// IsInstalled reports whether name has a host config entry. Unknown names
// report false.
func (s *Service) IsInstalled(ctx context.Context, name string) (bool, error) {
	app, ok, err := s.lookup(ctx, name)
	if err != nil || !ok {
		return false, err
	}
	doc, err := s.store.Load()
	if err != nil {
		return false, fmt.Errorf(messages.AppLoadConfigFmt, err)
	}
	return doc.HasServer(app.MCPKey), nil
}

// PreloadDependencies warms the npm cache for the configured packages in the
// background. Failures are logged only.
func (s *Service) PreloadDependencies() {
	for _, pkg := range s.preload {
		s.cacheAdd(pkg)
	}
}

func serverEntry(app registry.Resolved, env map[string]string) hostconfig.ServerEntry {
	entry := hostconfig.ServerEntry{
		Command: app.Command,
		Args:    append([]string{}, app.Args...),
	}
	if env != nil {
		entry.Env = make(map[string]string, len(env))
		for k, v := range env {
			entry.Env[k] = v
		}
	}
	return entry
}

// warmCache fetches an npx app's package into the npm cache so its first
// launch from the host is fast.
func (s *Service) warmCache(app registry.Resolved) {
	if pkg := app.PackageName(); pkg != "" {
		s.cacheAdd(pkg)
	}
}

func (s *Service) cacheAdd(pkg string) {
	s.tasks.Go("npm-cache-add", func() error {
		res, err := s.runner.Run(context.Background(), runner.Command{Name: "npm", Args: []string{"cache", "add", pkg}})
		if err != nil {
			return err
		}
		if !res.Success() {
			return fmt.Errorf(messages.AppCacheWarmFailedFmt, pkg, res.ExitCode, strings.TrimSpace(res.Stderr))
		}
		s.logger.Debug("warmed npm cache", zap.String("package", pkg))
		return nil
	})
}
