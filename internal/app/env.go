package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fleuristes/fleur/internal/hostconfig"
	"github.com/fleuristes/fleur/internal/messages"
)

// SaveAppEnv merges values into the env of an installed app. Keys already
// present and absent from values are kept.
func (s *Service) SaveAppEnv(ctx context.Context, name string, values map[string]string) (string, error) {
	s.logger.Info("saving app env", zap.String("app", name), zap.Int("keys", len(values)))

	app, ok, err := s.lookup(ctx, name)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &UnknownAppError{App: name}
	}

	_, err = s.store.Update(func(doc hostconfig.Document) (bool, error) {
		installed, err := doc.MergeServerEnv(app.MCPKey, values)
		if err != nil {
			return false, err
		}
		if !installed {
			return false, &NotInstalledError{App: name}
		}
		return true, nil
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(messages.AppEnvSavedFmt, name), nil
}

// GetAppEnv returns the env of an installed app, empty when none is set.
func (s *Service) GetAppEnv(ctx context.Context, name string) (map[string]string, error) {
	app, ok, err := s.lookup(ctx, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &UnknownAppError{App: name}
	}
	doc, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf(messages.AppLoadConfigFmt, err)
	}
	env, installed, err := doc.ServerEnv(app.MCPKey)
	if err != nil {
		return nil, err
	}
	if !installed {
		return nil, &NotInstalledError{App: name}
	}
	return env, nil
}
