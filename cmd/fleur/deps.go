package main

import (
	"fmt"

	"github.com/mitchellh/go-homedir"
	"go.uber.org/zap"

	"github.com/fleuristes/fleur/internal/app"
	"github.com/fleuristes/fleur/internal/doctor"
	"github.com/fleuristes/fleur/internal/hostconfig"
	"github.com/fleuristes/fleur/internal/logging"
	"github.com/fleuristes/fleur/internal/messages"
	"github.com/fleuristes/fleur/internal/registry"
	"github.com/fleuristes/fleur/internal/runner"
	"github.com/fleuristes/fleur/internal/settings"
	"github.com/fleuristes/fleur/internal/tasks"
	"github.com/fleuristes/fleur/internal/toolchain"
)

// logMode selects where a command's logs go.
type logMode int

const (
	// logConsole writes human-readable entries to stderr.
	logConsole logMode = iota
	// logFile writes JSON entries to the log file; stdout belongs to MCP.
	logFile
)

// deps is everything a command needs, wired from the settings file.
type deps struct {
	settings  *settings.Settings
	logger    *zap.Logger
	service   *app.Service
	toolchain doctor.Toolchain
	registry  doctor.AppLister
	hostPath  string
	shimPath  string
}

// close waits for background npm and bootstrap work, then flushes the logger.
func (d *deps) close() {
	d.service.Wait()
	_ = d.logger.Sync()
}

var loadDeps = newDeps

func newDeps(opts *rootOptions, mode logMode) (*deps, error) {
	s, err := settings.Load(opts.settingsPath)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(opts, s, mode)
	if err != nil {
		return nil, err
	}

	home, err := homedir.Dir()
	if err != nil {
		return nil, fmt.Errorf(messages.CLIResolveHomeFmt, err)
	}
	group := tasks.NewGroup(logger)
	exec := runner.NewExec(logger.Named("runner"))

	manager, err := toolchain.New(toolchain.Options{
		Config: toolchain.Config{
			Home:          home,
			NodeVersion:   s.Toolchain.NodeVersion,
			NVMInstallURL: s.Toolchain.NVMInstallURL,
			UVInstallURL:  s.Toolchain.UVInstallURL,
			NVMDir:        s.Toolchain.NVMDir,
			ShimPath:      s.Paths.Shim,
		},
		Runner: exec,
		System: toolchain.RealSystem{},
		State:  toolchain.NewState(),
		Tasks:  group,
		Logger: logger.Named("toolchain"),
	})
	if err != nil {
		return nil, err
	}

	timeout, err := s.RegistryTimeout()
	if err != nil {
		return nil, err
	}
	fetcher, err := registry.NewFetcher(registry.Options{
		URL:     s.Registry.URL,
		Timeout: timeout,
		Logger:  logger.Named("registry"),
	})
	if err != nil {
		return nil, err
	}

	hostPath := s.Paths.HostConfig
	if hostPath == "" {
		hostPath, err = hostconfig.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf(messages.CLIHostConfigPathFmt, err)
		}
	}

	lockDir, err := hostconfig.DefaultLockDir()
	if err != nil {
		return nil, err
	}
	store := hostconfig.NewStore(hostPath, logger.Named("hostconfig"))
	store.SetLockDir(lockDir)

	svc, err := app.New(app.Options{
		Environment:     manager,
		Registry:        fetcher,
		Store:           store,
		Runner:          exec,
		Tasks:           group,
		Logger:          logger.Named("app"),
		PreloadPackages: s.Preload.Packages,
	})
	if err != nil {
		return nil, err
	}
	return &deps{
		settings:  s,
		logger:    logger,
		service:   svc,
		toolchain: manager,
		registry:  fetcher,
		hostPath:  hostPath,
		shimPath:  manager.ShimPath(),
	}, nil
}

// newLogger logs to stderr at warn level for interactive commands unless
// --verbose is set, and to the log file at the configured level for serve.
func newLogger(opts *rootOptions, s *settings.Settings, mode logMode) (*zap.Logger, error) {
	if mode == logFile {
		path := s.Paths.LogFile
		if path == "" {
			var err error
			path, err = logging.DefaultFile()
			if err != nil {
				return nil, err
			}
		}
		return logging.New(logging.Options{Level: s.Log.Level, File: path})
	}
	level := "warn"
	if opts.verbose {
		level = s.Log.Level
	}
	return logging.New(logging.Options{Level: level})
}
