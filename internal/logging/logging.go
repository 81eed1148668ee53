// Package logging builds the zap loggers used by the CLI and the MCP server.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/mitchellh/go-homedir"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fleuristes/fleur/internal/messages"
)

var goos = runtime.GOOS

// Options selects the level and destination of a logger.
type Options struct {
	// Level is a zap level name; empty means info.
	Level string
	// File receives JSON entries when set; otherwise entries go to stderr in
	// console format.
	File string
}

// ParseLevel converts a level name to a zap level.
func ParseLevel(level string) (zapcore.Level, error) {
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf(messages.LoggingInvalidLevelFmt, level, err)
	}
	return parsed, nil
}

// New builds a logger for opts.
func New(opts Options) (*zap.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	var cfg zap.Config
	if opts.File != "" {
		dir := filepath.Dir(opts.File)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf(messages.LoggingCreateDirFmt, dir, err)
		}
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.OutputPaths = []string{opts.File}
		cfg.ErrorOutputPaths = []string{opts.File}
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		cfg.DisableStacktrace = true
		cfg.DisableCaller = true
		cfg.OutputPaths = []string{"stderr"}
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf(messages.LoggingBuildFailedFmt, err)
	}
	return logger, nil
}

// DefaultFile returns the per-OS log file location.
func DefaultFile() (string, error) {
	if goos != "darwin" {
		if state := os.Getenv("XDG_STATE_HOME"); state != "" {
			return filepath.Join(state, "fleur", "fleur.log"), nil
		}
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf(messages.LoggingResolveHomeFmt, err)
	}
	if goos == "darwin" {
		return filepath.Join(home, "Library", "Logs", "Fleur", "fleur.log"), nil
	}
	return filepath.Join(home, ".local", "state", "fleur", "fleur.log"), nil
}
