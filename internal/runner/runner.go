// Package runner executes external programs and captures their output.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"go.uber.org/zap"

	"github.com/fleuristes/fleur/internal/messages"
)

// Command describes a single external program invocation.
type Command struct {
	Name string
	Args []string
	// Env entries are appended to the inherited environment.
	Env []string
	Dir string
}

// Shell returns a Command that runs script with bash -c.
func Shell(script string) Command {
	return Command{Name: "bash", Args: []string{"-c", script}}
}

// Result captures how a command finished.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the command exited with status zero.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Runner runs external commands.
// Run returns an error only when the command could not be started; a non-zero
// exit status is reported through Result.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// Exec implements Runner with os/exec.
type Exec struct {
	environ func() []string
	path    *pathPatcher
}

// NewExec returns a Runner that inherits the current process environment,
// with PATH patched for GUI-launched hosts. A nil logger discards logs.
func NewExec(logger *zap.Logger) *Exec {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exec{environ: os.Environ, path: newPathPatcher(logger)}
}

// Run starts cmd, waits for it, and captures stdout and stderr.
func (e *Exec) Run(ctx context.Context, cmd Command) (Result, error) {
	if cmd.Name == "" {
		return Result{}, errors.New(messages.RunnerCommandRequired)
	}
	environ := os.Environ
	if e.environ != nil {
		environ = e.environ
	}
	env := environ()
	if e.path != nil {
		env = e.path.Patch(env)
	}

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Env = append(env, cmd.Env...)
	c.Dir = cmd.Dir
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	result := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return result, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		if result.ExitCode == 0 {
			result.ExitCode = -1
		}
		return result, nil
	}
	return result, fmt.Errorf(messages.RunnerStartFailedFmt, cmd.Name, err)
}
