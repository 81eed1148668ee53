package toolchain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fleuristes/fleur/internal/runner"
)

var errNotMocked = errors.New("not mocked")

type testSystem struct {
	LookPathFunc func(string) (string, error)
	StatFunc     func(string) (os.FileInfo, error)
}

func (s testSystem) LookPath(file string) (string, error) {
	if s.LookPathFunc != nil {
		return s.LookPathFunc(file)
	}
	return "", errNotMocked
}

func (s testSystem) Stat(name string) (os.FileInfo, error) {
	if s.StatFunc != nil {
		return s.StatFunc(name)
	}
	return os.Stat(name)
}

// fakeRunner answers commands through rules matched against the command line.
type fakeRunner struct {
	mu    sync.Mutex
	rules []rule
	calls []string
}

type rule struct {
	contains string
	result   runner.Result
	err      error
}

func (f *fakeRunner) on(contains string, result runner.Result) *fakeRunner {
	f.rules = append(f.rules, rule{contains: contains, result: result})
	return f
}

func (f *fakeRunner) onErr(contains string, err error) *fakeRunner {
	f.rules = append(f.rules, rule{contains: contains, err: err})
	return f
}

func (f *fakeRunner) Run(_ context.Context, cmd runner.Command) (runner.Result, error) {
	line := strings.Join(append([]string{cmd.Name}, cmd.Args...), " ")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, line)
	for _, r := range f.rules {
		if strings.Contains(line, r.contains) {
			return r.result, r.err
		}
	}
	return runner.Result{ExitCode: 127, Stderr: "unexpected command"}, nil
}

func (f *fakeRunner) count(contains string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, call := range f.calls {
		if strings.Contains(call, contains) {
			n++
		}
	}
	return n
}

// slowRunner delays commands matching any of slow so concurrent callers overlap
// while an installer is running.
type slowRunner struct {
	*fakeRunner
	slow  []string
	delay time.Duration
}

func (s slowRunner) Run(ctx context.Context, cmd runner.Command) (runner.Result, error) {
	line := strings.Join(append([]string{cmd.Name}, cmd.Args...), " ")
	for _, match := range s.slow {
		if strings.Contains(line, match) {
			time.Sleep(s.delay)
			break
		}
	}
	return s.fakeRunner.Run(ctx, cmd)
}

// concurrently runs fn from n goroutines and returns their errors.
func concurrently(n int, fn func() error) []error {
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = fn()
		}()
	}
	wg.Wait()
	return errs
}

func ok(stdout string) runner.Result {
	return runner.Result{Stdout: stdout}
}

func failed(code int, stderr string) runner.Result {
	return runner.Result{ExitCode: code, Stderr: stderr}
}

// newTestManager returns a Manager rooted at a temp home with an nvm dir
// present and the shim placed under the temp home.
func newTestManager(t *testing.T, r runner.Runner, sys System) *Manager {
	t.Helper()
	home := t.TempDir()
	if err := os.MkdirAll(filepath.Join(home, ".nvm"), 0o755); err != nil {
		t.Fatalf("mkdir nvm: %v", err)
	}
	m, err := New(Options{
		Config: Config{Home: home},
		Runner: r,
		System: sys,
	})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return m
}

func uvOnPath(file string) (string, error) {
	if file == "uv" || file == "uvx" {
		return "/opt/uv/" + file, nil
	}
	return "", errNotMocked
}

const nodePathsOutput = "/home/u/.nvm/versions/node/v20.9.0/bin/node\n/home/u/.nvm/versions/node/v20.9.0/bin/npx\n"
