package runner

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fleuristes/fleur/internal/messages"
)

// EnvSkipPathPatch disables login-shell PATH merging when set.
const EnvSkipPathPatch = "FLEUR_SKIP_PATH_PATCH"

const (
	defaultLoginShell  = "/bin/zsh"
	loginShellDeadline = 2 * time.Second
)

// pathPatcher gives child processes the PATH a login shell would see. Claude
// desktop starts fleur from Finder with a PATH that omits Homebrew, nvm and
// uv, so installers and probes would otherwise miss them. Lookups are cached
// per shell for the life of the process, failures included.
type pathPatcher struct {
	goos   string
	lookup func(ctx context.Context, shell string) (string, error)
	logger *zap.Logger

	mu    sync.Mutex
	known map[string]loginPath
}

type loginPath struct {
	value string
	err   error
}

func newPathPatcher(logger *zap.Logger) *pathPatcher {
	return &pathPatcher{
		goos:   runtime.GOOS,
		lookup: shellPATH,
		logger: logger,
		known:  map[string]loginPath{},
	}
}

// Patch returns env with the login-shell PATH entries placed ahead of the
// inherited ones. env is returned unchanged off macOS, inside a terminal, when
// EnvSkipPathPatch is set, or when the login shell cannot be asked.
func (p *pathPatcher) Patch(env []string) []string {
	if !p.applies(env) {
		return env
	}
	shell := strings.TrimSpace(getenv(env, "SHELL"))
	if shell == "" {
		shell = defaultLoginShell
	}
	login, err := p.loginPATH(shell)
	if err != nil {
		return env
	}
	inherited := getenv(env, "PATH")
	merged := joinPATH(login, inherited)
	if merged == "" || merged == inherited {
		return env
	}
	return setenv(env, "PATH", merged)
}

func (p *pathPatcher) applies(env []string) bool {
	if p.goos != "darwin" {
		return false
	}
	return strings.TrimSpace(getenv(env, EnvSkipPathPatch)) == "" &&
		strings.TrimSpace(getenv(env, "TERM")) == ""
}

// loginPATH asks shell once and remembers the answer. Concurrent callers wait
// for the first lookup instead of starting their own shells.
func (p *pathPatcher) loginPATH(shell string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if known, ok := p.known[shell]; ok {
		return known.value, known.err
	}

	value, err := p.lookup(context.Background(), shell)
	if err == nil && strings.TrimSpace(value) == "" {
		err = errors.New(messages.RunnerLoginPathEmpty)
	}
	if err != nil {
		p.logger.Warn("login shell PATH lookup failed; using inherited PATH", zap.String("shell", shell), zap.Error(err))
	} else {
		p.logger.Debug("resolved login shell PATH", zap.String("shell", shell), zap.String("path", value))
	}
	p.known[shell] = loginPath{value: value, err: err}
	return value, err
}

// shellPATH prints $PATH from a login shell with a short deadline so a broken
// shell profile cannot stall every command.
func shellPATH(ctx context.Context, shell string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, loginShellDeadline)
	defer cancel()

	cmd := exec.CommandContext(ctx, shell, "-lc", `printf '%s' "$PATH"`)
	cmd.Env = append(os.Environ(), "LANG=C", "LC_ALL=C")
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// joinPATH concatenates PATH lists in order, dropping blanks and repeats.
func joinPATH(lists ...string) string {
	seen := map[string]bool{}
	var dirs []string
	for _, list := range lists {
		for _, dir := range filepath.SplitList(list) {
			dir = strings.TrimSpace(dir)
			if dir == "" || seen[dir] {
				continue
			}
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return strings.Join(dirs, string(os.PathListSeparator))
}

// getenv returns the last value of key in env, as exec does.
func getenv(env []string, key string) string {
	for i := len(env) - 1; i >= 0; i-- {
		if k, v, ok := strings.Cut(env[i], "="); ok && k == key {
			return v
		}
	}
	return ""
}

// setenv drops every key entry from env and appends key=value.
func setenv(env []string, key, value string) []string {
	out := make([]string, 0, len(env)+1)
	for _, entry := range env {
		if k, _, _ := strings.Cut(entry, "="); k != key {
			out = append(out, entry)
		}
	}
	return append(out, key+"="+value)
}
