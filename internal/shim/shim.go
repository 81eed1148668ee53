// Package shim publishes npx-fleur, a stable executable that forwards to the
// nvm-managed npx. Host config entries point at the shim so they survive Node
// upgrades.
package shim

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/fleuristes/fleur/internal/fsutil"
	"github.com/fleuristes/fleur/internal/messages"
	"github.com/fleuristes/fleur/internal/templates"
)

// Name is the shim executable name.
const Name = "npx-fleur"

// Target is the pair of executables the shim forwards to.
type Target struct {
	Node string
	NPX  string
}

// Resolver locates the active node and npx executables.
type Resolver interface {
	ShimTarget(ctx context.Context) (Target, error)
}

// DefaultPath returns ~/.local/share/fleur/bin/npx-fleur under home.
func DefaultPath(home string) string {
	return filepath.Join(home, ".local", "share", "fleur", "bin", Name)
}

// Publisher writes the shim once and reuses it afterwards.
type Publisher struct {
	path     string
	resolver Resolver
	logger   *zap.Logger
	mu       sync.Mutex
}

// New returns a Publisher that writes the shim at path.
func New(path string, resolver Resolver, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{path: path, resolver: resolver, logger: logger}
}

// Path returns the shim location.
func (p *Publisher) Path() string {
	return p.path
}

// Ensure returns the shim path, writing the script first when no file exists.
// An existing file is returned as-is without checking its content.
func (p *Publisher) Ensure(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := os.Stat(p.path); err == nil {
		return p.path, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf(messages.ShimStatFmt, p.path, err)
	}

	target, err := p.resolver.ShimTarget(ctx)
	if err != nil {
		return "", fmt.Errorf(messages.ShimResolveFmt, err)
	}
	content, err := Render(target)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf(messages.ShimCreateDirFmt, dir, err)
	}
	if err := fsutil.WriteFileAtomic(p.path, content, 0o755); err != nil {
		return "", fmt.Errorf(messages.ShimWriteFmt, p.path, err)
	}
	p.logger.Info("published npx shim", zap.String("path", p.path), zap.String("node", target.Node), zap.String("npx", target.NPX))
	return p.path, nil
}

// Render returns the shim script for target.
func Render(target Target) ([]byte, error) {
	tmpl, err := templates.Read(Name + ".sh")
	if err != nil {
		return nil, err
	}
	r := strings.NewReplacer("{{NODE}}", quote(target.Node), "{{NPX}}", quote(target.NPX))
	return []byte(r.Replace(string(tmpl))), nil
}

// quote wraps s in single quotes for POSIX sh.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
