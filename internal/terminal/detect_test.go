//go:build !windows

package terminal

import (
	"os"
	"testing"

	"github.com/creack/pty"
)

func openPTY(t *testing.T) *os.File {
	t.Helper()
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	t.Cleanup(func() {
		_ = tty.Close()
		_ = ptmx.Close()
	})
	return tty
}

func TestIsTerminal_PTY(t *testing.T) {
	tty := openPTY(t)
	if !IsTerminal(tty) {
		t.Fatalf("expected pty to be a terminal")
	}
}

func TestIsTerminal_PipeAndNil(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer func() { _ = r.Close(); _ = w.Close() }()

	if IsTerminal(r) {
		t.Fatalf("expected pipe not to be a terminal")
	}
	if IsTerminal(nil) {
		t.Fatalf("expected nil file not to be a terminal")
	}
}

func TestIsInteractive_RequiresBothEnds(t *testing.T) {
	tty := openPTY(t)
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer func() { _ = r.Close(); _ = w.Close() }()

	if !isInteractive(tty, tty) {
		t.Fatalf("expected pty on both ends to be interactive")
	}
	if isInteractive(tty, w) {
		t.Fatalf("expected piped stdout to be non-interactive")
	}
	if isInteractive(r, tty) {
		t.Fatalf("expected piped stdin to be non-interactive")
	}
	_ = IsInteractive()
}
