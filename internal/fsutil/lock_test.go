//go:build !windows

package fsutil

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWithFileLock_RunsFunction(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.lock")
	called := false

	err := WithFileLock(path, func() error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("WithFileLock: %v", err)
	}
	if !called {
		t.Fatal("expected fn to run")
	}
}

func TestWithFileLock_PropagatesError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.lock")
	boom := errors.New("boom")

	err := WithFileLock(path, func() error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestWithFileLock_TimesOutWhileHeld(t *testing.T) {
	origTimeout := lockWaitTimeout
	origPoll := lockPollEvery
	lockWaitTimeout = 50 * time.Millisecond
	lockPollEvery = 5 * time.Millisecond
	t.Cleanup(func() {
		lockWaitTimeout = origTimeout
		lockPollEvery = origPoll
	})

	path := filepath.Join(t.TempDir(), "config.lock")
	held, err := acquireFileLock(path)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer func() { _ = held.release() }()

	err = WithFileLock(path, func() error {
		t.Fatal("fn must not run while the lock is held")
		return nil
	})
	if err == nil || !strings.Contains(err.Error(), "timed out") {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func TestWithFileLock_OpenError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "config.lock")

	if err := WithFileLock(path, func() error { return nil }); err == nil {
		t.Fatal("expected open error")
	}
}
