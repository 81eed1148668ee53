package toolchain

import (
	"sync"
	"sync/atomic"
)

// State holds the process-wide bootstrap flags. Installed flags only move from
// false to true; Reset exists for test isolation.
//
// Each tool's check-and-install runs under its own mutex so concurrent callers
// sharing a State launch an installer at most once.
type State struct {
	uv    atomic.Bool
	nvm   atomic.Bool
	node  atomic.Bool
	setup atomic.Bool

	uvMu   sync.Mutex
	nvmMu  sync.Mutex
	nodeMu sync.Mutex
}

// NewState returns a State with every flag cleared.
func NewState() *State {
	return &State{}
}

// UVInstalled reports whether uv was found or installed.
func (s *State) UVInstalled() bool { return s.uv.Load() }

// NVMInstalled reports whether nvm was found or installed.
func (s *State) NVMInstalled() bool { return s.nvm.Load() }

// NodeInstalled reports whether the pinned Node version was found or installed.
func (s *State) NodeInstalled() bool { return s.node.Load() }

// SetupStarted reports whether a background bootstrap has been claimed.
func (s *State) SetupStarted() bool { return s.setup.Load() }

// claimSetup flips the setup flag and reports whether the caller won.
func (s *State) claimSetup() bool {
	return s.setup.CompareAndSwap(false, true)
}

// Reset clears every flag.
func (s *State) Reset() {
	s.uv.Store(false)
	s.nvm.Store(false)
	s.node.Store(false)
	s.setup.Store(false)
}
