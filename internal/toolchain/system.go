package toolchain

import (
	"os"
	"os/exec"
)

// System abstracts the filesystem and PATH lookups used by probes.
type System interface {
	LookPath(file string) (string, error)
	Stat(name string) (os.FileInfo, error)
}

// RealSystem implements System using the os and os/exec packages.
type RealSystem struct{}

// LookPath searches PATH for an executable.
func (RealSystem) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Stat returns file info for name.
func (RealSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}
