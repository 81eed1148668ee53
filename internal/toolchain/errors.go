package toolchain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fleuristes/fleur/internal/messages"
)

// ErrVersionManagerMissing indicates nvm could not be located before a Node install.
var ErrVersionManagerMissing = errors.New(messages.ToolchainNVMMissing)

// InstallError reports a failed installer run. Err is set when the installer
// could not be started; otherwise ExitCode and Stderr describe the failure.
type InstallError struct {
	Tool     string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *InstallError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(messages.ToolchainInstallStartFmt, e.Tool, e.Err)
	}
	return fmt.Sprintf(messages.ToolchainInstallFailedFmt, e.Tool, e.ExitCode, strings.TrimSpace(e.Stderr))
}

func (e *InstallError) Unwrap() error {
	return e.Err
}

// IsInstallError reports whether err wraps an InstallError.
func IsInstallError(err error) bool {
	var ie *InstallError
	return errors.As(err, &ie)
}
