package app

import (
	"errors"
	"fmt"

	"github.com/fleuristes/fleur/internal/messages"
)

// ErrNotInstalled matches NotInstalledError with errors.Is.
var ErrNotInstalled = errors.New(messages.AppNotInstalled)

// NotInstalledError reports an env operation on an app with no host config entry.
type NotInstalledError struct {
	App string
}

func (e *NotInstalledError) Error() string {
	return fmt.Sprintf(messages.AppNotInstalledFmt, e.App)
}

// Is reports whether target is ErrNotInstalled.
func (e *NotInstalledError) Is(target error) bool {
	return target == ErrNotInstalled
}

// UnknownAppError reports an env operation on a name missing from the registry.
type UnknownAppError struct {
	App string
}

func (e *UnknownAppError) Error() string {
	return fmt.Sprintf(messages.AppNoConfigurationErrFmt, e.App)
}
