package hostconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/mitchellh/go-homedir"

	"github.com/fleuristes/fleur/internal/messages"
)

var goos = runtime.GOOS

// DefaultPath returns the Claude desktop config location for this OS.
func DefaultPath() (string, error) {
	switch goos {
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return "", errors.New(messages.HostconfigAppDataMissing)
		}
		return filepath.Join(appData, "Claude", FileName), nil
	case "darwin":
		home, err := homedir.Dir()
		if err != nil {
			return "", fmt.Errorf(messages.HostconfigResolveHomeFmt, err)
		}
		return filepath.Join(home, "Library", "Application Support", "Claude", FileName), nil
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "Claude", FileName), nil
		}
		home, err := homedir.Dir()
		if err != nil {
			return "", fmt.Errorf(messages.HostconfigResolveHomeFmt, err)
		}
		return filepath.Join(home, ".config", "Claude", FileName), nil
	}
}

// DefaultLockDir returns fleur's state directory, where host config write
// locks live so nothing extra lands next to Claude's own files.
func DefaultLockDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf(messages.HostconfigResolveHomeFmt, err)
	}
	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Fleur", "locks"), nil
	case "windows":
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			return filepath.Join(local, "Fleur", "locks"), nil
		}
		return filepath.Join(home, "AppData", "Local", "Fleur", "locks"), nil
	default:
		if state := os.Getenv("XDG_STATE_HOME"); state != "" {
			return filepath.Join(state, "fleur", "locks"), nil
		}
		return filepath.Join(home, ".local", "state", "fleur", "locks"), nil
	}
}
