// Package settings loads Fleur's own TOML settings file.
package settings

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/fleuristes/fleur/internal/fsutil"
	"github.com/fleuristes/fleur/internal/logging"
	"github.com/fleuristes/fleur/internal/messages"
	"github.com/fleuristes/fleur/internal/templates"
	"github.com/fleuristes/fleur/internal/version"
)

const (
	// EnvSettings selects the settings file when --settings is not given.
	EnvSettings = "FLEUR_SETTINGS"
	// EnvHostConfig overrides paths.host_config.
	EnvHostConfig = "FLEUR_HOST_CONFIG"
	// EnvRegistryURL overrides registry.url.
	EnvRegistryURL = "FLEUR_REGISTRY_URL"
	// EnvNVMDir is nvm's own checkout variable, used when toolchain.nvm_dir is empty.
	EnvNVMDir = "NVM_DIR"

	templateName = "config.toml"
)

// Settings mirrors config.toml.
type Settings struct {
	Registry  Registry  `toml:"registry"`
	Toolchain Toolchain `toml:"toolchain"`
	Paths     Paths     `toml:"paths"`
	Log       Log       `toml:"log"`
	Preload   Preload   `toml:"preload"`
}

// Registry configures the app registry fetch.
type Registry struct {
	URL     string `toml:"url"`
	Timeout string `toml:"timeout"`
}

// Toolchain configures uv, nvm, and Node installation.
type Toolchain struct {
	NodeVersion   string `toml:"node_version"`
	NVMInstallURL string `toml:"nvm_install_url"`
	UVInstallURL  string `toml:"uv_install_url"`
	NVMDir        string `toml:"nvm_dir"`
}

// Paths overrides file locations. Empty values fall back to per-OS defaults.
type Paths struct {
	HostConfig string `toml:"host_config"`
	Shim       string `toml:"shim"`
	LogFile    string `toml:"log_file"`
}

// Log configures the logger.
type Log struct {
	Level string `toml:"level"`
}

// Preload lists npm packages warmed into the cache at server start.
type Preload struct {
	Packages []string `toml:"packages"`
}

// DefaultPath returns ~/.config/fleur/config.toml.
func DefaultPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf(messages.SettingsResolveHomeFmt, err)
	}
	return filepath.Join(home, ".config", "fleur", templateName), nil
}

// ResolvePath picks the settings file: explicit path, then FLEUR_SETTINGS, then the default.
func ResolvePath(path string) (string, error) {
	if path == "" {
		path = os.Getenv(EnvSettings)
	}
	if path == "" {
		return DefaultPath()
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf(messages.SettingsExpandPathFmt, path, err)
	}
	return expanded, nil
}

// Defaults returns the settings embedded in the default template.
func Defaults() (*Settings, error) {
	data, err := templates.Read(templateName)
	if err != nil {
		return nil, fmt.Errorf(messages.TemplatesReadFailedFmt, templateName, err)
	}
	var s Settings
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf(messages.SettingsInvalidFmt, "template "+templateName, err)
	}
	return &s, nil
}

// Load reads the settings file at path (see ResolvePath), layering it over the
// defaults. A missing file yields the defaults. Environment overrides are
// applied last, then paths are expanded and the result validated.
func Load(path string) (*Settings, error) {
	resolved, err := ResolvePath(path)
	if err != nil {
		return nil, err
	}
	s, err := Defaults()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf(messages.SettingsReadFmt, resolved, err)
	default:
		if err := Parse(data, resolved, s); err != nil {
			return nil, err
		}
	}

	s.applyEnv()
	if err := s.expandPaths(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf(messages.SettingsInvalidFmt, resolved, err)
	}
	return s, nil
}

// Parse decodes data over s, rejecting keys that Settings does not declare.
func Parse(data []byte, source string, s *Settings) error {
	if err := toml.Unmarshal(data, s); err != nil {
		return fmt.Errorf(messages.SettingsInvalidFmt, source, err)
	}
	if err := decodeStrict(data); err != nil {
		return fmt.Errorf(messages.SettingsUnrecognizedKeysFmt, source, err)
	}
	return nil
}

// decodeStrict re-decodes into a scratch value so unknown keys surface as errors.
func decodeStrict(data []byte) error {
	var scratch Settings
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(&scratch)
}

func (s *Settings) applyEnv() {
	if v := os.Getenv(EnvHostConfig); v != "" {
		s.Paths.HostConfig = v
	}
	if v := os.Getenv(EnvRegistryURL); v != "" {
		s.Registry.URL = v
	}
	if s.Toolchain.NVMDir == "" {
		s.Toolchain.NVMDir = os.Getenv(EnvNVMDir)
	}
}

func (s *Settings) expandPaths() error {
	for _, p := range []*string{&s.Paths.HostConfig, &s.Paths.Shim, &s.Paths.LogFile, &s.Toolchain.NVMDir} {
		if *p == "" {
			continue
		}
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf(messages.SettingsExpandPathFmt, *p, err)
		}
		*p = expanded
	}
	return nil
}

// Validate checks values that would otherwise fail late inside a shell command.
func (s *Settings) Validate() error {
	if !strings.HasPrefix(s.Toolchain.NodeVersion, "v") {
		return fmt.Errorf(messages.SettingsNodeVersionFmt, s.Toolchain.NodeVersion)
	}
	if _, err := version.Normalize(s.Toolchain.NodeVersion); err != nil {
		return fmt.Errorf(messages.SettingsNodeVersionFmt, s.Toolchain.NodeVersion)
	}
	urls := []struct {
		key   string
		value string
	}{
		{"registry.url", s.Registry.URL},
		{"toolchain.nvm_install_url", s.Toolchain.NVMInstallURL},
		{"toolchain.uv_install_url", s.Toolchain.UVInstallURL},
	}
	for _, u := range urls {
		if !isHTTPURL(u.value) {
			return fmt.Errorf(messages.SettingsURLFmt, u.key, u.value)
		}
	}
	if _, err := s.RegistryTimeout(); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(s.Log.Level); err != nil {
		return fmt.Errorf(messages.SettingsLogLevelFmt, s.Log.Level, err)
	}
	for i, pkg := range s.Preload.Packages {
		if strings.TrimSpace(pkg) == "" {
			return fmt.Errorf(messages.SettingsPreloadEmptyEntryFmt, i)
		}
	}
	return nil
}

// RegistryTimeout parses registry.timeout.
func (s *Settings) RegistryTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(s.Registry.Timeout)
	if err != nil {
		return 0, fmt.Errorf(messages.SettingsTimeoutFmt, s.Registry.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf(messages.SettingsTimeoutPositiveFmt, s.Registry.Timeout)
	}
	return d, nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// WriteDefault writes the commented default template to path. An existing file
// is kept unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf(messages.SettingsExistsFmt, path)
		}
	}
	data, err := templates.Read(templateName)
	if err != nil {
		return fmt.Errorf(messages.TemplatesReadFailedFmt, templateName, err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf(messages.SettingsCreateDirFmt, dir, err)
	}
	if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf(messages.SettingsWriteFmt, path, err)
	}
	return nil
}
