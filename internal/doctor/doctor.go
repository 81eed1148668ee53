// Package doctor runs read-only health checks over a fleur installation.
package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fleuristes/fleur/internal/hostconfig"
	"github.com/fleuristes/fleur/internal/messages"
	"github.com/fleuristes/fleur/internal/registry"
	"github.com/fleuristes/fleur/internal/settings"
	"github.com/fleuristes/fleur/internal/update"
)

// Status is the outcome of a single check.
type Status string

const (
	StatusOK   Status = "OK"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
)

// Result describes one check.
type Result struct {
	Status         Status
	CheckName      string
	Message        string
	Recommendation string
}

// Toolchain reports which tools are present. Probes may run external commands.
type Toolchain interface {
	UVInstalled(ctx context.Context) bool
	NVMInstalled(ctx context.Context) bool
	NodeInstalled(ctx context.Context) bool
}

// AppLister fetches and validates the registry.
type AppLister interface {
	Apps(ctx context.Context) ([]registry.App, error)
	URL() string
}

// UpdateChecker compares the running version with the latest release.
type UpdateChecker func(ctx context.Context, current string) (update.Result, error)

// CheckSettings loads the settings file. The settings are nil when the check fails.
func CheckSettings(path string) (Result, *settings.Settings) {
	result := Result{CheckName: messages.DoctorCheckNameSettings}
	resolved, err := settings.ResolvePath(path)
	if err == nil {
		var s *settings.Settings
		if s, err = settings.Load(resolved); err == nil {
			result.Status = StatusOK
			if _, statErr := os.Stat(resolved); statErr != nil {
				result.Message = fmt.Sprintf(messages.DoctorSettingsDefaultsFmt, resolved)
			} else {
				result.Message = fmt.Sprintf(messages.DoctorSettingsOKFmt, resolved)
			}
			return result, s
		}
	}
	result.Status = StatusFail
	result.Message = fmt.Sprintf(messages.DoctorSettingsFailedFmt, err)
	result.Recommendation = messages.DoctorSettingsRecommend
	return result, nil
}

// CheckHostConfig parses the Claude desktop config without creating it.
func CheckHostConfig(path string) Result {
	result := Result{CheckName: messages.DoctorCheckNameHostConfig}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		result.Status = StatusWarn
		result.Message = fmt.Sprintf(messages.DoctorHostConfigMissingFmt, path)
		return result
	}
	var doc hostconfig.Document
	if err == nil {
		doc, err = hostconfig.Decode(data)
	}
	if err == nil {
		err = doc.Validate()
	}
	if err != nil {
		result.Status = StatusFail
		result.Message = fmt.Sprintf(messages.DoctorHostConfigFailedFmt, err)
		result.Recommendation = messages.DoctorHostConfigRecommend
		return result
	}
	result.Status = StatusOK
	result.Message = fmt.Sprintf(messages.DoctorHostConfigOKFmt, path, len(doc.ServerKeys()))
	return result
}

// CheckToolchain probes uv, nvm, and Node. Missing tools are warnings because
// `fleur setup` or the first install brings them up.
func CheckToolchain(ctx context.Context, tc Toolchain, nodeVersion string) []Result {
	tools := []struct {
		name      string
		installed func(context.Context) bool
	}{
		{"uv", tc.UVInstalled},
		{"nvm", tc.NVMInstalled},
		{"Node " + nodeVersion, tc.NodeInstalled},
	}
	results := make([]Result, 0, len(tools))
	for _, tool := range tools {
		result := Result{CheckName: messages.DoctorCheckNameToolchain}
		if tool.installed(ctx) {
			result.Status = StatusOK
			result.Message = fmt.Sprintf(messages.DoctorToolReadyFmt, tool.name)
		} else {
			result.Status = StatusWarn
			result.Message = fmt.Sprintf(messages.DoctorToolMissingFmt, tool.name)
			result.Recommendation = messages.DoctorToolMissingRecommend
		}
		results = append(results, result)
	}
	return results
}

// CheckShim verifies the npx-fleur shim exists and is executable.
func CheckShim(path string) Result {
	result := Result{CheckName: messages.DoctorCheckNameShim}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Mode().Perm()&0o111 == 0 {
		result.Status = StatusWarn
		result.Message = fmt.Sprintf(messages.DoctorShimMissingFmt, path)
		result.Recommendation = messages.DoctorShimRecommend
		return result
	}
	result.Status = StatusOK
	result.Message = fmt.Sprintf(messages.DoctorShimOKFmt, path)
	return result
}

// CheckRegistry fetches and validates the registry.
func CheckRegistry(ctx context.Context, reg AppLister) Result {
	result := Result{CheckName: messages.DoctorCheckNameRegistry}
	apps, err := reg.Apps(ctx)
	if err != nil {
		result.Status = StatusFail
		result.Message = fmt.Sprintf(messages.DoctorRegistryFailedFmt, err)
		result.Recommendation = messages.DoctorRegistryRecommend
		return result
	}
	result.Status = StatusOK
	result.Message = fmt.Sprintf(messages.DoctorRegistryOKFmt, len(apps), reg.URL())
	return result
}

// CheckUpdate compares current with the latest release. Network problems are
// warnings, never failures.
func CheckUpdate(ctx context.Context, current string, check UpdateChecker) Result {
	result := Result{CheckName: messages.DoctorCheckNameUpdate, Status: StatusWarn}
	if strings.TrimSpace(os.Getenv(update.EnvNoUpdateCheck)) != "" {
		result.Message = fmt.Sprintf(messages.DoctorUpdateSkippedFmt, update.EnvNoUpdateCheck)
		return result
	}
	latest, err := check(ctx, current)
	switch {
	case err != nil && update.IsRateLimitError(err):
		result.Message = messages.DoctorUpdateRateLimited
	case err != nil:
		result.Message = fmt.Sprintf(messages.DoctorUpdateFailedFmt, err)
		result.Recommendation = messages.DoctorUpdateFailedRecommend
	case latest.CurrentIsDev:
		result.Message = fmt.Sprintf(messages.DoctorUpdateDevBuildFmt, latest.Latest)
	case latest.Outdated:
		result.Message = fmt.Sprintf(messages.DoctorUpdateAvailableFmt, latest.Latest, latest.Current)
		result.Recommendation = fmt.Sprintf(messages.DoctorUpdateAvailableRecommendFmt, update.ReleasesURL)
	default:
		result.Status = StatusOK
		result.Message = fmt.Sprintf(messages.DoctorUpToDateFmt, latest.Current)
	}
	return result
}

// Failed reports whether any result failed.
func Failed(results []Result) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return true
		}
	}
	return false
}
