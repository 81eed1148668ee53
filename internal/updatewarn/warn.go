package updatewarn

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/fleuristes/fleur/internal/messages"
	"github.com/fleuristes/fleur/internal/update"
)

// CheckFunc reports how current compares to the latest release.
type CheckFunc func(ctx context.Context, current string) (update.Result, error)

// WarnIfOutdated emits update warnings to stderr when a newer release is available.
// It is a best-effort warning and never returns an error.
func WarnIfOutdated(ctx context.Context, currentVersion string, check CheckFunc, stderr io.Writer) {
	if strings.TrimSpace(os.Getenv(update.EnvNoUpdateCheck)) != "" || check == nil {
		return
	}
	if stderr == nil {
		stderr = io.Discard
	}

	warnColor := color.New(color.FgYellow)
	result, err := check(ctx, currentVersion)
	if err != nil {
		// Rate limits are routine for unauthenticated clients.
		if !update.IsRateLimitError(err) {
			_, _ = warnColor.Fprintf(stderr, messages.UpdateWarnCheckFailedFmt, err)
		}
		return
	}
	if result.CurrentIsDev {
		_, _ = warnColor.Fprintf(stderr, messages.UpdateWarnDevBuildFmt, result.Latest)
		return
	}
	if result.Outdated {
		_, _ = warnColor.Fprintf(stderr, messages.UpdateWarnAvailableFmt, result.Latest, result.Current, update.ReleasesURL)
	}
}
