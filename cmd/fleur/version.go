package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fleuristes/fleur/internal/messages"
	"github.com/fleuristes/fleur/internal/update"
)

var checkForUpdate = func(ctx context.Context, current string) (update.Result, error) {
	return update.NewChecker(update.Options{}).Check(ctx, current)
}

func newVersionCmd() *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   messages.VersionUse,
		Short: messages.VersionShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, versionString())
			if !check {
				return nil
			}

			result, err := checkForUpdate(cmd.Context(), Version)
			switch {
			case err != nil && update.IsRateLimitError(err):
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), color.YellowString(messages.UpdateRateLimitedMsg))
			case err != nil:
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), color.YellowString(messages.UpdateCheckFailedFmt, err))
			case result.CurrentIsDev:
				_, _ = fmt.Fprintf(out, messages.UpdateDevBuildFmt, result.Latest)
			case result.Outdated:
				_, _ = fmt.Fprint(out, color.YellowString(messages.UpdateAvailableFmt, result.Latest, result.Current, update.ReleasesURL))
			default:
				_, _ = fmt.Fprintf(out, messages.UpdateUpToDateFmt, result.Current)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, messages.FlagCheckUsage)
	return cmd
}
