package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fleuristes/fleur/internal/messages"
	"github.com/fleuristes/fleur/internal/updatewarn"
)

func newSetupCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.SetupUse,
		Short: messages.SetupShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := loadDeps(opts, logConsole)
			if err != nil {
				return err
			}
			defer d.close()

			updatewarn.WarnIfOutdated(cmd.Context(), Version, checkForUpdate, cmd.ErrOrStderr())
			paths, err := d.service.SetupEnvironment(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, messages.CLISetupNPXFmt, paths.NPX)
			_, _ = fmt.Fprintf(out, messages.CLISetupUVXFmt, paths.UVX)
			_, _ = fmt.Fprintln(out, messages.CLISetupDone)
			return nil
		},
	}
}
