package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fleuristes/fleur/internal/messages"
	"github.com/fleuristes/fleur/internal/settings"
)

func newSettingsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   messages.SettingsUse,
		Short: messages.SettingsShort,
	}
	cmd.AddCommand(newSettingsInitCmd(opts))
	return cmd
}

func newSettingsInitCmd(opts *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   messages.SettingsInitUse,
		Short: messages.SettingsInitShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := settings.ResolvePath(opts.settingsPath)
			if err != nil {
				return err
			}
			if err := settings.WriteDefault(path, force); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.CLISettingsWrittenFmt, path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, messages.FlagForceUsage)
	return cmd
}
