package main

import (
	"github.com/spf13/cobra"

	"github.com/fleuristes/fleur/internal/messages"
)

type rootOptions struct {
	settingsPath string
	verbose      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.settingsPath, "settings", "", messages.FlagSettingsUsage)
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, messages.FlagVerboseUsage)

	cmd.AddCommand(
		newInstallCmd(opts),
		newUninstallCmd(opts),
		newStatusCmd(opts),
		newEnvCmd(opts),
		newRegistryCmd(opts),
		newSetupCmd(opts),
		newServeCmd(opts),
		newSettingsCmd(opts),
		newDoctorCmd(opts),
		newVersionCmd(),
	)
	return cmd
}
