package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fleuristes/fleur/internal/app"
	"github.com/fleuristes/fleur/internal/messages"
	"github.com/fleuristes/fleur/internal/prompt"
	"github.com/fleuristes/fleur/internal/terminal"
)

var isInteractive = terminal.IsInteractive

func newInstallCmd(opts *rootOptions) *cobra.Command {
	var (
		env    envInput
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   messages.InstallUse,
		Short: messages.InstallShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeps(opts, logConsole)
			if err != nil {
				return err
			}
			defer d.close()

			ctx := cmd.Context()
			name, err := appArg(ctx, d.service, args)
			if err != nil {
				return err
			}
			var values map[string]string
			if env.provided() {
				if values, err = env.collect(name); err != nil {
					return err
				}
			}

			var msg string
			if dryRun {
				msg, err = d.service.PreviewInstall(ctx, name, values)
			} else {
				msg, err = d.service.Install(ctx, name, values)
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&env.assignments, "env", "e", nil, messages.FlagEnvUsage)
	cmd.Flags().StringVar(&env.file, "env-file", "", messages.FlagEnvFileUsage)
	cmd.Flags().StringArrayVar(&env.prompts, "prompt", nil, messages.FlagPromptUsage)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, messages.FlagDryRunUsage)
	return cmd
}

// appArg returns the app named on the command line, or asks for one when
// running in a terminal.
func appArg(ctx context.Context, svc *app.Service, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if !isInteractive() {
		return "", errors.New(messages.CLIAppRequired)
	}
	apps, err := svc.ResolveApps(ctx)
	if err != nil {
		return "", err
	}
	names := make([]string, 0, len(apps))
	for _, a := range apps {
		names = append(names, a.Name)
	}
	return prompt.ChooseApp(newPromptUI(), names)
}

func newUninstallCmd(opts *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   messages.UninstallUse,
		Short: messages.UninstallShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if !yes && isInteractive() {
				confirmed := false
				if err := newPromptUI().Confirm(fmt.Sprintf(messages.CLIUninstallConfirmFmt, name), &confirmed); err != nil {
					return err
				}
				if !confirmed {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), messages.CLIUninstallCancelled)
					return nil
				}
			}

			d, err := loadDeps(opts, logConsole)
			if err != nil {
				return err
			}
			defer d.close()

			msg, err := d.service.Uninstall(cmd.Context(), name)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, messages.FlagYesUsage)
	return cmd
}
