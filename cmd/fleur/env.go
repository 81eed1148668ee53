package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fleuristes/fleur/internal/envfile"
	"github.com/fleuristes/fleur/internal/fsutil"
	"github.com/fleuristes/fleur/internal/messages"
)

const (
	formatDotenv = "dotenv"
	formatJSON   = "json"
)

func newEnvCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   messages.EnvUse,
		Short: messages.EnvShort,
	}
	cmd.AddCommand(newEnvGetCmd(opts), newEnvSetCmd(opts))
	return cmd
}

func newEnvGetCmd(opts *rootOptions) *cobra.Command {
	var format, write string
	cmd := &cobra.Command{
		Use:   messages.EnvGetUse,
		Short: messages.EnvGetShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatDotenv && format != formatJSON {
				return fmt.Errorf(messages.CLIEnvFormatFmt, format)
			}
			d, err := loadDeps(opts, logConsole)
			if err != nil {
				return err
			}
			defer d.close()

			env, err := d.service.GetAppEnv(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if write != "" {
				if err := mergeEnvFile(write, env); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.CLIEnvWrittenFmt, len(env), write)
				return nil
			}
			if format == formatJSON {
				if env == nil {
					env = map[string]string{}
				}
				return writeJSON(cmd.OutOrStdout(), env)
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), envfile.Format(env))
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", formatDotenv, messages.FlagFormatUsage)
	cmd.Flags().StringVar(&write, "write", "", messages.FlagWriteUsage)
	return cmd
}

// mergeEnvFile updates path in place, keeping unrelated lines and comments.
func mergeEnvFile(path string, env map[string]string) error {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf(messages.CLIEnvWriteFmt, path, err)
	}
	merged := envfile.Merge(string(data), env)
	if err := fsutil.WriteFileAtomic(path, []byte(merged), 0o600); err != nil {
		return fmt.Errorf(messages.CLIEnvWriteFmt, path, err)
	}
	return nil
}

func newEnvSetCmd(opts *rootOptions) *cobra.Command {
	var env envInput
	cmd := &cobra.Command{
		Use:   messages.EnvSetUse,
		Short: messages.EnvSetShort,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			env.assignments = append(env.assignments, args[1:]...)
			if !env.provided() {
				return errors.New(messages.CLIEnvValuesRequired)
			}
			values, err := env.collect(name)
			if err != nil {
				return err
			}

			d, err := loadDeps(opts, logConsole)
			if err != nil {
				return err
			}
			defer d.close()

			msg, err := d.service.SaveAppEnv(cmd.Context(), name, values)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
	cmd.Flags().StringVar(&env.file, "file", "", messages.FlagEnvFileUsage)
	cmd.Flags().StringArrayVar(&env.prompts, "prompt", nil, messages.FlagPromptUsage)
	return cmd
}
