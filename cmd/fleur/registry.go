package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fleuristes/fleur/internal/messages"
)

func newRegistryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.RegistryUse,
		Short: messages.RegistryShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := loadDeps(opts, logConsole)
			if err != nil {
				return err
			}
			defer d.close()

			raw, err := d.service.GetAppRegistry(cmd.Context())
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := json.Indent(&buf, raw, "", "  "); err != nil {
				return fmt.Errorf(messages.CLIRegistryFormatFmt, err)
			}
			buf.WriteByte('\n')
			_, err = buf.WriteTo(cmd.OutOrStdout())
			return err
		},
	}
}
