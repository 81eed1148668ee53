package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fleuristes/fleur/internal/app"
	"github.com/fleuristes/fleur/internal/messages"
)

func newStatusCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   messages.StatusUse,
		Short: messages.StatusShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeps(opts, logConsole)
			if err != nil {
				return err
			}
			defer d.close()

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				installed, err := d.service.IsInstalled(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(out, map[string]bool{"installed": installed})
				}
				if installed {
					_, _ = fmt.Fprintf(out, messages.CLIStatusInstalledFmt, args[0])
				} else {
					_, _ = fmt.Fprintf(out, messages.CLIStatusNotInstalledFmt, args[0])
				}
				return nil
			}

			statuses, err := d.service.GetAppStatuses(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(out, statuses)
			}
			printStatuses(out, statuses)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, messages.FlagJSONUsage)
	return cmd
}

// printStatuses renders one line per app, sorted by name.
func printStatuses(out io.Writer, statuses app.Statuses) {
	names := make([]string, 0, len(statuses.Installed))
	for name := range statuses.Installed {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		var state string
		switch {
		case statuses.Installed[name]:
			state = color.GreenString(messages.CLIStatusInstalled)
		case statuses.Configured[name]:
			state = messages.CLIStatusAvailable
		default:
			state = color.YellowString(messages.CLIStatusUnconfigured)
		}
		_, _ = fmt.Fprintf(out, messages.CLIStatusLineFmt, name, state)
	}
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
