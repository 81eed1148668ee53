package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fleuristes/fleur/internal/doctor"
	"github.com/fleuristes/fleur/internal/messages"
)

func newDoctorCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.DoctorUse,
		Short: messages.DoctorShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			ctx := cmd.Context()

			settingsResult, s := doctor.CheckSettings(opts.settingsPath)
			results := []doctor.Result{settingsResult}
			if s != nil {
				d, err := loadDeps(opts, logConsole)
				if err != nil {
					return err
				}
				defer d.close()

				results = append(results, doctor.CheckHostConfig(d.hostPath))
				results = append(results, doctor.CheckToolchain(ctx, d.toolchain, s.Toolchain.NodeVersion)...)
				results = append(results,
					doctor.CheckShim(d.shimPath),
					doctor.CheckRegistry(ctx, d.registry),
					doctor.CheckUpdate(ctx, Version, checkForUpdate),
				)
			}

			for _, r := range results {
				printResult(out, r)
			}
			if doctor.Failed(results) {
				_, _ = fmt.Fprintln(out, color.RedString(messages.DoctorFailureSummary))
				return &SilentExitError{Code: 1}
			}
			_, _ = fmt.Fprintln(out, color.GreenString(messages.DoctorSuccessSummary))
			return nil
		},
	}
}

func printResult(out io.Writer, r doctor.Result) {
	var status string
	switch r.Status {
	case doctor.StatusOK:
		status = color.GreenString(messages.DoctorStatusOKLabel)
	case doctor.StatusWarn:
		status = color.YellowString(messages.DoctorStatusWarnLabel)
	case doctor.StatusFail:
		status = color.RedString(messages.DoctorStatusFailLabel)
	}

	_, _ = fmt.Fprintf(out, messages.DoctorResultLineFmt, status, r.CheckName, r.Message)
	if r.Recommendation != "" {
		printRecommendation(out, r.Recommendation)
	}
}

// printRecommendation renders a multi-line recommendation with consistent indentation.
func printRecommendation(out io.Writer, recommendation string) {
	for i, line := range strings.Split(recommendation, "\n") {
		prefix := messages.DoctorRecommendationIndent
		if i == 0 {
			prefix = messages.DoctorRecommendationPrefix
		}
		_, _ = fmt.Fprintf(out, "%s%s\n", prefix, line)
	}
}
