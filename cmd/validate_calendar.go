package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
)

var errCalendarHasErrors = errors.New("calendar file has errors")

func newValidateCalendarCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate-calendar [path]",
		Short: "Check the academic calendar file and print the report",
		Long: "Check the academic calendar file and print every error and warning.\n" +
			"Exits with a non-zero status if the file has errors. The path defaults to calendar.path from the config.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			defer log.Close()

			if len(args) == 1 {
				cfg.Calendar.Path = args[0]
			}

			calendarSvc, err := newCalendarService(cfg, nil, log)
			if err != nil {
				return err
			}
			report, err := calendarSvc.Inspect(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(report.Issues))
			for _, issue := range report.Issues {
				severity := warnStyle.Render(string(issue.Severity))
				if issue.Severity == domain.SeverityError {
					severity = errorStyle.Render(string(issue.Severity))
				}
				rows = append(rows, []string{severity, issue.Path, issue.Message})
			}

			out := cmd.OutOrStdout()
			if table := renderTable([]string{"Severity", "Path", "Message"}, rows); table != "" {
				fmt.Fprintln(out, table)
			}

			errorsCount := report.Count(domain.SeverityError)
			warnings := report.Count(domain.SeverityWarning)
			if report.HasErrors() {
				fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("%s: %d error(s), %d warning(s)", cfg.Calendar.Path, errorsCount, warnings)))
				return fmt.Errorf("%w: %s", errCalendarHasErrors, cfg.Calendar.Path)
			}
			fmt.Fprintln(out, okStyle.Render(fmt.Sprintf("%s: OK, %d warning(s)", cfg.Calendar.Path, warnings)))
			return nil
		},
	}
}
