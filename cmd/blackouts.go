package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
	"github.com/m04kA/SMC-EventScheduler/internal/infra/csvio"
	"github.com/m04kA/SMC-EventScheduler/internal/infra/icsexport"
)

// Форматы вывода блокировок
const (
	formatTable = "table"
	formatCSV   = "csv"
	formatICS   = "ics"
)

func newBlackoutsCmd(configPath *string) *cobra.Command {
	var (
		fromStr string
		toStr   string
		format  string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "blackouts",
		Short: "List full-day blackouts of the academic calendar",
		Long: "List full-day blackouts in [from, to). The range defaults to the whole academic year.\n" +
			"Dates are calendar days in the calendar time zone.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch format {
			case formatTable, formatCSV, formatICS:
			default:
				return fmt.Errorf("unknown format %q, expected %s, %s or %s", format, formatTable, formatCSV, formatICS)
			}

			cfg, log, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			defer log.Close()

			calendarSvc, err := newCalendarService(cfg, nil, log)
			if err != nil {
				return err
			}
			if err := calendarSvc.Reload(cmd.Context()); err != nil {
				return err
			}
			cal, err := calendarSvc.Current()
			if err != nil {
				return err
			}

			from, to, err := blackoutsRange(cal, fromStr, toStr)
			if err != nil {
				return err
			}
			slots, err := calendarSvc.Blackouts(from, to)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			return writeBlackouts(out, slots, cal, format)
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "first day, YYYY-MM-DD (default: academic year start)")
	cmd.Flags().StringVar(&toStr, "to", "", "day after the last day, YYYY-MM-DD (default: day after academic year end)")
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format: table, csv or ics")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func blackoutsRange(cal *domain.Calendar, fromStr, toStr string) (time.Time, time.Time, error) {
	from := domain.DateOnly(cal.AcademicYear.StartDate.In(cal.Location))
	to := domain.DateOnly(cal.AcademicYear.EndDate.In(cal.Location)).AddDate(0, 0, 1)

	var err error
	if fromStr != "" {
		if from, err = time.ParseInLocation(domain.DateFormat, fromStr, cal.Location); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("--from: %w", err)
		}
	}
	if toStr != "" {
		if to, err = time.ParseInLocation(domain.DateFormat, toStr, cal.Location); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("--to: %w", err)
		}
	}
	return from, to, nil
}

func writeBlackouts(w io.Writer, slots []domain.BlackoutSlot, cal *domain.Calendar, format string) error {
	switch format {
	case formatCSV:
		return csvio.WriteBlackouts(w, slots, cal.Location)

	case formatICS:
		return icsexport.Write(w, slots, icsexport.Options{
			CalendarName: fmt.Sprintf("SMC Blackouts %d-%d", cal.AcademicYear.StartYear(), cal.AcademicYear.EndYear()),
			Location:     cal.Location,
			Now:          time.Now(),
		})
	}

	rows := make([][]string, 0, len(slots))
	for _, row := range csvio.BlackoutRows(slots, cal.Location) {
		rows = append(rows, []string{row.Date, row.Kind, row.Category, row.Reason})
	}
	if table := renderTable([]string{"Date", "Kind", "Category", "Reason"}, rows); table != "" {
		if _, err := fmt.Fprintln(w, table); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d blackout day(s)\n", len(slots))
	return err
}
