package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
	"github.com/m04kA/SMC-EventScheduler/internal/infra/calendarfile"
	"github.com/m04kA/SMC-EventScheduler/pkg/dateparse"
)

// BuildReport проверяет файл календаря на уровне схемы
// Ошибки делают календарь непригодным, предупреждения только сообщаются
func BuildReport(raw *calendarfile.RawCalendar, opts Options) *domain.CalendarReport {
	opts = opts.withDefaults()
	report := &domain.CalendarReport{}

	// 1. Учебный год
	year, yearOK := checkAcademicYear(report, raw.AcademicYear, opts.Location)
	var parseOpts dateparse.Options
	if yearOK {
		parseOpts = opts.parseOptions(year)
	}

	// 2. Недоступные даты
	for _, name := range categoryOrder(raw.UnavailableDates) {
		if !domain.Category(name).IsKnown() {
			report.Add(domain.SeverityWarning, "unavailable_dates."+name, "unknown category")
		}

		for i, entry := range raw.UnavailableDates[name] {
			path := fmt.Sprintf("unavailable_dates.%s[%d]", name, i)

			if strings.TrimSpace(entry.Event) == "" {
				report.Add(domain.SeverityError, path+".event", "event is empty")
			}
			if strings.TrimSpace(entry.Date) == "" {
				report.Add(domain.SeverityError, path+".date", "date is empty")
				continue
			}
			if !yearOK {
				continue
			}

			dates, err := dateparse.Parse(entry.Date, parseOpts)
			if err != nil {
				report.Add(domain.SeverityError, path+".date", err.Error())
				continue
			}
			checkWithinYear(report, path+".date", entry.Date, dates, year)
		}
	}

	// 3. Периоды повышенной нагрузки
	for i, period := range raw.HecticPeriods {
		path := fmt.Sprintf("hectic_periods[%d]", i)

		if strings.TrimSpace(period.Name) == "" {
			report.Add(domain.SeverityWarning, path+".name", "name is empty")
		}

		if _, ok := raw.UnavailableDates[period.ReferenceCategory]; !ok {
			report.Add(domain.SeverityError, path+".reference_category",
				fmt.Sprintf("category %q does not exist under unavailable_dates", period.ReferenceCategory))
		}

		if strings.TrimSpace(period.Date) == "" {
			report.Add(domain.SeverityError, path+".date", "date is empty")
			continue
		}
		if !yearOK {
			continue
		}
		dates, err := dateparse.Parse(period.Date, parseOpts)
		if err != nil {
			report.Add(domain.SeverityError, path+".date", err.Error())
			continue
		}
		checkWithinYear(report, path+".date", period.Date, dates, year)
	}

	// 4. Блокировки площадок
	blockages := raw.SchedulingConstraints.StandardVenueBlockages
	for _, key := range sortedKeys(blockages) {
		keyPath := "scheduling_constraints.standard_venue_blockages." + key

		if !strings.HasSuffix(key, domain.BlockageSuffixWeekday) && !strings.HasSuffix(key, domain.BlockageSuffixSaturday) {
			report.Add(domain.SeverityWarning, keyPath,
				fmt.Sprintf("key does not end with %q or %q and is never applied", domain.BlockageSuffixWeekday, domain.BlockageSuffixSaturday))
		}

		var (
			parsed []domain.BlockageWindow
			index  []int
		)
		for i, w := range blockages[key] {
			window, err := parseBlockageWindow(w)
			if err != nil {
				report.Add(domain.SeverityError, fmt.Sprintf("%s[%d]", keyPath, i), err.Error())
				continue
			}
			parsed = append(parsed, window)
			index = append(index, i)
		}

		for a := 0; a < len(parsed); a++ {
			for b := a + 1; b < len(parsed); b++ {
				if windowsOverlap(parsed[a], parsed[b]) {
					report.Add(domain.SeverityWarning, fmt.Sprintf("%s[%d]", keyPath, index[b]),
						fmt.Sprintf("window %s overlaps window [%d] %s", parsed[b].Label(), index[a], parsed[a].Label()))
				}
			}
		}
	}

	return report
}

func checkAcademicYear(report *domain.CalendarReport, raw calendarfile.RawAcademicYear, loc *time.Location) (domain.AcademicYear, bool) {
	ok := true

	start, err := time.ParseInLocation(domain.DateFormat, raw.StartDate, loc)
	if err != nil {
		report.Add(domain.SeverityError, "academic_year.start_date", fmt.Sprintf("expected YYYY-MM-DD, got %q", raw.StartDate))
		ok = false
	}
	end, err := time.ParseInLocation(domain.DateFormat, raw.EndDate, loc)
	if err != nil {
		report.Add(domain.SeverityError, "academic_year.end_date", fmt.Sprintf("expected YYYY-MM-DD, got %q", raw.EndDate))
		ok = false
	}
	if ok && !start.Before(end) {
		report.Add(domain.SeverityError, "academic_year", "start_date must precede end_date")
		ok = false
	}

	return domain.AcademicYear{StartDate: start, EndDate: end}, ok
}

// checkWithinYear предупреждает о датах вне учебного года
// Такие записи допустимы (например "July 15 onwards" или запись до начала года), поэтому это предупреждение
func checkWithinYear(report *domain.CalendarReport, path, raw string, dates []time.Time, year domain.AcademicYear) {
	outside := 0
	for _, d := range dates {
		if !year.Contains(d) {
			outside++
		}
	}
	if outside > 0 {
		report.Add(domain.SeverityWarning, path,
			fmt.Sprintf("%d of %d dates of %q fall outside the academic year", outside, len(dates), raw))
	}
}

// windowsOverlap true, если окна действуют в общий день недели и пересекаются по времени
func windowsOverlap(a, b domain.BlockageWindow) bool {
	if a.Day != nil && b.Day != nil && *a.Day != *b.Day {
		return false
	}
	return a.Start.IsBefore(b.End) && a.End.IsAfter(b.Start)
}
