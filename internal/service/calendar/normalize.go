package calendar

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
	"github.com/m04kA/SMC-EventScheduler/internal/infra/calendarfile"
	"github.com/m04kA/SMC-EventScheduler/pkg/dateparse"
	"github.com/m04kA/SMC-EventScheduler/pkg/types"
)

// Normalize переводит файл календаря в нормализованную модель
// Любая строка, которую не удалось разобрать, делает календарь некорректным
func Normalize(raw *calendarfile.RawCalendar, opts Options) (*domain.Calendar, error) {
	opts = opts.withDefaults()

	year, err := parseAcademicYear(raw.AcademicYear, opts.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCalendar, err)
	}
	parseOpts := opts.parseOptions(year)

	cal := &domain.Calendar{
		AcademicYear: year,
		Constraints: domain.ConstraintSet{
			Hard: append([]string(nil), raw.SchedulingConstraints.HardConstraints...),
			Soft: append([]string(nil), raw.SchedulingConstraints.SoftConstraints...),
		},
		VenueBlockages: make(map[string][]domain.BlockageWindow, len(raw.SchedulingConstraints.StandardVenueBlockages)),
		Unavailable:    make(map[domain.Category][]domain.DateEntry, len(raw.UnavailableDates)),
		Location:       opts.Location,
	}

	for name, entries := range raw.UnavailableDates {
		category := domain.Category(name)
		normalized := make([]domain.DateEntry, 0, len(entries))
		for i, entry := range entries {
			dates, err := dateparse.Parse(entry.Date, parseOpts)
			if err != nil {
				return nil, fmt.Errorf("%w: unavailable_dates.%s[%d].date: %v", ErrInvalidCalendar, name, i, err)
			}
			normalized = append(normalized, domain.DateEntry{
				Category: category,
				Raw:      entry.Date,
				Event:    entry.Event,
				Dates:    dates,
			})
		}
		cal.Unavailable[category] = normalized
	}

	for i, period := range raw.HecticPeriods {
		dates, err := dateparse.Parse(period.Date, parseOpts)
		if err != nil {
			return nil, fmt.Errorf("%w: hectic_periods[%d].date: %v", ErrInvalidCalendar, i, err)
		}
		cal.HecticPeriods = append(cal.HecticPeriods, domain.HecticPeriod{
			Name:              period.Name,
			Raw:               period.Date,
			ReferenceCategory: domain.Category(period.ReferenceCategory),
			Dates:             dates,
		})
	}

	for key, windows := range raw.SchedulingConstraints.StandardVenueBlockages {
		parsed := make([]domain.BlockageWindow, 0, len(windows))
		for i, w := range windows {
			window, err := parseBlockageWindow(w)
			if err != nil {
				return nil, fmt.Errorf("%w: scheduling_constraints.standard_venue_blockages.%s[%d]: %v",
					ErrInvalidCalendar, key, i, err)
			}
			parsed = append(parsed, window)
		}
		if len(parsed) > 0 {
			cal.VenueBlockages[key] = parsed
		}
	}

	return cal, nil
}

func parseAcademicYear(raw calendarfile.RawAcademicYear, loc *time.Location) (domain.AcademicYear, error) {
	start, err := time.ParseInLocation(domain.DateFormat, raw.StartDate, loc)
	if err != nil {
		return domain.AcademicYear{}, fmt.Errorf("academic_year.start_date: %v", err)
	}
	end, err := time.ParseInLocation(domain.DateFormat, raw.EndDate, loc)
	if err != nil {
		return domain.AcademicYear{}, fmt.Errorf("academic_year.end_date: %v", err)
	}
	if !start.Before(end) {
		return domain.AcademicYear{}, fmt.Errorf("academic_year: start_date %s must precede end_date %s", raw.StartDate, raw.EndDate)
	}
	return domain.AcademicYear{StartDate: start, EndDate: end}, nil
}

func parseBlockageWindow(raw calendarfile.RawBlockageWindow) (domain.BlockageWindow, error) {
	start, err := types.NewTimeStringFromString(raw.StartTime)
	if err != nil {
		return domain.BlockageWindow{}, fmt.Errorf("start_time: %v", err)
	}
	end, err := types.NewTimeStringFromString(raw.EndTime)
	if err != nil {
		return domain.BlockageWindow{}, fmt.Errorf("end_time: %v", err)
	}
	if !start.IsBefore(end) {
		return domain.BlockageWindow{}, fmt.Errorf("start_time %s must precede end_time %s", start, end)
	}

	window := domain.BlockageWindow{Start: start, End: end}
	if strings.TrimSpace(raw.Day) != "" {
		day, err := parseWeekday(raw.Day)
		if err != nil {
			return domain.BlockageWindow{}, err
		}
		window.Day = &day
	}
	return window, nil
}

// parseWeekday распознает английское название дня недели: полное или из 3 букв
func parseWeekday(name string) (time.Weekday, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	if len(lower) >= 3 {
		for d := time.Sunday; d <= time.Saturday; d++ {
			if strings.HasPrefix(strings.ToLower(d.String()), lower) {
				return d, nil
			}
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", name)
}

// categoryOrder возвращает категории файла: сначала известные в каноническом порядке, затем остальные по алфавиту
func categoryOrder(categories map[string][]calendarfile.RawDateEntry) []string {
	order := make([]string, 0, len(categories))
	for _, known := range domain.KnownCategories {
		if _, ok := categories[string(known)]; ok {
			order = append(order, string(known))
		}
	}

	var unknown []string
	for name := range categories {
		if !domain.Category(name).IsKnown() {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)

	return append(order, unknown...)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
