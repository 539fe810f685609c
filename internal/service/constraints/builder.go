package constraints

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
	"github.com/m04kA/SMC-EventScheduler/internal/service/calendar"
)

// Build строит ограничения для недели [weekStart, weekEnd)
// Границы интерпретируются как календарные дни в часовом поясе календаря
func Build(cal *domain.Calendar, weekStart, weekEnd time.Time, opts Options) (domain.WeekConstraints, error) {
	loc := cal.Location
	if loc == nil {
		loc = time.UTC
	}

	start := domain.DateOnly(weekStart.In(loc))
	end := domain.DateOnly(weekEnd.In(loc))
	if !start.Before(end) {
		return domain.WeekConstraints{}, fmt.Errorf("%w: start %s must precede end %s",
			ErrInvalidWeek, start.Format(domain.DateFormat), end.Format(domain.DateFormat))
	}
	if end.After(start.AddDate(0, 0, domain.MaxWeekDays)) {
		return domain.WeekConstraints{}, fmt.Errorf("%w: range %s - %s is longer than %d days",
			ErrInvalidWeek, start.Format(domain.DateFormat), end.Format(domain.DateFormat), domain.MaxWeekDays)
	}

	result := domain.WeekConstraints{
		WeekStart:      start,
		WeekEnd:        end,
		Location:       loc,
		VenueBlockages: map[string][]domain.BlockageWindow{},
		DayStart:       opts.CurfewEnd,
		DayEnd:         opts.CurfewStart,
	}

	// 1. Неделя пересекается с периодом повышенной нагрузки
	for _, period := range cal.HecticPeriods {
		first, last, ok := period.Span()
		if !ok {
			continue
		}
		if !start.After(last) && end.After(first) {
			result.IsHecticWeek = true
			result.HecticPeriod = period.Name
			break
		}
	}

	// 2. Праздники, каникулы и экзамены блокируют день целиком
	slots := calendar.FullDayBlackouts(cal, opts.BlockageCategories, start, end)
	blocked := make(map[string]struct{}, len(slots))
	for _, s := range slots {
		blocked[s.Start.In(loc).Format(domain.DateFormat)] = struct{}{}
	}

	// 3. Дни перед началом каждого экзаменационного периода
	for _, examStart := range examStarts(cal, loc) {
		for d := examStart.AddDate(0, 0, -opts.PreExamDays); d.Before(examStart); d = d.AddDate(0, 0, 1) {
			if d.Before(start) || !d.Before(end) {
				continue
			}
			key := d.Format(domain.DateFormat)
			if _, ok := blocked[key]; ok {
				continue
			}
			reason := fmt.Sprintf("Pre-Exam Week Blockage (Exams starting %s)", examStart.Format("Jan 02"))
			slots = append(slots, fullDay(d, reason, domain.BlackoutPreExam))
			blocked[key] = struct{}{}
		}
	}

	// 4. Воскресенья и 5. ночной запрет
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Sunday {
			if _, ok := blocked[d.Format(domain.DateFormat)]; !ok {
				slots = append(slots, fullDay(d, "Sunday Blockage", domain.BlackoutSunday))
			}
		}

		curfewStart := opts.CurfewStart.On(d, loc)
		curfewEnd := opts.CurfewEnd.On(d, loc)
		if !curfewEnd.After(curfewStart) {
			curfewEnd = opts.CurfewEnd.On(d.AddDate(0, 0, 1), loc)
		}
		slots = append(slots, domain.BlackoutSlot{
			Start:  curfewStart.UTC(),
			End:    curfewEnd.UTC(),
			Reason: fmt.Sprintf("Night Curfew (%s-%s)", opts.CurfewStart, opts.CurfewEnd),
			Kind:   domain.BlackoutCurfew,
		})
	}

	// 6. Стандартные блокировки площадок действуют только вне периодов повышенной нагрузки
	if !result.IsHecticWeek {
		for key, windows := range cal.VenueBlockages {
			result.VenueBlockages[key] = windows
		}
	}

	sort.SliceStable(slots, func(i, j int) bool { return slots[i].Start.Before(slots[j].Start) })
	result.GeneralSlots = slots

	return result, nil
}

// examStarts первые дни экзаменационных периодов, без повторов, по возрастанию
func examStarts(cal *domain.Calendar, loc *time.Location) []time.Time {
	seen := make(map[string]struct{})
	var starts []time.Time
	for _, entry := range cal.Entries(domain.CategoryExaminationPeriods) {
		first, ok := entry.First()
		if !ok {
			continue
		}
		first = domain.DateOnly(first.In(loc))
		key := first.Format(domain.DateFormat)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		starts = append(starts, first)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })
	return starts
}

func fullDay(d time.Time, reason string, kind domain.BlackoutKind) domain.BlackoutSlot {
	return domain.BlackoutSlot{
		Start:  d.UTC(),
		End:    d.AddDate(0, 0, 1).UTC(),
		Reason: reason,
		Kind:   kind,
	}
}
