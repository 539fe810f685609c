package optimize_week

import (
	"context"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
	"github.com/m04kA/SMC-EventScheduler/internal/service/slotcheck"
	"github.com/m04kA/SMC-EventScheduler/pkg/types"
)

// Сообщения разбора нераспределенных событий
const (
	postMortemNoVenues    = "Post-mortem: No venues available."
	postMortemNoSlots     = "No valid daytime slots could be checked (review target week rules)."
	postMortemNoConflicts = "No specific constraint conflicts found in sampled daytime slots. " +
		"Failure may be due to conflicts with other chosen events or the optimizer not finding a solution."
	postMortemHeader = "Potential blocking constraints identified (based on sampled daytime slots):"
)

// postMortemTimes время начала проверяемых слотов
var postMortemTimes = []types.TimeString{"09:00", "10:30", "13:00", "14:30", "16:00"}

// analyzeUnscheduled ищет возможные причины, по которым события не удалось разместить:
// проверяет типовые слоты каждого дня недели кроме воскресенья на всех площадках
func analyzeUnscheduled(ctx context.Context, checker *slotcheck.Checker, events []*domain.EventRequest, workers int) (map[string][]string, error) {
	result := make(map[string][]string, len(events))
	if len(events) == 0 {
		return result, nil
	}

	data := checker.Data()
	if len(data.VenueOrder) == 0 {
		for _, event := range events {
			result[event.ID] = []string{postMortemNoVenues}
		}
		return result, nil
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	analyses := make([][]string, len(events))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, event := range events {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			analyses[i] = analyzeEvent(checker, event)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, event := range events {
		result[event.ID] = analyses[i]
	}
	return result, nil
}

// analyzeEvent собирает причины блокировки типовых слотов одного события, сгруппированные по типу
func analyzeEvent(checker *slotcheck.Checker, event *domain.EventRequest) []string {
	data := checker.Data()
	week := data.Constraints
	loc := week.Location
	if loc == nil {
		loc = time.UTC
	}
	duration := event.Duration()
	_, dayEnd := dayWindow(week)

	checked := 0
	grouped := make(map[string]map[string]struct{})
	for day := week.WeekStart; day.Before(week.WeekEnd); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Sunday {
			continue
		}
		limit := dayEnd.On(day, loc)
		for _, venueID := range data.VenueOrder {
			for _, at := range postMortemTimes {
				start := at.On(day, loc)
				end := start.Add(duration)
				if end.After(limit) {
					continue
				}
				checked++

				v, blocked := checker.FirstViolation(event, venueID, start, end, nil)
				if !blocked {
					continue
				}
				group := v.Group()
				if grouped[group] == nil {
					grouped[group] = make(map[string]struct{})
				}
				grouped[group][v.Reason] = struct{}{}
			}
		}
	}

	switch {
	case checked == 0:
		return []string{postMortemNoSlots}
	case len(grouped) == 0:
		return []string{postMortemNoConflicts}
	}

	groups := make([]string, 0, len(grouped))
	for group := range grouped {
		groups = append(groups, group)
	}
	sort.Strings(groups)

	lines := []string{postMortemHeader}
	for _, group := range groups {
		lines = append(lines, "  "+group+":")
		reasons := make([]string, 0, len(grouped[group]))
		for reason := range grouped[group] {
			reasons = append(reasons, reason)
		}
		sort.Strings(reasons)
		for _, reason := range reasons {
			lines = append(lines, "    - "+reason)
		}
	}
	return lines
}
