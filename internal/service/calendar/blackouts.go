package calendar

import (
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
)

// FullDayBlackouts возвращает блокировки на целый день для дат указанных категорий из [from, to)
// from и to сравниваются как календарные дни в часовом поясе календаря
// Если одну дату блокируют несколько записей, остается первая по порядку категорий
func FullDayBlackouts(cal *domain.Calendar, categories []domain.Category, from, to time.Time) []domain.BlackoutSlot {
	loc := cal.Location
	if loc == nil {
		loc = time.UTC
	}
	fromDay := domain.DateOnly(from.In(loc))
	toDay := domain.DateOnly(to.In(loc))

	seen := make(map[string]struct{})
	var slots []domain.BlackoutSlot

	for _, category := range categories {
		for _, entry := range cal.Entries(category) {
			reason := entry.Event
			if strings.TrimSpace(reason) == "" {
				reason = categoryTitle(category)
			}

			for _, date := range entry.Dates {
				day := domain.DateOnly(date.In(loc))
				if day.Before(fromDay) || !day.Before(toDay) {
					continue
				}
				key := day.Format(domain.DateFormat)
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}

				slots = append(slots, domain.BlackoutSlot{
					Start:    day.UTC(),
					End:      day.AddDate(0, 0, 1).UTC(),
					Reason:   reason,
					Kind:     domain.BlackoutCalendar,
					Category: category,
				})
			}
		}
	}

	sort.SliceStable(slots, func(i, j int) bool { return slots[i].Start.Before(slots[j].Start) })
	return slots
}

// categoryTitle "national_holidays" -> "National Holidays"
func categoryTitle(category domain.Category) string {
	words := strings.Split(string(category), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
