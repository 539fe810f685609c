package scoring

import (
	"math"
	"time"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
)

// Placement размещение события, которое оценивается
type Placement struct {
	VenueID string
	Venue   *domain.Venue // nil, если площадка неизвестна
	Start   time.Time
	End     time.Time
}

// Context общие для недели данные оценки
type Context struct {
	Calendar   *domain.Calendar
	Location   *time.Location
	HecticWeek bool
}

// Score считает мягкую оценку размещения события
func Score(event *domain.EventRequest, p Placement, sc Context, w Weights) Breakdown {
	loc := sc.Location
	if loc == nil {
		loc = time.UTC
	}
	b := Breakdown{Base: w.BaseScore}

	// Площадка: запрошенная или из предпочтений
	if p.VenueID != "" && p.VenueID == event.RequestedVenueID {
		b.VenueMatch = w.VenuePreferenceMatch
	} else {
		for _, pref := range event.Preferences {
			if pref.PreferredVenueID != "" && pref.PreferredVenueID == p.VenueID {
				b.VenueMatch = w.VenuePreferenceMatch * preferenceFactor
				break
			}
		}
	}

	// Дата и время: запрошенные или лучшее из предпочтений
	slotDay := domain.DateOnly(p.Start.In(loc))
	reqStart, reqEnd := requestedRange(event)
	if !reqStart.IsZero() && domain.DateOnly(reqStart.In(loc)).Equal(slotDay) {
		b.DateTimeMatch = w.DateMatch * halfFactor
		if domain.Overlaps(p.Start, p.End, reqStart, reqEnd) {
			b.DateTimeMatch += w.TimeslotMatch * halfFactor
		}
	} else {
		for _, pref := range event.Preferences {
			if pref.PreferredDate == nil || !domain.DateOnly(pref.PreferredDate.In(loc)).Equal(slotDay) {
				continue
			}
			score := w.DateMatch * halfFactor
			if pref.SlotStart != nil && pref.SlotEnd != nil && domain.Overlaps(p.Start, p.End, *pref.SlotStart, *pref.SlotEnd) {
				score += w.TimeslotMatch * halfFactor
			}
			b.DateTimeMatch = math.Max(b.DateTimeMatch, score*preferenceFactor)
		}
	}

	// Бонус за заявку, запрошенную в период повышенной нагрузки
	if sc.HecticWeek && sc.Calendar != nil && !reqStart.IsZero() {
		if _, ok := sc.Calendar.HecticPeriodAt(domain.DateOnly(reqStart.In(loc))); ok {
			b.HecticBonus = w.HecticWeekPriorityBonus
		}
	}

	// Штраф за превышение вместимости растет с долей лишних участников
	if p.Venue != nil && p.Venue.Capacity > 0 && event.EstimatedAttendees > p.Venue.Capacity {
		over := float64(event.EstimatedAttendees-p.Venue.Capacity) / float64(p.Venue.Capacity)
		b.CapacityPenalty = w.CapacityFitPenalty * (1 + over)
	}

	return b
}

// requestedRange запрошенный интервал; без конца берется длительность по умолчанию
func requestedRange(event *domain.EventRequest) (time.Time, time.Time) {
	if event.RequestedStart.IsZero() {
		return time.Time{}, time.Time{}
	}
	return event.RequestedStart, event.RequestedStart.Add(event.Duration())
}

// Fitness итоговая оценка: мягкая оценка минус штраф за каждое нарушение жесткого ограничения
func Fitness(soft float64, violations int, w Weights) float64 {
	return soft - float64(violations)*w.HardConstraintPenalty
}
