package get_blackouts

import (
	"time"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
)

// BlackoutsResponse HTTP response model
type BlackoutsResponse struct {
	Count     int        `json:"count"`
	Blackouts []Blackout `json:"blackouts"`
}

// Blackout блокировка на целый день
type Blackout struct {
	Date     string    `json:"date"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Reason   string    `json:"reason"`
	Kind     string    `json:"kind"`
	Category string    `json:"category,omitempty"`
}

// ParseRange разбирает границы диапазона как календарные дни в loc
func ParseRange(fromStr, toStr string, loc *time.Location) (time.Time, time.Time, error) {
	from, err := time.ParseInLocation(domain.DateFormat, fromStr, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := time.ParseInLocation(domain.DateFormat, toStr, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

// FromDomain конвертирует блокировки в HTTP response
func FromDomain(slots []domain.BlackoutSlot, loc *time.Location) *BlackoutsResponse {
	blackouts := make([]Blackout, len(slots))
	for i, slot := range slots {
		blackouts[i] = Blackout{
			Date:     slot.Start.In(loc).Format(domain.DateFormat),
			Start:    slot.Start,
			End:      slot.End,
			Reason:   slot.Reason,
			Kind:     string(slot.Kind),
			Category: string(slot.Category),
		}
	}

	return &BlackoutsResponse{
		Count:     len(blackouts),
		Blackouts: blackouts,
	}
}
