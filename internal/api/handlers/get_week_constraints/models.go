package get_week_constraints

import (
	"time"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
)

// WeekConstraintsResponse HTTP response model
type WeekConstraintsResponse struct {
	WeekStart      string              `json:"weekStart"`
	WeekEnd        string              `json:"weekEnd"`
	Timezone       string              `json:"timezone"`
	IsHecticWeek   bool                `json:"isHecticWeek"`
	HecticPeriod   string              `json:"hecticPeriod,omitempty"`
	GeneralSlots   []Slot              `json:"generalSlots"`
	VenueBlockages map[string][]string `json:"venueBlockages"`
}

// Slot общая блокировка недели
type Slot struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Reason   string    `json:"reason"`
	Kind     string    `json:"kind"`
	Category string    `json:"category,omitempty"`
}

// FromDomain конвертирует ограничения недели в HTTP response
func FromDomain(week domain.WeekConstraints) *WeekConstraintsResponse {
	slots := make([]Slot, len(week.GeneralSlots))
	for i, s := range week.GeneralSlots {
		slots[i] = Slot{
			Start:    s.Start,
			End:      s.End,
			Reason:   s.Reason,
			Kind:     string(s.Kind),
			Category: string(s.Category),
		}
	}

	blockages := make(map[string][]string, len(week.VenueBlockages))
	for key, windows := range week.VenueBlockages {
		labels := make([]string, len(windows))
		for i, w := range windows {
			labels[i] = w.Label()
		}
		blockages[key] = labels
	}

	resp := &WeekConstraintsResponse{
		WeekStart:      week.WeekStart.Format(domain.DateFormat),
		WeekEnd:        week.WeekEnd.Format(domain.DateFormat),
		IsHecticWeek:   week.IsHecticWeek,
		HecticPeriod:   week.HecticPeriod,
		GeneralSlots:   slots,
		VenueBlockages: blockages,
	}
	if week.Location != nil {
		resp.Timezone = week.Location.String()
	}
	return resp
}
