package domain

import (
	"time"

	"github.com/m04kA/SMC-EventScheduler/pkg/types"
)

// BlackoutKind is the origin of a blackout slot
type BlackoutKind string

const (
	BlackoutCalendar BlackoutKind = "calendar" // full day from an unavailable-dates category
	BlackoutPreExam  BlackoutKind = "pre_exam"
	BlackoutSunday   BlackoutKind = "sunday"
	BlackoutCurfew   BlackoutKind = "curfew"
)

// BlackoutSlot is a concrete [Start, End) range during which no event may run
type BlackoutSlot struct {
	Start    time.Time
	End      time.Time
	Reason   string
	Kind     BlackoutKind
	Category Category // set for BlackoutCalendar only
}

// Overlaps returns true if the slot strictly overlaps [start, end)
func (b BlackoutSlot) Overlaps(start, end time.Time) bool {
	return Overlaps(b.Start, b.End, start, end)
}

// WeekConstraints are the constraints in force for one target week
type WeekConstraints struct {
	WeekStart      time.Time // first day, inclusive
	WeekEnd        time.Time // day after the last day, exclusive
	Location       *time.Location
	GeneralSlots   []BlackoutSlot // sorted by Start, UTC
	IsHecticWeek   bool
	HecticPeriod   string
	VenueBlockages map[string][]BlockageWindow // empty during hectic weeks
	// DayStart and DayEnd bound the daytime outside the night curfew
	DayStart types.TimeString
	DayEnd   types.TimeString
}

// ContainsDate returns true if the local calendar day of t falls inside the week
func (w WeekConstraints) ContainsDate(t time.Time) bool {
	d := DateOnly(t.In(w.Location))
	return !d.Before(w.WeekStart) && d.Before(w.WeekEnd)
}

// Overlaps reports whether [s1, e1) and [s2, e2) share at least one instant
// Touching ranges (e1 == s2) do not overlap
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}
