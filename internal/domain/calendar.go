package domain

import (
	"time"

	"github.com/m04kA/SMC-EventScheduler/pkg/types"
)

// Category is a group of unavailable dates in the calendar file
type Category string

const (
	CategoryNationalHolidays     Category = "national_holidays"
	CategorySchoolHolidaysBreaks Category = "school_holidays_breaks"
	CategoryExaminationPeriods   Category = "examination_periods"
	CategoryMajorEvents          Category = "major_events"
	CategoryClosures             Category = "closures"
	CategoryEnrollmentPeriods    Category = "enrollment_periods"
	CategoryStaffEvents          Category = "staff_events"
	CategoryDeadlines            Category = "deadlines"
	CategoryReligiousObservances Category = "religious_observances"
	CategoryMonthLongObservances Category = "month_long_observances"
)

// KnownCategories lists every category the calendar file may contain
var KnownCategories = []Category{
	CategoryNationalHolidays,
	CategorySchoolHolidaysBreaks,
	CategoryExaminationPeriods,
	CategoryMajorEvents,
	CategoryClosures,
	CategoryEnrollmentPeriods,
	CategoryStaffEvents,
	CategoryDeadlines,
	CategoryReligiousObservances,
	CategoryMonthLongObservances,
}

// IsKnown returns true if the category is one of KnownCategories
func (c Category) IsKnown() bool {
	for _, known := range KnownCategories {
		if c == known {
			return true
		}
	}
	return false
}

// AcademicYear is the valid scheduling window, both ends inclusive
type AcademicYear struct {
	StartDate time.Time
	EndDate   time.Time
}

// StartYear returns the calendar year the academic year begins in
func (y AcademicYear) StartYear() int {
	return y.StartDate.Year()
}

// EndYear returns the calendar year the academic year ends in
func (y AcademicYear) EndYear() int {
	return y.EndDate.Year()
}

// Contains returns true if the date (compared by calendar day) is inside the year
func (y AcademicYear) Contains(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(y.StartDate)) && !d.After(DateOnly(y.EndDate))
}

// ConstraintSet holds the prose constraints of the calendar file
// They are documentation only and are never evaluated
type ConstraintSet struct {
	Hard []string
	Soft []string
}

// BlockageWindow is a recurring time window during which a venue group is committed
// Day == nil means the window applies to every day of the group
type BlockageWindow struct {
	Day   *time.Weekday
	Start types.TimeString
	End   types.TimeString
}

// AppliesTo returns true if the window is active on the weekday
func (w BlockageWindow) AppliesTo(day time.Weekday) bool {
	return w.Day == nil || *w.Day == day
}

// Label returns "HH:MM-HH:MM" with the weekday name if the window is day-specific
func (w BlockageWindow) Label() string {
	label := w.Start.String() + "-" + w.End.String()
	if w.Day != nil {
		label += " (" + w.Day.String() + ")"
	}
	return label
}

// DateEntry is an unavailable date entry with its date string normalized
type DateEntry struct {
	Category Category
	Raw      string
	Event    string
	Dates    []time.Time // sorted, unique
}

// First returns the earliest date of the entry
func (e DateEntry) First() (time.Time, bool) {
	if len(e.Dates) == 0 {
		return time.Time{}, false
	}
	return e.Dates[0], true
}

// HecticPeriod is a named high-activity span
type HecticPeriod struct {
	Name              string
	Raw               string
	ReferenceCategory Category
	Dates             []time.Time // sorted, unique
}

// Span returns the first and last date of the period
func (p HecticPeriod) Span() (time.Time, time.Time, bool) {
	if len(p.Dates) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return p.Dates[0], p.Dates[len(p.Dates)-1], true
}

// Calendar is the normalized academic calendar
type Calendar struct {
	AcademicYear   AcademicYear
	Constraints    ConstraintSet
	VenueBlockages map[string][]BlockageWindow
	Unavailable    map[Category][]DateEntry
	HecticPeriods  []HecticPeriod
	Location       *time.Location
}

// Entries returns the entries of the category in file order
func (c *Calendar) Entries(category Category) []DateEntry {
	return c.Unavailable[category]
}

// HecticPeriodAt returns the first hectic period whose span covers the date
func (c *Calendar) HecticPeriodAt(date time.Time) (HecticPeriod, bool) {
	d := DateOnly(date)
	for _, p := range c.HecticPeriods {
		first, last, ok := p.Span()
		if !ok {
			continue
		}
		if !d.Before(first) && !d.After(last) {
			return p, true
		}
	}
	return HecticPeriod{}, false
}

// DateOnly drops the time of day, keeping the location
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
