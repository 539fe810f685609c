package domain

import "strings"

// Venue blockage group names understood without an explicit blockage_group
const (
	BlockageGroupClassroom = "Classroom"
	BlockageGroupULS       = "ULS"
)

// Blockage key suffixes: the calendar keys venue blockages as <group><suffix>
const (
	BlockageSuffixWeekday  = "_weekday"
	BlockageSuffixSaturday = "_weekend_Sat"
)

// Venue is a physical place an event can be held in
type Venue struct {
	ID            string
	Name          string
	Building      string
	Code          string
	VenueType     string
	Capacity      int
	BlockageGroup string // optional, overrides the name/type heuristic
}

// Group returns the venue blockage group, or "" if the venue has no standard blockages
func (v *Venue) Group() string {
	if v.BlockageGroup != "" {
		return v.BlockageGroup
	}
	if strings.Contains(strings.ToLower(v.VenueType), "classroom") {
		return BlockageGroupClassroom
	}
	if strings.Contains(strings.ToLower(v.Name), "uls") {
		return BlockageGroupULS
	}
	return ""
}

// HasCapacityFor returns true if the venue can seat the attendees
// Capacity 0 means unknown and is never exceeded
func (v *Venue) HasCapacityFor(attendees int) bool {
	return v.Capacity <= 0 || attendees <= v.Capacity
}
