package domain

import "strings"

// ViolationKind classifies a hard constraint violation
type ViolationKind string

const (
	ViolationOutsideWeek         ViolationKind = "outside_week"
	ViolationOutsideAcademicYear ViolationKind = "outside_academic_year"
	ViolationBlackout            ViolationKind = "blackout"
	ViolationVenueNotFound       ViolationKind = "venue_not_found"
	ViolationVenueBlockage       ViolationKind = "venue_blockage"
	ViolationDoubleBooking       ViolationKind = "double_booking"
	ViolationEquipmentUnknown    ViolationKind = "equipment_unknown"
	ViolationEquipmentShortage   ViolationKind = "equipment_shortage"
	ViolationCapacityExceeded    ViolationKind = "capacity_exceeded"
)

// Violation is a broken hard constraint with a human-readable reason
type Violation struct {
	Kind   ViolationKind
	Reason string
}

// Group returns the part of the reason before the first ':' (the whole reason otherwise)
// Used to group post-mortem findings
func (v Violation) Group() string {
	if i := strings.Index(v.Reason, ":"); i >= 0 {
		return v.Reason[:i]
	}
	return v.Reason
}
