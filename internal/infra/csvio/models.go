package csvio

// Строки CSV-источников. Заголовки совпадают с колонками таблиц postgres

type venueRow struct {
	ID            string `csv:"id"`
	Name          string `csv:"name"`
	Building      string `csv:"building"`
	Code          string `csv:"code"`
	VenueType     string `csv:"venue_type"`
	Occupancy     int    `csv:"occupancy"`
	BlockageGroup string `csv:"blockage_group"`
}

type eventRow struct {
	ID                 string `csv:"id"`
	EventName          string `csv:"event_name"`
	OrganizationID     string `csv:"organization_id"`
	RequestedVenueID   string `csv:"requested_venue_id"`
	RequiresFunding    bool   `csv:"requires_funding"`
	EstimatedAttendees int    `csv:"estimated_attendees"`
	RequestedDate      string `csv:"requested_date"`
	RequestedTimeStart string `csv:"requested_time_start"`
	RequestedTimeEnd   string `csv:"requested_time_end"`
	ApprovalStatus     string `csv:"approval_status"`
}

type preferenceRow struct {
	EventID                string `csv:"event_id"`
	PreferredVenueID       string `csv:"preferred_venue_id"`
	PreferredDate          string `csv:"preferred_date"`
	PreferredTimeSlotStart string `csv:"preferred_time_slot_start"`
	PreferredTimeSlotEnd   string `csv:"preferred_time_slot_end"`
}

type scheduleRow struct {
	ID                 string `csv:"id"`
	EventID            string `csv:"event_id"`
	VenueID            string `csv:"venue_id"`
	OrganizationID     string `csv:"organization_id"`
	ScheduledStartTime string `csv:"scheduled_start_time"` // RFC 3339
	ScheduledEndTime   string `csv:"scheduled_end_time"`
	IsOptimized        bool   `csv:"is_optimized"`
}

type equipmentRow struct {
	ID           string `csv:"id"`
	Name         string `csv:"name"`
	Availability string `csv:"availability"`
}

type eventEquipmentRow struct {
	EventID     string `csv:"event_id"`
	EquipmentID string `csv:"equipment_id"`
	Quantity    int    `csv:"quantity"`
}

// BlackoutRow строка экспорта блокировок
type BlackoutRow struct {
	Date     string `csv:"date"`
	Start    string `csv:"start"`
	End      string `csv:"end"`
	Kind     string `csv:"kind"`
	Category string `csv:"category"`
	Reason   string `csv:"reason"`
}
