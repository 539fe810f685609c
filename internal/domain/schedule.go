package domain

import "time"

// Schedule is an event committed to a venue and time range
type Schedule struct {
	ID             string
	EventID        string
	VenueID        string
	OrganizationID string
	Start          time.Time
	End            time.Time
	IsOptimized    bool
}

// WeekData is everything the slot checker needs for one target week
type WeekData struct {
	Constraints WeekConstraints
	Venues      map[string]*Venue
	VenueOrder  []string // venue ids in a stable order
	Existing    []Schedule
	Pending     []*EventRequest
	Inventory   EquipmentInventory
	// EquipmentByEvent holds requests of pending and existing events by event id
	EquipmentByEvent map[string][]EquipmentRequest
}
