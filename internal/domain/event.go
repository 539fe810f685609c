package domain

import "time"

// EventRequest is an event waiting for a slot
type EventRequest struct {
	ID                 string
	Name               string
	OrganizationID     string
	RequestedVenueID   string
	RequestedStart     time.Time
	RequestedEnd       time.Time
	EstimatedAttendees int
	RequiresFunding    bool
	Preferences        []Preference
	Equipment          []EquipmentRequest
}

// Duration returns the requested duration, DefaultEventDuration if it is not positive
func (e *EventRequest) Duration() time.Duration {
	if e.RequestedStart.IsZero() || e.RequestedEnd.IsZero() || !e.RequestedEnd.After(e.RequestedStart) {
		return DefaultEventDuration
	}
	return e.RequestedEnd.Sub(e.RequestedStart)
}

// Preference is an alternative venue/date/time an organization would accept
type Preference struct {
	EventID          string
	PreferredVenueID string
	PreferredDate    *time.Time
	SlotStart        *time.Time
	SlotEnd          *time.Time
}

// EquipmentRequest is a quantity of one equipment item requested by an event
type EquipmentRequest struct {
	EventID     string
	EquipmentID string
	Quantity    int
}

// EquipmentItem is one physical item of the inventory
type EquipmentItem struct {
	ID   string
	Name string
}

// EquipmentInventory counts items by name
type EquipmentInventory struct {
	IDToName map[string]string
	Counts   map[string]int
}

// NewEquipmentInventory builds the inventory from individual items
func NewEquipmentInventory(items []EquipmentItem) EquipmentInventory {
	inv := EquipmentInventory{
		IDToName: make(map[string]string, len(items)),
		Counts:   make(map[string]int),
	}
	for _, item := range items {
		if item.Name == "" {
			continue
		}
		inv.IDToName[item.ID] = item.Name
		inv.Counts[item.Name]++
	}
	return inv
}
