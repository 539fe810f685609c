package get_available_slots

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-EventScheduler/internal/usecase/get_available_slots"
)

var (
	errInvalidDuration  = errors.New("invalid duration")
	errInvalidAttendees = errors.New("invalid attendees")
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date                string          `json:"date"`
	VenueID             string          `json:"venueId"`
	VenueName           string          `json:"venueName"`
	SlotDurationMinutes int             `json:"slotDurationMinutes"`
	HecticWeek          bool            `json:"hecticWeek"`
	Slots               []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
	Reason    string    `json:"reason,omitempty"`
	Kind      string    `json:"kind,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
			Start:     slot.Start,
			End:       slot.End,
			Available: slot.Available,
			Reason:    slot.Reason,
			Kind:      string(slot.Kind),
		}
	}

	return &AvailableSlotsResponse{
		Date:                resp.Date.Format(domain.DateFormat),
		VenueID:             resp.VenueID,
		VenueName:           resp.VenueName,
		SlotDurationMinutes: resp.SlotDurationMinutes,
		HecticWeek:          resp.HecticWeek,
		Slots:               slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(venueID, dateStr, durationStr, attendeesStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		VenueID: venueID,
		Date:    date,
	}

	if durationStr != "" {
		req.DurationMinutes, err = strconv.Atoi(durationStr)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidDuration, err)
		}
	}

	if attendeesStr != "" {
		req.EstimatedAttendees, err = strconv.Atoi(attendeesStr)
		if err != nil || req.EstimatedAttendees < 0 {
			return nil, fmt.Errorf("%w: %q", errInvalidAttendees, attendeesStr)
		}
	}

	return req, nil
}
