package validate_event

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(req.Name) > domain.MaxEventNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxEventNameLength)
	}
	if strings.TrimSpace(req.VenueID) == "" {
		return fmt.Errorf("%w: venue_id is required", ErrInvalidInput)
	}
	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}
	if !req.End.After(req.Start) {
		return fmt.Errorf("%w: end must be after start", ErrInvalidInput)
	}
	if d := req.End.Sub(req.Start); d < domain.MinSlotDurationMinutes*time.Minute || d > domain.MaxSlotDurationMinutes*time.Minute {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}
	if req.EstimatedAttendees < 0 {
		return fmt.Errorf("%w: estimated_attendees must not be negative", ErrInvalidInput)
	}
	for i, item := range req.Equipment {
		if strings.TrimSpace(item.EquipmentID) == "" {
			return fmt.Errorf("%w: equipment[%d]: equipment_id is required", ErrInvalidInput, i)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: equipment[%d]: quantity must be positive", ErrInvalidInput, i)
		}
	}
	return nil
}
