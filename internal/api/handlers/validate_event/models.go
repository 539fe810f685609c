package validate_event

import (
	"time"

	"github.com/m04kA/SMC-EventScheduler/internal/service/scoring"
	validateEvent "github.com/m04kA/SMC-EventScheduler/internal/usecase/validate_event"
	"github.com/m04kA/SMC-EventScheduler/pkg/ptr"
)

// ValidateEventRequest HTTP request model
type ValidateEventRequest struct {
	EventID            string          `json:"eventId,omitempty"`
	Name               string          `json:"name"`
	OrganizationID     string          `json:"organizationId,omitempty"`
	VenueID            string          `json:"venueId"`
	Start              time.Time       `json:"start"`
	End                time.Time       `json:"end"`
	EstimatedAttendees int             `json:"estimatedAttendees,omitempty"`
	Equipment          []EquipmentItem `json:"equipment,omitempty"`
	Weights            *Weights        `json:"weights,omitempty"`
}

// EquipmentItem запрос оборудования
type EquipmentItem struct {
	EquipmentID string `json:"equipmentId"`
	Quantity    int    `json:"quantity"`
}

// Weights веса мягкой оценки; не заданные поля берутся по умолчанию
type Weights struct {
	VenuePreferenceMatch    *float64 `json:"venuePreferenceMatch,omitempty"`
	DateMatch               *float64 `json:"dateMatch,omitempty"`
	TimeslotMatch           *float64 `json:"timeslotMatch,omitempty"`
	CapacityFitPenalty      *float64 `json:"capacityFitPenalty,omitempty"`
	HecticWeekPriorityBonus *float64 `json:"hecticWeekPriorityBonus,omitempty"`
	BaseScore               *float64 `json:"baseScore,omitempty"`
	HardConstraintPenalty   *float64 `json:"hardConstraintPenalty,omitempty"`
}

// ValidateEventResponse HTTP response model
type ValidateEventResponse struct {
	Valid        bool        `json:"valid"`
	Violations   []Violation `json:"violations"`
	Score        Score       `json:"score"`
	Fitness      float64     `json:"fitness"`
	HecticWeek   bool        `json:"hecticWeek"`
	HecticPeriod string      `json:"hecticPeriod,omitempty"`
}

// Violation нарушение жесткого ограничения
type Violation struct {
	Kind   string `json:"kind"`
	Reason string `json:"reason"`
}

// Score составляющие мягкой оценки
type Score struct {
	Total           float64 `json:"total"`
	Base            float64 `json:"base"`
	VenueMatch      float64 `json:"venueMatch"`
	DateTimeMatch   float64 `json:"dateTimeMatch"`
	HecticBonus     float64 `json:"hecticBonus"`
	CapacityPenalty float64 `json:"capacityPenalty"`
}

// ToScoring накладывает заданные веса на веса по умолчанию
func (w *Weights) ToScoring() *scoring.Weights {
	if w == nil {
		return nil
	}
	result := scoring.DefaultWeights()
	result.VenuePreferenceMatch = ptr.Deref(w.VenuePreferenceMatch, result.VenuePreferenceMatch)
	result.DateMatch = ptr.Deref(w.DateMatch, result.DateMatch)
	result.TimeslotMatch = ptr.Deref(w.TimeslotMatch, result.TimeslotMatch)
	result.CapacityFitPenalty = ptr.Deref(w.CapacityFitPenalty, result.CapacityFitPenalty)
	result.HecticWeekPriorityBonus = ptr.Deref(w.HecticWeekPriorityBonus, result.HecticWeekPriorityBonus)
	result.BaseScore = ptr.Deref(w.BaseScore, result.BaseScore)
	result.HardConstraintPenalty = ptr.Deref(w.HardConstraintPenalty, result.HardConstraintPenalty)
	return &result
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ValidateEventRequest) ToUseCaseRequest() *validateEvent.Request {
	equipment := make([]validateEvent.EquipmentItem, len(r.Equipment))
	for i, item := range r.Equipment {
		equipment[i] = validateEvent.EquipmentItem{
			EquipmentID: item.EquipmentID,
			Quantity:    item.Quantity,
		}
	}

	return &validateEvent.Request{
		EventID:            r.EventID,
		Name:               r.Name,
		OrganizationID:     r.OrganizationID,
		VenueID:            r.VenueID,
		Start:              r.Start,
		End:                r.End,
		EstimatedAttendees: r.EstimatedAttendees,
		Equipment:          equipment,
		Weights:            r.Weights.ToScoring(),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *validateEvent.Response) *ValidateEventResponse {
	violations := make([]Violation, len(resp.Violations))
	for i, v := range resp.Violations {
		violations[i] = Violation{Kind: string(v.Kind), Reason: v.Reason}
	}

	return &ValidateEventResponse{
		Valid:      resp.Valid,
		Violations: violations,
		Score: Score{
			Total:           resp.Score.Total(),
			Base:            resp.Score.Base,
			VenueMatch:      resp.Score.VenueMatch,
			DateTimeMatch:   resp.Score.DateTimeMatch,
			HecticBonus:     resp.Score.HecticBonus,
			CapacityPenalty: resp.Score.CapacityPenalty,
		},
		Fitness:      resp.Fitness,
		HecticWeek:   resp.HecticWeek,
		HecticPeriod: resp.HecticPeriod,
	}
}
