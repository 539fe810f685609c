package validate_event

import (
	"time"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
	"github.com/m04kA/SMC-EventScheduler/internal/service/scoring"
)

// Результаты проверки для метрик
const (
	ResultValid   = "valid"
	ResultInvalid = "invalid"
)

// Request модель запроса на проверку события
type Request struct {
	EventID            string // ID заявки; если она ожидает размещения на этой неделе, учитываются ее предпочтения
	Name               string
	OrganizationID     string
	VenueID            string
	Start              time.Time
	End                time.Time
	EstimatedAttendees int
	Equipment          []EquipmentItem
	Weights            *scoring.Weights // nil - веса по умолчанию
}

// EquipmentItem запрос единиц оборудования
type EquipmentItem struct {
	EquipmentID string
	Quantity    int
}

// Response модель ответа с результатом проверки
type Response struct {
	Valid        bool
	Violations   []domain.Violation
	Score        scoring.Breakdown
	Fitness      float64
	HecticWeek   bool
	HecticPeriod string
}
