package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
	"github.com/m04kA/SMC-EventScheduler/pkg/types"
)

// Options настройки генерации слотов
type Options struct {
	SlotDurationMinutes int
	MinNoticeMinutes    int
	DayStart            types.TimeString // конец ночного запрета
	DayEnd              types.TimeString // начало ночного запрета
}

// DefaultOptions настройки по умолчанию: 06:00 - 22:00 с шагом 30 минут
func DefaultOptions() Options {
	return Options{
		SlotDurationMinutes: domain.DefaultSlotDurationMinutes,
		MinNoticeMinutes:    domain.DefaultMinNoticeMinutes,
		DayStart:            domain.DefaultCurfewEnd,
		DayEnd:              domain.DefaultCurfewStart,
	}
}

// Request модель запроса на получение слотов площадки
type Request struct {
	VenueID            string
	Date               time.Time // календарный день (год, месяц, число); время и пояс не учитываются
	DurationMinutes    int       // 0 - длительность слота по умолчанию
	EstimatedAttendees int       // 0 - вместимость не проверяется
}

// Response модель ответа со списком слотов
type Response struct {
	Date                time.Time
	VenueID             string
	VenueName           string
	SlotDurationMinutes int
	HecticWeek          bool
	Slots               []Slot
}

// Slot модель временного слота
type Slot struct {
	StartTime types.TimeString // время начала, например "10:00"
	EndTime   types.TimeString
	Start     time.Time
	End       time.Time
	Available bool
	Reason    string // первая причина блокировки для недоступного слота
	Kind      domain.ViolationKind
}
