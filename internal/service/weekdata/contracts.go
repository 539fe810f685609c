package weekdata

import (
	"context"
	"time"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
)

// VenueSource источник площадок
type VenueSource interface {
	List(ctx context.Context) ([]*domain.Venue, error)
}

// EventSource источник ожидающих заявок
type EventSource interface {
	ListPending(ctx context.Context, from, to time.Time) ([]*domain.EventRequest, error)
}

// ScheduleSource источник утвержденных расписаний
type ScheduleSource interface {
	ListOverlapping(ctx context.Context, from, to time.Time) ([]domain.Schedule, error)
}

// EquipmentSource источник оборудования
type EquipmentSource interface {
	ListInventory(ctx context.Context) ([]domain.EquipmentItem, error)
	ListRequests(ctx context.Context, eventIDs []string) ([]domain.EquipmentRequest, error)
}

// TxManager выполняет чтения в одном снимке данных
type TxManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
