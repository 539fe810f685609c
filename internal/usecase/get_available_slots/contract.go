package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
)

// ConstraintsProvider строит ограничения по текущему календарю
type ConstraintsProvider interface {
	Calendar() (*domain.Calendar, error)
	ForWeek(start, end time.Time) (domain.WeekConstraints, *domain.Calendar, error)
}

// WeekDataLoader загружает площадки, расписания и оборудование
type WeekDataLoader interface {
	Load(ctx context.Context, week domain.WeekConstraints) (*domain.WeekData, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
