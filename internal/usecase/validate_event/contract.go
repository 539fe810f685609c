package validate_event

import (
	"context"
	"time"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
)

// ConstraintsProvider строит ограничения недели по текущему календарю
type ConstraintsProvider interface {
	ForWeek(start, end time.Time) (domain.WeekConstraints, *domain.Calendar, error)
}

// WeekDataLoader загружает площадки, заявки и расписания недели
type WeekDataLoader interface {
	Load(ctx context.Context, week domain.WeekConstraints) (*domain.WeekData, error)
}

// MetricsRecorder учитывает результаты проверок
type MetricsRecorder interface {
	IncValidation(result string)
	IncViolation(kind string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
