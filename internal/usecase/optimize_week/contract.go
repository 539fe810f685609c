package optimize_week

import (
	"context"
	"time"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
)

// ConstraintsProvider строит ограничения недели по текущему календарю
type ConstraintsProvider interface {
	Calendar() (*domain.Calendar, error)
	ForWeek(start, end time.Time) (domain.WeekConstraints, *domain.Calendar, error)
}

// WeekDataLoader загружает площадки, ожидающие заявки, расписания и оборудование недели
type WeekDataLoader interface {
	Load(ctx context.Context, week domain.WeekConstraints) (*domain.WeekData, error)
}

// MetricsRecorder учитывает прогоны оптимизатора
type MetricsRecorder interface {
	ObserveOptimizerRun(duration time.Duration, unscheduled int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
