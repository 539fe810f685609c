package calendar

import (
	"time"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
)

// CalendarHolder хранилище текущего календаря
type CalendarHolder interface {
	Get() (*domain.Calendar, bool)
	Report() *domain.CalendarReport
	Set(calendar *domain.Calendar, report *domain.CalendarReport, loadedAt time.Time)
}

// MetricsRecorder учет перезагрузок календаря
type MetricsRecorder interface {
	IncCalendarReload(result string)
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
