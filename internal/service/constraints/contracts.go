package constraints

import "github.com/m04kA/SMC-EventScheduler/internal/domain"

// CalendarProvider источник текущего календаря
type CalendarProvider interface {
	Current() (*domain.Calendar, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
