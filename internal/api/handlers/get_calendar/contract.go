package get_calendar

import "github.com/m04kA/SMC-EventScheduler/internal/domain"

type CalendarProvider interface {
	Current() (*domain.Calendar, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
