package export_calendar

import (
	"time"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
)

type BlackoutsProvider interface {
	Current() (*domain.Calendar, error)
	Blackouts(from, to time.Time) ([]domain.BlackoutSlot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
