package get_calendar_report

import (
	"context"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
)

type CalendarInspector interface {
	Inspect(ctx context.Context) (*domain.CalendarReport, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
