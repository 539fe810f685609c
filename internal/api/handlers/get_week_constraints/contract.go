package get_week_constraints

import (
	"time"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
)

type ConstraintsProvider interface {
	Calendar() (*domain.Calendar, error)
	ForWeek(start, end time.Time) (domain.WeekConstraints, *domain.Calendar, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
