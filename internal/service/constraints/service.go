package constraints

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
)

// Service строит недельные ограничения по текущему календарю
type Service struct {
	calendars CalendarProvider
	opts      Options
	logger    Logger
}

// NewService создает новый экземпляр сервиса
func NewService(calendars CalendarProvider, opts Options, logger Logger) *Service {
	return &Service{
		calendars: calendars,
		opts:      opts,
		logger:    logger,
	}
}

// ForWeek возвращает ограничения недели [start, end) и календарь, по которому они построены
func (s *Service) ForWeek(start, end time.Time) (domain.WeekConstraints, *domain.Calendar, error) {
	cal, err := s.calendars.Current()
	if err != nil {
		s.logger.Error("ForWeek: calendar unavailable: %v", err)
		return domain.WeekConstraints{}, nil, fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
	}

	week, err := Build(cal, start, end, s.opts)
	if err != nil {
		s.logger.Warn("ForWeek: %v", err)
		return domain.WeekConstraints{}, nil, err
	}

	s.logger.Info("ForWeek: %s - %s, hectic=%t, general slots=%d, venue blockage groups=%d",
		week.WeekStart.Format(domain.DateFormat), week.WeekEnd.Format(domain.DateFormat),
		week.IsHecticWeek, len(week.GeneralSlots), len(week.VenueBlockages))
	return week, cal, nil
}

// Calendar возвращает текущий календарь
func (s *Service) Calendar() (*domain.Calendar, error) {
	cal, err := s.calendars.Current()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
	}
	return cal, nil
}
