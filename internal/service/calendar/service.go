package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
	"github.com/m04kA/SMC-EventScheduler/internal/infra/calendarfile"
)

// Service сервис учебного календаря: загрузка, проверка и выборки
type Service struct {
	path         string
	opts         Options
	holder       CalendarHolder
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса календаря
func NewService(
	path string,
	opts Options,
	holder CalendarHolder,
	metrics MetricsRecorder,
	logger Logger,
) *Service {
	return &Service{
		path:         path,
		opts:         opts.withDefaults(),
		holder:       holder,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Options возвращает правила интерпретации календаря
func (s *Service) Options() Options {
	return s.opts
}

// Reload перечитывает файл календаря
// Новый календарь устанавливается, только если отчет о проверке не содержит ошибок
func (s *Service) Reload(ctx context.Context) error {
	s.logger.Info("Reload: loading calendar from %s", s.path)

	// 1. Читаем файл
	raw, err := calendarfile.Load(s.path)
	if err != nil {
		s.metrics.IncCalendarReload(ReloadError)
		s.logger.Error("Reload: failed to load %s: %v", s.path, err)
		return fmt.Errorf("%w: %v", ErrLoad, err)
	}

	// 2. Проверяем схему
	report := BuildReport(raw, s.opts)
	if report.HasErrors() {
		s.metrics.IncCalendarReload(ReloadRejected)
		for _, issue := range report.Issues {
			if issue.Severity == domain.SeverityError {
				s.logger.Warn("Reload: %s: %s", issue.Path, issue.Message)
			}
		}
		return fmt.Errorf("%w: %d errors in %s", ErrInvalidCalendar, report.Count(domain.SeverityError), s.path)
	}

	// 3. Нормализуем
	cal, err := Normalize(raw, s.opts)
	if err != nil {
		s.metrics.IncCalendarReload(ReloadRejected)
		s.logger.Warn("Reload: failed to normalize %s: %v", s.path, err)
		return err
	}

	// 4. Подменяем текущий календарь
	s.holder.Set(cal, report, s.timeProvider.Now())
	s.metrics.IncCalendarReload(ReloadSuccess)

	s.logger.Info("Reload: calendar %s - %s loaded, %d warnings",
		cal.AcademicYear.StartDate.Format(domain.DateFormat), cal.AcademicYear.EndDate.Format(domain.DateFormat),
		report.Count(domain.SeverityWarning))
	return nil
}

// Inspect читает файл с диска и возвращает отчет о проверке, не меняя текущий календарь
// Ошибки разбора JSON попадают в отчет, ошибкой возвращается только невозможность прочитать файл
func (s *Service) Inspect(ctx context.Context) (*domain.CalendarReport, error) {
	raw, err := calendarfile.Load(s.path)
	if err != nil {
		switch {
		case errors.Is(err, calendarfile.ErrDecode), errors.Is(err, calendarfile.ErrMissingSection):
			report := &domain.CalendarReport{}
			report.Add(domain.SeverityError, "", err.Error())
			return report, nil
		default:
			s.logger.Error("Inspect: failed to load %s: %v", s.path, err)
			return nil, fmt.Errorf("%w: %v", ErrLoad, err)
		}
	}

	return BuildReport(raw, s.opts), nil
}

// Current возвращает текущий календарь
func (s *Service) Current() (*domain.Calendar, error) {
	cal, ok := s.holder.Get()
	if !ok {
		return nil, ErrNotLoaded
	}
	return cal, nil
}

// Report возвращает отчет о проверке текущего календаря
func (s *Service) Report() (*domain.CalendarReport, error) {
	if _, ok := s.holder.Get(); !ok {
		return nil, ErrNotLoaded
	}
	return s.holder.Report(), nil
}

// Blackouts возвращает блокировки на целый день в диапазоне [from, to)
func (s *Service) Blackouts(from, to time.Time) ([]domain.BlackoutSlot, error) {
	if !from.Before(to) {
		return nil, fmt.Errorf("%w: from %s must precede to %s", ErrInvalidRange,
			from.Format(domain.DateFormat), to.Format(domain.DateFormat))
	}

	cal, err := s.Current()
	if err != nil {
		return nil, err
	}

	return FullDayBlackouts(cal, s.opts.BlockageCategories, from, to), nil
}

// HecticPeriodAt возвращает период повышенной нагрузки, содержащий дату
func (s *Service) HecticPeriodAt(date time.Time) (domain.HecticPeriod, bool, error) {
	cal, err := s.Current()
	if err != nil {
		return domain.HecticPeriod{}, false, err
	}
	period, ok := cal.HecticPeriodAt(date.In(cal.Location))
	return period, ok, nil
}
