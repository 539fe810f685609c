package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
	"github.com/m04kA/SMC-EventScheduler/internal/service/slotcheck"
)

// probeEventID ID условного события, которым проверяются слоты
const probeEventID = "available-slots-probe"

// UseCase use case для получения слотов площадки на день
type UseCase struct {
	constraints  ConstraintsProvider
	loader       WeekDataLoader
	opts         Options
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	constraints ConstraintsProvider,
	loader WeekDataLoader,
	opts Options,
	logger Logger,
) *UseCase {
	defaults := DefaultOptions()
	if opts.SlotDurationMinutes <= 0 {
		opts.SlotDurationMinutes = defaults.SlotDurationMinutes
	}
	if opts.DayStart == "" {
		opts.DayStart = defaults.DayStart
	}
	if opts.DayEnd == "" {
		opts.DayEnd = defaults.DayEnd
	}
	return &UseCase{
		constraints:  constraints,
		loader:       loader,
		opts:         opts,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: venue=%s, date=%s", req.VenueID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Календарь задает часовой пояс дня
	cal, err := uc.constraints.Calendar()
	if err != nil {
		uc.logger.Error("GetAvailableSlots: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
	}
	loc := cal.Location
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := req.Date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, loc)

	// 3. Дата в учебном году и не в прошлом
	if !cal.AcademicYear.Contains(day) {
		uc.logger.Warn("GetAvailableSlots: %s is outside the academic year", day.Format(domain.DateFormat))
		return nil, ErrOutsideAcademicYear
	}
	now := uc.timeProvider.Now().In(loc)
	if err := validateDate(day, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", day.Format(domain.DateFormat))
		return nil, err
	}

	// 4. Ограничения и данные дня
	week, _, err := uc.constraints.ForWeek(day, day.AddDate(0, 0, 1))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to build constraints: %v", err)
		return nil, fmt.Errorf("%w: failed to build constraints: %v", ErrInternal, err)
	}

	data, err := uc.loader.Load(ctx, week)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load data: %v", err)
		return nil, fmt.Errorf("%w: failed to load data: %v", ErrInternal, err)
	}

	venue, ok := data.Venues[req.VenueID]
	if !ok {
		uc.logger.Warn("GetAvailableSlots: venue id=%s not found", req.VenueID)
		return nil, ErrVenueNotFound
	}

	// 5. Генерируем временные слоты
	duration := uc.opts.SlotDurationMinutes
	if req.DurationMinutes > 0 {
		duration = req.DurationMinutes
	}
	timeSlots, err := generateTimeSlots(uc.opts.DayStart, uc.opts.DayEnd, duration, day, now, uc.opts.MinNoticeMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}

	// 6. Отмечаем заблокированные слоты
	probe := &domain.EventRequest{ID: probeEventID, EstimatedAttendees: req.EstimatedAttendees}
	slots := markSlots(slotcheck.NewChecker(data), probe, req.VenueID, timeSlots, duration, day)

	available := 0
	for _, s := range slots {
		if s.Available {
			available++
		}
	}
	uc.logger.Info("GetAvailableSlots: generated %d slots (%d available) for venue=%s, date=%s",
		len(slots), available, req.VenueID, day.Format(domain.DateFormat))

	return &Response{
		Date:                day,
		VenueID:             venue.ID,
		VenueName:           venue.Name,
		SlotDurationMinutes: duration,
		HecticWeek:          week.IsHecticWeek,
		Slots:               slots,
	}, nil
}
