package validate_event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
	"github.com/m04kA/SMC-EventScheduler/internal/service/constraints"
	"github.com/m04kA/SMC-EventScheduler/internal/service/scoring"
	"github.com/m04kA/SMC-EventScheduler/internal/service/slotcheck"
)

// UseCase use case проверки события против календаря и жестких ограничений
type UseCase struct {
	constraints ConstraintsProvider
	loader      WeekDataLoader
	metrics     MetricsRecorder
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	constraints ConstraintsProvider,
	loader WeekDataLoader,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		constraints: constraints,
		loader:      loader,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute выполняет use case проверки события
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ValidateEvent: event=%q, venue=%s, start=%s, end=%s",
		req.Name, req.VenueID, req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ValidateEvent: validation failed: %v", err)
		return nil, err
	}

	// 2. Ограничения дней, которые занимает событие
	week, cal, err := uc.constraints.ForWeek(req.Start, req.End.AddDate(0, 0, 1))
	if err != nil {
		switch {
		case errors.Is(err, constraints.ErrCalendarUnavailable):
			return nil, fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
		case errors.Is(err, constraints.ErrInvalidWeek):
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			uc.logger.Error("ValidateEvent: failed to build constraints: %v", err)
			return nil, fmt.Errorf("%w: failed to build constraints: %v", ErrInternal, err)
		}
	}

	// 3. Событие внутри учебного года
	loc := week.Location
	if !cal.AcademicYear.Contains(req.Start.In(loc)) || !cal.AcademicYear.Contains(req.End.In(loc)) {
		uc.logger.Warn("ValidateEvent: %s - %s is outside academic year %s - %s",
			req.Start.In(loc).Format(domain.DateFormat), req.End.In(loc).Format(domain.DateFormat),
			cal.AcademicYear.StartDate.Format(domain.DateFormat), cal.AcademicYear.EndDate.Format(domain.DateFormat))
		return nil, ErrOutsideAcademicYear
	}

	// 4. Данные недели: площадки, расписания, оборудование
	data, err := uc.loader.Load(ctx, week)
	if err != nil {
		uc.logger.Error("ValidateEvent: failed to load week data: %v", err)
		return nil, fmt.Errorf("%w: failed to load week data: %v", ErrInternal, err)
	}

	venue, ok := data.Venues[req.VenueID]
	if !ok {
		uc.logger.Warn("ValidateEvent: venue id=%s not found", req.VenueID)
		return nil, ErrVenueNotFound
	}

	// 5. Заявка для проверки; ожидающая заявка с тем же ID дает исходный запрос и предпочтения
	event := candidateEvent(req, data)

	// 6. Жесткие ограничения
	violations := slotcheck.NewChecker(data).Check(event, req.VenueID, req.Start, req.End, nil)

	// 7. Мягкая оценка
	weights := scoring.DefaultWeights()
	if req.Weights != nil {
		weights = *req.Weights
	}
	breakdown := scoring.Score(event, scoring.Placement{
		VenueID: req.VenueID,
		Venue:   venue,
		Start:   req.Start,
		End:     req.End,
	}, scoring.Context{Calendar: cal, Location: loc, HecticWeek: week.IsHecticWeek}, weights)

	// 8. Метрики
	result := ResultValid
	if len(violations) > 0 {
		result = ResultInvalid
	}
	uc.metrics.IncValidation(result)
	for _, v := range violations {
		uc.metrics.IncViolation(string(v.Kind))
	}

	uc.logger.Info("ValidateEvent: event=%q, venue=%s: %s, violations=%d, score=%.2f",
		req.Name, req.VenueID, result, len(violations), breakdown.Total())

	if violations == nil {
		violations = []domain.Violation{}
	}
	return &Response{
		Valid:        len(violations) == 0,
		Violations:   violations,
		Score:        breakdown,
		Fitness:      scoring.Fitness(breakdown.Total(), len(violations), weights),
		HecticWeek:   week.IsHecticWeek,
		HecticPeriod: week.HecticPeriod,
	}, nil
}

// candidateEvent собирает заявку из запроса и регистрирует ее оборудование в данных недели
func candidateEvent(req *Request, data *domain.WeekData) *domain.EventRequest {
	event := &domain.EventRequest{
		ID:                 req.EventID,
		Name:               req.Name,
		OrganizationID:     req.OrganizationID,
		RequestedVenueID:   req.VenueID,
		RequestedStart:     req.Start,
		RequestedEnd:       req.End,
		EstimatedAttendees: req.EstimatedAttendees,
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	for _, pending := range data.Pending {
		if pending.ID != event.ID {
			continue
		}
		event.RequestedVenueID = pending.RequestedVenueID
		event.RequestedStart = pending.RequestedStart
		event.RequestedEnd = pending.RequestedEnd
		event.Preferences = pending.Preferences
		event.Equipment = pending.Equipment
		break
	}

	if len(req.Equipment) > 0 {
		event.Equipment = make([]domain.EquipmentRequest, 0, len(req.Equipment))
		for _, item := range req.Equipment {
			event.Equipment = append(event.Equipment, domain.EquipmentRequest{
				EventID:     event.ID,
				EquipmentID: item.EquipmentID,
				Quantity:    item.Quantity,
			})
		}
	}
	if data.EquipmentByEvent == nil {
		data.EquipmentByEvent = make(map[string][]domain.EquipmentRequest)
	}
	data.EquipmentByEvent[event.ID] = event.Equipment

	return event
}
