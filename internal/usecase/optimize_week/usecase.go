package optimize_week

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
	"github.com/m04kA/SMC-EventScheduler/internal/service/constraints"
	"github.com/m04kA/SMC-EventScheduler/internal/service/scoring"
)

// constraintTimeFormat формат времени общих блокировок в отчете
const constraintTimeFormat = "2006-01-02 15:04 MST"

// UseCase use case подбора расписания недели генетическим алгоритмом
type UseCase struct {
	constraints ConstraintsProvider
	loader      WeekDataLoader
	params      Params
	metrics     MetricsRecorder
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	constraints ConstraintsProvider,
	loader WeekDataLoader,
	params Params,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		constraints: constraints,
		loader:      loader,
		params:      params,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute выполняет use case оптимизации недели
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("OptimizeWeek: week %s - %s",
		req.WeekStart.Format(domain.DateFormat), req.WeekEnd.Format(domain.DateFormat))
	started := time.Now()

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("OptimizeWeek: validation failed: %v", err)
		return nil, err
	}
	params := uc.params
	if req.Params != nil {
		params = *req.Params
	}
	weights := scoring.DefaultWeights()
	if req.Weights != nil {
		weights = *req.Weights
	}

	// 2. Границы недели - календарные дни в часовом поясе календаря
	cal, err := uc.constraints.Calendar()
	if err != nil {
		uc.logger.Error("OptimizeWeek: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
	}
	weekStart := calendarDay(req.WeekStart, cal.Location)
	weekEnd := calendarDay(req.WeekEnd, cal.Location)

	week, cal, err := uc.constraints.ForWeek(weekStart, weekEnd)
	if err != nil {
		switch {
		case errors.Is(err, constraints.ErrCalendarUnavailable):
			return nil, fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
		case errors.Is(err, constraints.ErrInvalidWeek):
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			uc.logger.Error("OptimizeWeek: failed to build constraints: %v", err)
			return nil, fmt.Errorf("%w: failed to build constraints: %v", ErrInternal, err)
		}
	}

	// 3. Данные недели
	data, err := uc.loader.Load(ctx, week)
	if err != nil {
		uc.logger.Error("OptimizeWeek: failed to load week data: %v", err)
		return nil, fmt.Errorf("%w: failed to load week data: %v", ErrInternal, err)
	}

	resp := &Response{
		ProposalID:  uuid.NewString(),
		WeekStart:   week.WeekStart,
		WeekEnd:     week.WeekEnd,
		Proposed:    []ProposedSchedule{},
		Unscheduled: []string{},
		Report:      newReport(params, week, len(data.Pending)),
	}

	if len(data.Pending) == 0 {
		resp.Report.Summary = "No pending events for this week."
		uc.logger.Info("OptimizeWeek: proposal=%s, no pending events", resp.ProposalID)
		uc.metrics.ObserveOptimizerRun(time.Since(started), 0)
		return resp, nil
	}

	// 4. Генетический алгоритм
	opt := newOptimizer(data, cal, weights, params)
	best, _, err := opt.run(ctx, uc.logger)
	if err != nil {
		uc.logger.Error("OptimizeWeek: optimizer stopped: %v", err)
		return nil, fmt.Errorf("%w: optimizer stopped: %v", ErrInternal, err)
	}

	// 5. Повторная проверка лучшего решения
	final := opt.fitness(best)
	resp.Report.FinalFitness = final.Fitness
	resp.Report.FinalViolations = final.Violations

	var unscheduled []*domain.EventRequest
	if final.Violations > 0 {
		resp.Report.Summary = fmt.Sprintf(
			"Best solution still has %d hard violations. All events treated as unscheduled.", final.Violations)
		unscheduled = data.Pending
	} else {
		for i, g := range best {
			event := data.Pending[i]
			if !g.Scheduled {
				unscheduled = append(unscheduled, event)
				continue
			}
			resp.Proposed = append(resp.Proposed, ProposedSchedule{
				EventID:        event.ID,
				EventName:      event.Name,
				OrganizationID: event.OrganizationID,
				VenueID:        g.VenueID,
				Start:          g.Start,
				End:            g.End,
				Score:          final.Scores[i],
			})
		}
		sort.SliceStable(resp.Proposed, func(i, j int) bool {
			return resp.Proposed[i].Start.Before(resp.Proposed[j].Start)
		})
		resp.Report.Summary = fmt.Sprintf("Proposed schedule for %d events. Unscheduled: %d.",
			len(resp.Proposed), len(unscheduled))
	}

	// 6. Разбор нераспределенных событий
	for _, event := range unscheduled {
		resp.Unscheduled = append(resp.Unscheduled, event.ID)
	}
	if len(unscheduled) > 0 {
		analysis, err := analyzeUnscheduled(ctx, opt.checker, unscheduled, params.Workers)
		if err != nil {
			uc.logger.Error("OptimizeWeek: post-mortem analysis stopped: %v", err)
			return nil, fmt.Errorf("%w: post-mortem analysis stopped: %v", ErrInternal, err)
		}
		resp.Report.UnscheduledAnalysis = analysis
	}

	uc.metrics.ObserveOptimizerRun(time.Since(started), len(resp.Unscheduled))
	uc.logger.Info("OptimizeWeek: proposal=%s, proposed=%d, unscheduled=%d, fitness=%.2f, violations=%d",
		resp.ProposalID, len(resp.Proposed), len(resp.Unscheduled), final.Fitness, final.Violations)

	return resp, nil
}

// calendarDay полночь того же календарного дня в часовом поясе loc
func calendarDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// newReport заполняет общую часть отчета: параметры и действующие ограничения недели
func newReport(params Params, week domain.WeekConstraints, inputCount int) Report {
	report := Report{
		Params:                   params,
		InputEventCount:          inputCount,
		IsHecticWeek:             week.IsHecticWeek,
		HecticPeriod:             week.HecticPeriod,
		ActiveGeneralConstraints: make([]string, 0, len(week.GeneralSlots)),
		ActiveVenueBlockages:     make(map[string][]string, len(week.VenueBlockages)),
	}

	for _, slot := range week.GeneralSlots {
		report.ActiveGeneralConstraints = append(report.ActiveGeneralConstraints, fmt.Sprintf("%s: %s - %s",
			slot.Reason, slot.Start.UTC().Format(constraintTimeFormat), slot.End.UTC().Format(constraintTimeFormat)))
	}

	if !week.IsHecticWeek {
		for key, windows := range week.VenueBlockages {
			labels := make([]string, 0, len(windows))
			for _, w := range windows {
				labels = append(labels, w.Label())
			}
			report.ActiveVenueBlockages[key] = labels
		}
	}

	return report
}
