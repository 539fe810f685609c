package main

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-EventScheduler/internal/config"
	"github.com/m04kA/SMC-EventScheduler/internal/domain"
	"github.com/m04kA/SMC-EventScheduler/internal/infra/calendarfile"
	"github.com/m04kA/SMC-EventScheduler/internal/service/calendar"
	"github.com/m04kA/SMC-EventScheduler/internal/service/constraints"
	getAvailableSlotsUC "github.com/m04kA/SMC-EventScheduler/internal/usecase/get_available_slots"
	optimizeWeekUC "github.com/m04kA/SMC-EventScheduler/internal/usecase/optimize_week"
	"github.com/m04kA/SMC-EventScheduler/pkg/logger"
	"github.com/m04kA/SMC-EventScheduler/pkg/metrics"
	"github.com/m04kA/SMC-EventScheduler/pkg/types"
)

// loadConfig загружает конфигурацию и создает логгер
func loadConfig(path string) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, log, nil
}

// newCalendarService создает сервис календаря с пустым хранилищем
func newCalendarService(cfg *config.Config, m *metrics.Metrics, log *logger.Logger) (*calendar.Service, error) {
	opts, err := calendarOptions(cfg)
	if err != nil {
		return nil, err
	}
	return calendar.NewService(cfg.Calendar.Path, opts, calendarfile.NewHolder(), m, log), nil
}

func calendarOptions(cfg *config.Config) (calendar.Options, error) {
	loc, err := time.LoadLocation(cfg.Calendar.Location)
	if err != nil {
		return calendar.Options{}, fmt.Errorf("calendar.location: %w", err)
	}
	return calendar.Options{
		Location:           loc,
		CutoffMonth:        time.Month(cfg.Calendar.CutoffMonth),
		BlockageCategories: blockageCategories(cfg),
	}, nil
}

func constraintsOptions(cfg *config.Config) constraints.Options {
	return constraints.Options{
		BlockageCategories: blockageCategories(cfg),
		PreExamDays:        cfg.Scheduling.PreExamDays,
		CurfewStart:        types.TimeString(cfg.Scheduling.CurfewStart),
		CurfewEnd:          types.TimeString(cfg.Scheduling.CurfewEnd),
	}
}

func slotsOptions(cfg *config.Config) getAvailableSlotsUC.Options {
	return getAvailableSlotsUC.Options{
		SlotDurationMinutes: cfg.Scheduling.SlotDurationMinutes,
		MinNoticeMinutes:    cfg.Scheduling.MinNoticeMinutes,
		DayStart:            types.TimeString(cfg.Scheduling.CurfewEnd),
		DayEnd:              types.TimeString(cfg.Scheduling.CurfewStart),
	}
}

func optimizerParams(cfg *config.Config) optimizeWeekUC.Params {
	return optimizeWeekUC.Params{
		PopulationSize: cfg.Optimizer.PopulationSize,
		Generations:    cfg.Optimizer.Generations,
		MutationRate:   cfg.Optimizer.MutationRate,
		CrossoverRate:  cfg.Optimizer.CrossoverRate,
		TournamentSize: cfg.Optimizer.TournamentSize,
		Workers:        cfg.Optimizer.Workers,
		Seed:           cfg.Optimizer.Seed,
	}
}

func blockageCategories(cfg *config.Config) []domain.Category {
	categories := make([]domain.Category, 0, len(cfg.Scheduling.BlockageCategories))
	for _, c := range cfg.Scheduling.BlockageCategories {
		categories = append(categories, domain.Category(c))
	}
	return categories
}
