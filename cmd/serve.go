package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	exportCalendarHandler "github.com/m04kA/SMC-EventScheduler/internal/api/handlers/export_calendar"
	getAvailableSlotsHandler "github.com/m04kA/SMC-EventScheduler/internal/api/handlers/get_available_slots"
	getBlackoutsHandler "github.com/m04kA/SMC-EventScheduler/internal/api/handlers/get_blackouts"
	getCalendarHandler "github.com/m04kA/SMC-EventScheduler/internal/api/handlers/get_calendar"
	getCalendarReportHandler "github.com/m04kA/SMC-EventScheduler/internal/api/handlers/get_calendar_report"
	getWeekConstraintsHandler "github.com/m04kA/SMC-EventScheduler/internal/api/handlers/get_week_constraints"
	optimizeWeekHandler "github.com/m04kA/SMC-EventScheduler/internal/api/handlers/optimize_week"
	validateEventHandler "github.com/m04kA/SMC-EventScheduler/internal/api/handlers/validate_event"
	"github.com/m04kA/SMC-EventScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-EventScheduler/internal/config"
	"github.com/m04kA/SMC-EventScheduler/internal/infra/calendarfile"
	"github.com/m04kA/SMC-EventScheduler/internal/infra/csvio"
	equipmentRepo "github.com/m04kA/SMC-EventScheduler/internal/infra/storage/equipment"
	eventRepo "github.com/m04kA/SMC-EventScheduler/internal/infra/storage/event"
	scheduleRepo "github.com/m04kA/SMC-EventScheduler/internal/infra/storage/schedule"
	venueRepo "github.com/m04kA/SMC-EventScheduler/internal/infra/storage/venue"
	constraintsService "github.com/m04kA/SMC-EventScheduler/internal/service/constraints"
	weekdataService "github.com/m04kA/SMC-EventScheduler/internal/service/weekdata"
	getAvailableSlotsUC "github.com/m04kA/SMC-EventScheduler/internal/usecase/get_available_slots"
	optimizeWeekUC "github.com/m04kA/SMC-EventScheduler/internal/usecase/optimize_week"
	validateEventUC "github.com/m04kA/SMC-EventScheduler/internal/usecase/validate_event"
	"github.com/m04kA/SMC-EventScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-EventScheduler/pkg/logger"
	"github.com/m04kA/SMC-EventScheduler/pkg/metrics"
	"github.com/m04kA/SMC-EventScheduler/pkg/txmanager"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(*configPath)
		},
	}
}

func serve(configPath string) error {
	// Загружаем конфигурацию и логгер
	cfg, log, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	defer log.Close()

	log.Info("Starting SMC-EventScheduler...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	defer close(stopMetricsCh)

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Загружаем учебный календарь
	calendarSvc, err := newCalendarService(cfg, metricsCollector, log)
	if err != nil {
		return err
	}
	if err := calendarSvc.Reload(context.Background()); err != nil {
		return fmt.Errorf("failed to load calendar %s: %w", cfg.Calendar.Path, err)
	}

	// Следим за файлом календаря
	if cfg.Calendar.Watch {
		watcher, err := calendarfile.NewWatcher(cfg.Calendar.Path, cfg.Calendar.DebounceInterval(), calendarSvc, log)
		if err != nil {
			return err
		}
		if err := watcher.Start(context.Background()); err != nil {
			return err
		}
		defer watcher.Stop()
		log.Info("Watching calendar file %s (debounce=%s)", cfg.Calendar.Path, cfg.Calendar.DebounceInterval())
	}

	// Источники площадок, заявок, расписаний и оборудования
	sources, tx, closeSources, err := openSources(cfg, metricsCollector, stopMetricsCh, log)
	if err != nil {
		return err
	}
	defer closeSources()

	// Инициализируем сервисы
	constraintsSvc := constraintsService.NewService(calendarSvc, constraintsOptions(cfg), log)
	weekdataSvc := weekdataService.NewService(sources, tx, log)

	// Инициализируем use cases
	validateEventUseCase := validateEventUC.NewUseCase(constraintsSvc, weekdataSvc, metricsCollector, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(constraintsSvc, weekdataSvc, slotsOptions(cfg), log)
	optimizeWeekUseCase := optimizeWeekUC.NewUseCase(constraintsSvc, weekdataSvc, optimizerParams(cfg), metricsCollector, log)

	// Инициализируем handlers
	getCalendar := getCalendarHandler.NewHandler(calendarSvc, log)
	getCalendarReport := getCalendarReportHandler.NewHandler(calendarSvc, log)
	getBlackouts := getBlackoutsHandler.NewHandler(calendarSvc, log)
	exportCalendar := exportCalendarHandler.NewHandler(calendarSvc, log)
	getWeekConstraints := getWeekConstraintsHandler.NewHandler(constraintsSvc, log)
	validateEvent := validateEventHandler.NewHandler(validateEventUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	optimizeWeek := optimizeWeekHandler.NewHandler(optimizeWeekUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Календарь ---
	api.HandleFunc("/calendar", getCalendar.Handle).Methods(http.MethodGet)
	api.HandleFunc("/calendar/report", getCalendarReport.Handle).Methods(http.MethodGet)
	api.HandleFunc("/calendar/blackouts", getBlackouts.Handle).Methods(http.MethodGet)
	api.HandleFunc("/calendar/export.ics", exportCalendar.Handle).Methods(http.MethodGet)

	// --- Ограничения недели ---
	api.HandleFunc("/weeks/{start}/constraints", getWeekConstraints.Handle).Methods(http.MethodGet)

	// --- Проверка и подбор слотов ---
	api.HandleFunc("/events/validate", validateEvent.Handle).Methods(http.MethodPost)
	api.HandleFunc("/venues/{venueId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Оптимизация недели (предложение не сохраняется) ---
	api.HandleFunc("/optimize/week", optimizeWeek.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

// openSources открывает источники данных недели по sources.kind
// Возвращает функцию освобождения ресурсов
func openSources(
	cfg *config.Config,
	metricsCollector *metrics.Metrics,
	stopMetricsCh <-chan struct{},
	log *logger.Logger,
) (weekdataService.Sources, weekdataService.TxManager, func(), error) {
	if cfg.Sources.Kind == config.SourceCSV {
		loc, err := time.LoadLocation(cfg.Calendar.Location)
		if err != nil {
			return weekdataService.Sources{}, nil, nil, err
		}
		src := csvio.NewSource(csvio.Files{
			Venues:         cfg.Sources.VenuesFile,
			Events:         cfg.Sources.EventsFile,
			Preferences:    cfg.Sources.PreferencesFile,
			Schedules:      cfg.Sources.SchedulesFile,
			Equipment:      cfg.Sources.EquipmentFile,
			EventEquipment: cfg.Sources.EventEquipmentFile,
		}, loc)
		log.Info("Using CSV sources (venues=%s, events=%s)", cfg.Sources.VenuesFile, cfg.Sources.EventsFile)
		return weekdataService.Sources{Venues: src, Events: src, Schedules: src, Equipment: src},
			txmanager.NoopManager{}, func() {}, nil
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return weekdataService.Sources{}, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return weekdataService.Sources{}, nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	loc, err := time.LoadLocation(cfg.Calendar.Location)
	if err != nil {
		_ = db.Close()
		return weekdataService.Sources{}, nil, nil, err
	}

	// Обёртка собирает метрики запросов и пула, если метрики включены
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)

	sources := weekdataService.Sources{
		Venues:    venueRepo.NewRepository(wrappedDB),
		Events:    eventRepo.NewRepository(wrappedDB, loc),
		Schedules: scheduleRepo.NewRepository(wrappedDB),
		Equipment: equipmentRepo.NewRepository(wrappedDB),
	}
	return sources, txmanager.NewTransactionManager(wrappedDB), func() { _ = db.Close() }, nil
}
