package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-EventScheduler/pkg/types"
)

var (
	// ErrLoad возвращается, когда файл конфигурации не удалось прочитать или разобрать
	ErrLoad = errors.New("config: failed to load")

	// ErrInvalid возвращается, когда конфигурация не проходит валидацию
	ErrInvalid = errors.New("config: invalid configuration")
)

// Типы источников данных
const (
	SourcePostgres = "postgres"
	SourceCSV      = "csv"
)

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Database   DatabaseConfig   `toml:"database"`
	Sources    SourcesConfig    `toml:"sources"`
	Calendar   CalendarConfig   `toml:"calendar"`
	Scheduling SchedulingConfig `toml:"scheduling"`
	Optimizer  OptimizerConfig  `toml:"optimizer"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// DatabaseConfig настройки подключения к PostgreSQL (только чтение)
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// SourcesConfig выбор источника заявок, площадок и расписаний
type SourcesConfig struct {
	Kind string `toml:"kind"` // postgres | csv
	// Файлы для kind = "csv"
	VenuesFile      string `toml:"venues_file"`
	EventsFile      string `toml:"events_file"`
	PreferencesFile string `toml:"preferences_file"`
	SchedulesFile   string `toml:"schedules_file"`
	EquipmentFile   string `toml:"equipment_file"`
	// Запросы оборудования (event_id, equipment_id, quantity)
	EventEquipmentFile string `toml:"event_equipment_file"`
}

// CalendarConfig настройки файла учебного календаря
type CalendarConfig struct {
	Path string `toml:"path"`
	// Location часовой пояс, в котором заданы даты и время календаря
	Location string `toml:"location"`
	// Watch перечитывать файл при изменении
	Watch      bool `toml:"watch"`
	DebounceMs int  `toml:"debounce_ms"`
	// CutoffMonth месяцы раньше него относятся ко второму году учебного года
	CutoffMonth int `toml:"cutoff_month"`
}

// SchedulingConfig правила построения недельных ограничений
type SchedulingConfig struct {
	BlockageCategories  []string `toml:"blockage_categories"`
	PreExamDays         int      `toml:"pre_exam_days"`
	CurfewStart         string   `toml:"curfew_start"`
	CurfewEnd           string   `toml:"curfew_end"`
	SlotDurationMinutes int      `toml:"slot_duration_minutes"`
	MinNoticeMinutes    int      `toml:"min_notice_minutes"`
}

// OptimizerConfig параметры генетического алгоритма
type OptimizerConfig struct {
	PopulationSize int     `toml:"population_size"`
	Generations    int     `toml:"generations"`
	MutationRate   float64 `toml:"mutation_rate"`
	CrossoverRate  float64 `toml:"crossover_rate"`
	TournamentSize int     `toml:"tournament_size"`
	// Workers число горутин для подсчета fitness (0 = GOMAXPROCS)
	Workers int `toml:"workers"`
	// Seed фиксирует генератор случайных чисел (0 = случайный)
	Seed uint64 `toml:"seed"`
}

// Load читает конфигурацию из TOML файла поверх значений по умолчанию и валидирует
// Явно заданные в файле значения, включая 0, не заменяются значениями по умолчанию
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoad, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default конфигурация со значениями по умолчанию
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 60
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "event_scheduler"
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Sources.Kind == "" {
		c.Sources.Kind = SourcePostgres
	}

	if c.Calendar.Path == "" {
		c.Calendar.Path = "academic_calendar_2024_2025.json"
	}
	if c.Calendar.Location == "" {
		c.Calendar.Location = "Asia/Manila"
	}
	if c.Calendar.DebounceMs == 0 {
		c.Calendar.DebounceMs = 500
	}
	if c.Calendar.CutoffMonth == 0 {
		c.Calendar.CutoffMonth = int(time.July)
	}

	if len(c.Scheduling.BlockageCategories) == 0 {
		c.Scheduling.BlockageCategories = []string{"national_holidays", "school_holidays_breaks", "examination_periods"}
	}
	if c.Scheduling.PreExamDays == 0 {
		c.Scheduling.PreExamDays = 7
	}
	if c.Scheduling.CurfewStart == "" {
		c.Scheduling.CurfewStart = "22:00"
	}
	if c.Scheduling.CurfewEnd == "" {
		c.Scheduling.CurfewEnd = "06:00"
	}
	if c.Scheduling.SlotDurationMinutes == 0 {
		c.Scheduling.SlotDurationMinutes = 30
	}
	if c.Scheduling.MinNoticeMinutes == 0 {
		c.Scheduling.MinNoticeMinutes = 60
	}

	if c.Optimizer.PopulationSize == 0 {
		c.Optimizer.PopulationSize = 50
	}
	if c.Optimizer.Generations == 0 {
		c.Optimizer.Generations = 50
	}
	if c.Optimizer.MutationRate == 0 {
		c.Optimizer.MutationRate = 0.15
	}
	if c.Optimizer.CrossoverRate == 0 {
		c.Optimizer.CrossoverRate = 0.8
	}
	if c.Optimizer.TournamentSize == 0 {
		c.Optimizer.TournamentSize = 5
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port must be in 1..65535")
	}

	switch c.Sources.Kind {
	case SourcePostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			problems = append(problems, "database.host and database.dbname are required for sources.kind = postgres")
		}
	case SourceCSV:
		if c.Sources.VenuesFile == "" {
			problems = append(problems, "sources.venues_file is required for sources.kind = csv")
		}
	default:
		problems = append(problems, fmt.Sprintf("sources.kind must be %q or %q, got %q", SourcePostgres, SourceCSV, c.Sources.Kind))
	}

	if _, err := time.LoadLocation(c.Calendar.Location); err != nil {
		problems = append(problems, fmt.Sprintf("calendar.location %q: %v", c.Calendar.Location, err))
	}
	if c.Calendar.CutoffMonth < 1 || c.Calendar.CutoffMonth > 12 {
		problems = append(problems, "calendar.cutoff_month must be in 1..12")
	}
	if c.Calendar.DebounceMs < 0 {
		problems = append(problems, "calendar.debounce_ms must not be negative")
	}

	if _, err := types.NewTimeStringFromString(c.Scheduling.CurfewStart); err != nil {
		problems = append(problems, fmt.Sprintf("scheduling.curfew_start: %v", err))
	}
	if _, err := types.NewTimeStringFromString(c.Scheduling.CurfewEnd); err != nil {
		problems = append(problems, fmt.Sprintf("scheduling.curfew_end: %v", err))
	}
	if c.Scheduling.PreExamDays < 0 {
		problems = append(problems, "scheduling.pre_exam_days must not be negative")
	}
	if c.Scheduling.SlotDurationMinutes < 5 || c.Scheduling.SlotDurationMinutes > 480 {
		problems = append(problems, "scheduling.slot_duration_minutes must be in 5..480")
	}
	if c.Scheduling.MinNoticeMinutes < 0 {
		problems = append(problems, "scheduling.min_notice_minutes must not be negative")
	}

	if c.Optimizer.PopulationSize < 2 {
		problems = append(problems, "optimizer.population_size must be at least 2")
	}
	if c.Optimizer.Generations < 1 {
		problems = append(problems, "optimizer.generations must be positive")
	}
	if c.Optimizer.MutationRate < 0 || c.Optimizer.MutationRate > 1 {
		problems = append(problems, "optimizer.mutation_rate must be in [0, 1]")
	}
	if c.Optimizer.CrossoverRate < 0 || c.Optimizer.CrossoverRate > 1 {
		problems = append(problems, "optimizer.crossover_rate must be in [0, 1]")
	}
	if c.Optimizer.TournamentSize < 1 {
		problems = append(problems, "optimizer.tournament_size must be positive")
	}
	if c.Optimizer.Workers < 0 {
		problems = append(problems, "optimizer.workers must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// DebounceInterval интервал подавления повторных событий файловой системы
func (c CalendarConfig) DebounceInterval() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}
