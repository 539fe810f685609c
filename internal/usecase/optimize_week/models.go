package optimize_week

import (
	"time"

	"github.com/m04kA/SMC-EventScheduler/internal/service/scoring"
)

// Params параметры генетического алгоритма
type Params struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	CrossoverRate  float64
	TournamentSize int
	// Workers число горутин для подсчета fitness (0 = GOMAXPROCS)
	Workers int
	// Seed фиксирует генератор случайных чисел (0 = случайный)
	Seed uint64
}

// DefaultParams параметры по умолчанию
func DefaultParams() Params {
	return Params{
		PopulationSize: 50,
		Generations:    50,
		MutationRate:   0.15,
		CrossoverRate:  0.8,
		TournamentSize: 5,
	}
}

// Request модель запроса на оптимизацию недели
type Request struct {
	WeekStart time.Time // первый день недели
	WeekEnd   time.Time // день после последнего дня недели
	Weights   *scoring.Weights
	Params    *Params // nil - параметры из конфигурации
}

// ProposedSchedule предлагаемое размещение события
type ProposedSchedule struct {
	EventID        string
	EventName      string
	OrganizationID string
	VenueID        string
	Start          time.Time
	End            time.Time
	Score          float64
}

// Report отчет о прогоне оптимизатора
type Report struct {
	Params          Params
	Summary         string
	InputEventCount int
	IsHecticWeek    bool
	HecticPeriod    string
	FinalFitness    float64
	FinalViolations int
	// ActiveGeneralConstraints общие блокировки недели в виде "причина: начало - конец"
	ActiveGeneralConstraints []string
	// ActiveVenueBlockages окна блокировок площадок по ключу группы; пусто в напряженную неделю
	ActiveVenueBlockages map[string][]string
	// UnscheduledAnalysis возможные причины по ID нераспределенного события
	UnscheduledAnalysis map[string][]string
}

// Response модель ответа с предложением расписания
// Предложение не сохраняется
type Response struct {
	ProposalID  string
	WeekStart   time.Time
	WeekEnd     time.Time
	Proposed    []ProposedSchedule
	Unscheduled []string
	Report      Report
}
