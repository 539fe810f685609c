package optimize_week

import (
	"time"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
	"github.com/m04kA/SMC-EventScheduler/internal/service/scoring"
	optimizeWeek "github.com/m04kA/SMC-EventScheduler/internal/usecase/optimize_week"
	"github.com/m04kA/SMC-EventScheduler/pkg/ptr"
)

// OptimizeWeekRequest HTTP request model
type OptimizeWeekRequest struct {
	WeekStart string   `json:"weekStart"`
	WeekEnd   string   `json:"weekEnd,omitempty"` // по умолчанию weekStart + 7 дней
	Weights   *Weights `json:"weights,omitempty"`
	Params    *Params  `json:"params,omitempty"`
}

// Weights веса мягкой оценки; не заданные поля берутся по умолчанию
type Weights struct {
	VenuePreferenceMatch    *float64 `json:"venuePreferenceMatch,omitempty"`
	DateMatch               *float64 `json:"dateMatch,omitempty"`
	TimeslotMatch           *float64 `json:"timeslotMatch,omitempty"`
	CapacityFitPenalty      *float64 `json:"capacityFitPenalty,omitempty"`
	HecticWeekPriorityBonus *float64 `json:"hecticWeekPriorityBonus,omitempty"`
	BaseScore               *float64 `json:"baseScore,omitempty"`
	HardConstraintPenalty   *float64 `json:"hardConstraintPenalty,omitempty"`
}

// Params параметры алгоритма; не заданные поля берутся по умолчанию
type Params struct {
	PopulationSize *int     `json:"populationSize,omitempty"`
	Generations    *int     `json:"generations,omitempty"`
	MutationRate   *float64 `json:"mutationRate,omitempty"`
	CrossoverRate  *float64 `json:"crossoverRate,omitempty"`
	TournamentSize *int     `json:"tournamentSize,omitempty"`
	Seed           *uint64  `json:"seed,omitempty"`
}

// OptimizeWeekResponse HTTP response model
type OptimizeWeekResponse struct {
	ProposalID  string             `json:"proposalId"`
	WeekStart   string             `json:"weekStart"`
	WeekEnd     string             `json:"weekEnd"`
	Proposed    []ProposedSchedule `json:"proposedSchedules"`
	Unscheduled []string           `json:"unscheduledEventIds"`
	Report      Report             `json:"report"`
}

// ProposedSchedule предлагаемое размещение
type ProposedSchedule struct {
	EventID        string    `json:"eventId"`
	EventName      string    `json:"eventName"`
	OrganizationID string    `json:"organizationId,omitempty"`
	VenueID        string    `json:"venueId"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	Score          float64   `json:"score"`
}

// Report отчет оптимизатора
type Report struct {
	Summary                  string              `json:"summary"`
	InputEventCount          int                 `json:"inputEventCount"`
	IsHecticWeek             bool                `json:"isHecticWeek"`
	HecticPeriod             string              `json:"hecticPeriod,omitempty"`
	FinalFitness             float64             `json:"finalFitness"`
	FinalViolations          int                 `json:"finalHardViolations"`
	PopulationSize           int                 `json:"populationSize"`
	Generations              int                 `json:"generations"`
	MutationRate             float64             `json:"mutationRate"`
	CrossoverRate            float64             `json:"crossoverRate"`
	TournamentSize           int                 `json:"tournamentSize"`
	ActiveGeneralConstraints []string            `json:"activeGeneralConstraints"`
	ActiveVenueBlockages     map[string][]string `json:"activeVenueBlockages"`
	UnscheduledAnalysis      map[string][]string `json:"unscheduledAnalysis,omitempty"`
}

func (w *Weights) toScoring() *scoring.Weights {
	if w == nil {
		return nil
	}
	result := scoring.DefaultWeights()
	result.VenuePreferenceMatch = ptr.Deref(w.VenuePreferenceMatch, result.VenuePreferenceMatch)
	result.DateMatch = ptr.Deref(w.DateMatch, result.DateMatch)
	result.TimeslotMatch = ptr.Deref(w.TimeslotMatch, result.TimeslotMatch)
	result.CapacityFitPenalty = ptr.Deref(w.CapacityFitPenalty, result.CapacityFitPenalty)
	result.HecticWeekPriorityBonus = ptr.Deref(w.HecticWeekPriorityBonus, result.HecticWeekPriorityBonus)
	result.BaseScore = ptr.Deref(w.BaseScore, result.BaseScore)
	result.HardConstraintPenalty = ptr.Deref(w.HardConstraintPenalty, result.HardConstraintPenalty)
	return &result
}

func (p *Params) toUseCase() *optimizeWeek.Params {
	if p == nil {
		return nil
	}
	result := optimizeWeek.DefaultParams()
	result.PopulationSize = ptr.Deref(p.PopulationSize, result.PopulationSize)
	result.Generations = ptr.Deref(p.Generations, result.Generations)
	result.MutationRate = ptr.Deref(p.MutationRate, result.MutationRate)
	result.CrossoverRate = ptr.Deref(p.CrossoverRate, result.CrossoverRate)
	result.TournamentSize = ptr.Deref(p.TournamentSize, result.TournamentSize)
	result.Seed = ptr.Deref(p.Seed, result.Seed)
	return &result
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *OptimizeWeekRequest) ToUseCaseRequest() (*optimizeWeek.Request, error) {
	start, err := time.Parse(domain.DateFormat, r.WeekStart)
	if err != nil {
		return nil, err
	}

	end := start.AddDate(0, 0, domain.MaxWeekDays)
	if r.WeekEnd != "" {
		end, err = time.Parse(domain.DateFormat, r.WeekEnd)
		if err != nil {
			return nil, err
		}
	}

	return &optimizeWeek.Request{
		WeekStart: start,
		WeekEnd:   end,
		Weights:   r.Weights.toScoring(),
		Params:    r.Params.toUseCase(),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *optimizeWeek.Response) *OptimizeWeekResponse {
	proposed := make([]ProposedSchedule, len(resp.Proposed))
	for i, p := range resp.Proposed {
		proposed[i] = ProposedSchedule{
			EventID:        p.EventID,
			EventName:      p.EventName,
			OrganizationID: p.OrganizationID,
			VenueID:        p.VenueID,
			Start:          p.Start,
			End:            p.End,
			Score:          p.Score,
		}
	}

	report := resp.Report
	return &OptimizeWeekResponse{
		ProposalID:  resp.ProposalID,
		WeekStart:   resp.WeekStart.Format(domain.DateFormat),
		WeekEnd:     resp.WeekEnd.Format(domain.DateFormat),
		Proposed:    proposed,
		Unscheduled: resp.Unscheduled,
		Report: Report{
			Summary:                  report.Summary,
			InputEventCount:          report.InputEventCount,
			IsHecticWeek:             report.IsHecticWeek,
			HecticPeriod:             report.HecticPeriod,
			FinalFitness:             report.FinalFitness,
			FinalViolations:          report.FinalViolations,
			PopulationSize:           report.Params.PopulationSize,
			Generations:              report.Params.Generations,
			MutationRate:             report.Params.MutationRate,
			CrossoverRate:            report.Params.CrossoverRate,
			TournamentSize:           report.Params.TournamentSize,
			ActiveGeneralConstraints: report.ActiveGeneralConstraints,
			ActiveVenueBlockages:     report.ActiveVenueBlockages,
			UnscheduledAnalysis:      report.UnscheduledAnalysis,
		},
	}
}
