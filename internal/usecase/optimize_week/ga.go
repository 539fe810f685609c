package optimize_week

import (
	"context"
	"math"
	"math/rand/v2"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
	"github.com/m04kA/SMC-EventScheduler/internal/service/scoring"
	"github.com/m04kA/SMC-EventScheduler/internal/service/slotcheck"
	"github.com/m04kA/SMC-EventScheduler/pkg/types"
)

const (
	// slotAttempts попыток найти случайный слот до отказа
	slotAttempts = 20
	// scheduleProbability вероятность разместить событие в начальной популяции
	scheduleProbability = 0.9
	// requestedProbability вероятность взять запрошенное время в начальной популяции
	requestedProbability = 0.5
	// swapProbability вероятность обмена генов при скрещивании
	swapProbability = 0.5
)

// startMinutes минуты начала случайного слота
var startMinutes = []int{0, 15, 30, 45}

// gene размещение одного события; Scheduled=false - событие не размещено
type gene struct {
	Scheduled bool
	VenueID   string
	Start     time.Time
	End       time.Time
}

// chromosome гены по индексу события в WeekData.Pending
type chromosome []gene

// evaluation результат оценки хромосомы
type evaluation struct {
	Fitness    float64
	Violations int
	Scores     []float64 // мягкая оценка по событию, 0 для неразмещенных и нарушающих
}

// optimizer генетический алгоритм для одной недели
// Генератор случайных чисел используется только в одной горутине
type optimizer struct {
	data     *domain.WeekData
	checker  *slotcheck.Checker
	scoreCtx scoring.Context
	weights  scoring.Weights
	params   Params
	rng      *rand.Rand
	loc      *time.Location
	days     []time.Time
	dayStart types.TimeString
	dayEnd   types.TimeString
}

func newOptimizer(data *domain.WeekData, cal *domain.Calendar, weights scoring.Weights, params Params) *optimizer {
	week := data.Constraints
	loc := week.Location
	if loc == nil {
		loc = time.UTC
	}

	seed := params.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	var days []time.Time
	for d := week.WeekStart; d.Before(week.WeekEnd); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	dayStart, dayEnd := dayWindow(week)

	return &optimizer{
		data:     data,
		checker:  slotcheck.NewChecker(data),
		scoreCtx: scoring.Context{Calendar: cal, Location: loc, HecticWeek: week.IsHecticWeek},
		weights:  weights,
		params:   params,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		loc:      loc,
		days:     days,
		dayStart: dayStart,
		dayEnd:   dayEnd,
	}
}

// dayWindow дневное окно недели вне ночного запрета
func dayWindow(week domain.WeekConstraints) (types.TimeString, types.TimeString) {
	start, end := week.DayStart, week.DayEnd
	if start == "" {
		start = types.TimeString(domain.DefaultCurfewEnd)
	}
	if end == "" {
		end = types.TimeString(domain.DefaultCurfewStart)
	}
	// Запрет не переходит через полночь: день начинается в 00:00
	if !start.IsBefore(end) {
		start = "00:00"
	}
	return start, end
}

// run возвращает лучшую найденную хромосому
func (o *optimizer) run(ctx context.Context, logger Logger) (chromosome, evaluation, error) {
	population := o.initialize()

	var best chromosome
	bestEval := evaluation{Fitness: math.Inf(-1), Violations: math.MaxInt}

	for gen := 0; gen < o.params.Generations; gen++ {
		evals, err := o.evaluate(ctx, population)
		if err != nil {
			return nil, evaluation{}, err
		}

		idx := 0
		for i := range evals {
			if evals[i].Fitness > evals[idx].Fitness {
				idx = i
			}
		}
		if evals[idx].Violations < bestEval.Violations ||
			(evals[idx].Violations == bestEval.Violations && evals[idx].Fitness > bestEval.Fitness) {
			best = slices.Clone(population[idx])
			bestEval = evals[idx]
		}

		if (gen+1)%10 == 0 || gen+1 == o.params.Generations {
			logger.Info("OptimizeWeek: generation %d/%d, best fitness=%.2f, violations=%d",
				gen+1, o.params.Generations, bestEval.Fitness, bestEval.Violations)
		}

		// Элитизм: лучшая хромосома переходит в следующее поколение без изменений
		next := make([]chromosome, 0, o.params.PopulationSize)
		next = append(next, slices.Clone(best))
		for len(next) < o.params.PopulationSize {
			parent1 := o.selection(population, evals)
			parent2 := o.selection(population, evals)
			child1, child2 := o.crossover(parent1, parent2)
			next = append(next, o.mutate(child1))
			if len(next) < o.params.PopulationSize {
				next = append(next, o.mutate(child2))
			}
		}
		population = next
	}

	return best, bestEval, nil
}

// initialize создает начальную популяцию
func (o *optimizer) initialize() []chromosome {
	population := make([]chromosome, o.params.PopulationSize)
	for i := range population {
		ch := make(chromosome, len(o.data.Pending))
		if len(o.data.VenueOrder) == 0 {
			population[i] = ch
			continue
		}
		for j, event := range o.data.Pending {
			if o.rng.Float64() >= scheduleProbability {
				continue
			}
			venueID := o.randomVenue()
			if o.rng.Float64() < requestedProbability && o.requestedFits(event) {
				ch[j] = gene{Scheduled: true, VenueID: venueID, Start: event.RequestedStart, End: event.RequestedEnd}
				continue
			}
			if g, ok := o.randomSlot(event, venueID); ok {
				ch[j] = g
			}
		}
		population[i] = ch
	}
	return population
}

// evaluate считает fitness поколения параллельно
func (o *optimizer) evaluate(ctx context.Context, population []chromosome) ([]evaluation, error) {
	workers := o.params.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	evals := make([]evaluation, len(population))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range population {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			evals[i] = o.fitness(population[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return evals, nil
}

// fitness считает мягкую оценку минус штраф за события с нарушениями
// Событие с нарушением считается один раз и не получает мягкую оценку
func (o *optimizer) fitness(ch chromosome) evaluation {
	placements := make([]slotcheck.Placement, 0, len(ch))
	for i, g := range ch {
		if g.Scheduled {
			placements = append(placements, slotcheck.Placement{
				EventID: o.data.Pending[i].ID,
				VenueID: g.VenueID,
				Start:   g.Start,
				End:     g.End,
			})
		}
	}

	eval := evaluation{Scores: make([]float64, len(ch))}
	soft := 0.0
	for i, g := range ch {
		if !g.Scheduled {
			continue
		}
		event := o.data.Pending[i]
		if len(o.checker.Check(event, g.VenueID, g.Start, g.End, placements)) > 0 {
			eval.Violations++
			continue
		}
		score := scoring.Score(event, scoring.Placement{
			VenueID: g.VenueID,
			Venue:   o.data.Venues[g.VenueID],
			Start:   g.Start,
			End:     g.End,
		}, o.scoreCtx, o.weights).Total()
		eval.Scores[i] = score
		soft += score
	}
	eval.Fitness = scoring.Fitness(soft, eval.Violations, o.weights)
	return eval
}

// selection турнирный отбор
func (o *optimizer) selection(population []chromosome, evals []evaluation) chromosome {
	k := min(o.params.TournamentSize, len(population))
	contenders := o.rng.Perm(len(population))[:k]
	best := contenders[0]
	for _, idx := range contenders[1:] {
		if evals[idx].Fitness > evals[best].Fitness {
			best = idx
		}
	}
	return population[best]
}

// crossover равномерное скрещивание
func (o *optimizer) crossover(parent1, parent2 chromosome) (chromosome, chromosome) {
	child1, child2 := slices.Clone(parent1), slices.Clone(parent2)
	if o.rng.Float64() >= o.params.CrossoverRate {
		return child1, child2
	}
	for i := range child1 {
		if o.rng.Float64() >= swapProbability {
			child1[i], child2[i] = child2[i], child1[i]
		}
	}
	return child1, child2
}

// mutate переносит события в случайные слоты; если слот не найден, событие снимается
func (o *optimizer) mutate(ch chromosome) chromosome {
	if len(o.data.VenueOrder) == 0 {
		return ch
	}
	for i, event := range o.data.Pending {
		if o.rng.Float64() >= o.params.MutationRate {
			continue
		}
		g, _ := o.randomSlot(event, "")
		ch[i] = g
	}
	return ch
}

// randomSlot выбирает случайный слот не в воскресенье внутри дневного окна с шагом 15 минут,
// сохраняя длительность события
// Пустой venueID - площадка выбирается заново на каждой попытке
func (o *optimizer) randomSlot(event *domain.EventRequest, venueID string) (gene, bool) {
	if len(o.days) == 0 || !o.dayStart.IsBefore(o.dayEnd) {
		return gene{}, false
	}
	duration := event.Duration()
	firstHour := o.dayStart.Minutes() / 60
	lastHour := (o.dayEnd.Minutes() - 1) / 60

	for attempt := 0; attempt < slotAttempts; attempt++ {
		venue := venueID
		if venue == "" {
			venue = o.randomVenue()
		}
		day := o.days[o.rng.IntN(len(o.days))]
		if day.Weekday() == time.Sunday {
			continue
		}
		hour := firstHour + o.rng.IntN(lastHour-firstHour+1)
		minute := startMinutes[o.rng.IntN(len(startMinutes))]

		start := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, o.loc)
		end := start.Add(duration)
		if start.Before(o.dayStart.On(day, o.loc)) || end.After(o.dayEnd.On(day, o.loc)) {
			continue
		}
		return gene{Scheduled: true, VenueID: venue, Start: start.UTC(), End: end.UTC()}, true
	}
	return gene{}, false
}

// requestedFits проверяет, что запрошенное время можно взять как есть:
// внутри недели, не в воскресенье и не в ночной запрет
func (o *optimizer) requestedFits(event *domain.EventRequest) bool {
	if event.RequestedStart.IsZero() || !event.RequestedEnd.After(event.RequestedStart) {
		return false
	}
	local := event.RequestedStart.In(o.loc)
	if !o.data.Constraints.ContainsDate(local) || local.Weekday() == time.Sunday {
		return false
	}
	start := types.NewTimeString(local)
	return !start.IsBefore(o.dayStart) && start.IsBefore(o.dayEnd)
}

func (o *optimizer) randomVenue() string {
	return o.data.VenueOrder[o.rng.IntN(len(o.data.VenueOrder))]
}
