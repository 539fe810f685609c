package optimize_week

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.WeekStart.IsZero() || req.WeekEnd.IsZero() {
		return fmt.Errorf("%w: week start and end are required", ErrInvalidInput)
	}

	if !req.WeekEnd.After(req.WeekStart) {
		return fmt.Errorf("%w: week end must be after week start", ErrInvalidInput)
	}

	if req.Params != nil {
		if err := validateParams(*req.Params); err != nil {
			return err
		}
	}

	return nil
}

// validateParams проверяет параметры генетического алгоритма
func validateParams(p Params) error {
	switch {
	case p.PopulationSize < 2:
		return fmt.Errorf("%w: population size must be at least 2", ErrInvalidInput)
	case p.Generations < 1:
		return fmt.Errorf("%w: generations must be positive", ErrInvalidInput)
	case p.MutationRate < 0 || p.MutationRate > 1:
		return fmt.Errorf("%w: mutation rate must be in [0, 1]", ErrInvalidInput)
	case p.CrossoverRate < 0 || p.CrossoverRate > 1:
		return fmt.Errorf("%w: crossover rate must be in [0, 1]", ErrInvalidInput)
	case p.TournamentSize < 1:
		return fmt.Errorf("%w: tournament size must be positive", ErrInvalidInput)
	case p.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative", ErrInvalidInput)
	}
	return nil
}
