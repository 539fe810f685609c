package constraints

import "errors"

var (
	// ErrInvalidWeek возвращается при некорректных границах недели
	ErrInvalidWeek = errors.New("constraints: invalid week range")

	// ErrCalendarUnavailable возвращается, когда календарь не загружен
	ErrCalendarUnavailable = errors.New("constraints: calendar is unavailable")
)
