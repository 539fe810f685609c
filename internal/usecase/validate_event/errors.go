package validate_event

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrOutsideAcademicYear возвращается, когда событие вне учебного года
	ErrOutsideAcademicYear = errors.New("event is outside the academic year")

	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("venue not found")

	// ErrCalendarUnavailable возвращается, когда календарь не загружен
	ErrCalendarUnavailable = errors.New("academic calendar is not loaded")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
