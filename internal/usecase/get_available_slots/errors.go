package get_available_slots

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("venue not found")

	// ErrInvalidDate возвращается для даты в прошлом
	ErrInvalidDate = errors.New("invalid date")

	// ErrOutsideAcademicYear возвращается для даты вне учебного года
	ErrOutsideAcademicYear = errors.New("date is outside the academic year")

	// ErrCalendarUnavailable возвращается, когда календарь не загружен
	ErrCalendarUnavailable = errors.New("academic calendar is not loaded")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
