package optimize_week

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrCalendarUnavailable возвращается, когда календарь не загружен
	ErrCalendarUnavailable = errors.New("academic calendar is not loaded")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
