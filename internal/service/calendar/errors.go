package calendar

import "errors"

var (
	// ErrLoad возвращается, когда файл календаря не удалось прочитать
	ErrLoad = errors.New("calendar: failed to load calendar file")

	// ErrInvalidCalendar возвращается, когда календарь содержит ошибки
	ErrInvalidCalendar = errors.New("calendar: invalid calendar")

	// ErrNotLoaded возвращается, когда календарь еще не загружен
	ErrNotLoaded = errors.New("calendar: calendar is not loaded")

	// ErrInvalidRange возвращается при некорректном диапазоне дат
	ErrInvalidRange = errors.New("calendar: invalid date range")
)
