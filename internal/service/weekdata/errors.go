package weekdata

import "errors"

var (
	// ErrSourceUnavailable возвращается, когда источник данных не ответил
	ErrSourceUnavailable = errors.New("weekdata: source unavailable")
)
