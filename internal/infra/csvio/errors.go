package csvio

import "errors"

var (
	// ErrOpen возвращается, когда файл источника не удалось открыть
	ErrOpen = errors.New("csvio: failed to open file")

	// ErrDecode возвращается, когда CSV не удалось разобрать
	ErrDecode = errors.New("csvio: failed to decode csv")

	// ErrInvalidRow возвращается для строки с некорректными значениями
	ErrInvalidRow = errors.New("csvio: invalid row")

	// ErrEncode возвращается при ошибке записи CSV
	ErrEncode = errors.New("csvio: failed to encode csv")
)
