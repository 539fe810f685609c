package calendarfile

import "errors"

var (
	// ErrNotFound возвращается, когда файл календаря не существует
	ErrNotFound = errors.New("calendarfile: file not found")

	// ErrRead возвращается при ошибке чтения файла
	ErrRead = errors.New("calendarfile: failed to read file")

	// ErrDecode возвращается, когда файл не является корректным JSON календаря
	ErrDecode = errors.New("calendarfile: failed to decode calendar")

	// ErrMissingSection возвращается, когда отсутствует обязательный раздел верхнего уровня
	ErrMissingSection = errors.New("calendarfile: missing required section")

	// ErrWatcher возвращается при ошибках наблюдения за файлом
	ErrWatcher = errors.New("calendarfile: watcher error")
)
