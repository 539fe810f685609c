package calendarfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Load читает и декодирует файл календаря
// Неизвестные ключи игнорируются, отсутствие обязательного раздела является ошибкой
func Load(path string) (*RawCalendar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrRead, path, err)
	}

	return Decode(data)
}

// Decode декодирует содержимое файла календаря
func Decode(data []byte) (*RawCalendar, error) {
	// Сначала проверяем наличие разделов верхнего уровня
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(data, &sections); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	for _, name := range RequiredSections {
		raw, ok := sections[name]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return nil, fmt.Errorf("%w: %s", ErrMissingSection, name)
		}
	}

	var cal RawCalendar
	if err := json.Unmarshal(data, &cal); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return &cal, nil
}
