package calendarfile

import (
	"sync"
	"time"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
)

// Holder хранит текущий нормализованный календарь и отчет о его проверке
// Сохраненный календарь не изменяется, читатели получают его без копирования
type Holder struct {
	mu       sync.RWMutex
	calendar *domain.Calendar
	report   *domain.CalendarReport
	loadedAt time.Time
}

// NewHolder создает пустой holder
func NewHolder() *Holder {
	return &Holder{}
}

// Get возвращает текущий календарь, false если календарь еще не загружен
func (h *Holder) Get() (*domain.Calendar, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.calendar, h.calendar != nil
}

// Report возвращает отчет последней успешной загрузки
func (h *Holder) Report() *domain.CalendarReport {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.report
}

// LoadedAt возвращает время последней успешной загрузки
func (h *Holder) LoadedAt() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.loadedAt
}

// Set заменяет календарь
func (h *Holder) Set(calendar *domain.Calendar, report *domain.CalendarReport, loadedAt time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calendar = calendar
	h.report = report
	h.loadedAt = loadedAt
}
