package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
	"github.com/m04kA/SMC-EventScheduler/internal/service/slotcheck"
	"github.com/m04kA/SMC-EventScheduler/pkg/types"
)

// generateTimeSlots генерирует список всех возможных временных слотов на день
// Слоты генерируются с начала дня (конец ночного запрета) с фиксированным шагом slotDuration
// Затем фильтруются с учетом текущего времени и минимального времени до начала
func generateTimeSlots(
	dayStart types.TimeString,
	dayEnd types.TimeString,
	slotDuration int,
	requestDate time.Time,
	now time.Time,
	minNoticeMinutes int,
) ([]types.TimeString, error) {
	// Проверяем, что дата не в прошлом
	if isDateInPast(requestDate, now) {
		return []types.TimeString{}, nil
	}

	// Шаг 1: Генерируем ВСЕ слоты от начала дня до начала ночного запрета с фиксированным шагом
	allSlots := make([]types.TimeString, 0)
	currentSlot := dayStart

	for currentSlot.IsBefore(dayEnd) {
		// Проверяем, что слот не выходит за конец дня
		if currentSlot.Minutes()+slotDuration > dayEnd.Minutes() {
			break
		}
		slotEnd, err := currentSlot.AddMinutes(slotDuration)
		if err != nil {
			return nil, err
		}

		allSlots = append(allSlots, currentSlot)
		currentSlot = slotEnd
	}

	// Шаг 2: Если дата НЕ сегодня - возвращаем все слоты
	if !isSameDay(requestDate, now) {
		return allSlots, nil
	}

	// Шаг 3: Если дата - сегодня, оставляем слоты не раньше now + minNotice
	minAllowed := now.Add(time.Duration(minNoticeMinutes) * time.Minute)

	availableSlots := make([]types.TimeString, 0)
	for _, slot := range allSlots {
		if !slot.On(requestDate, requestDate.Location()).Before(minAllowed) {
			availableSlots = append(availableSlots, slot)
		}
	}

	return availableSlots, nil
}

// markSlots проверяет каждый слот жесткими ограничениями и отмечает первую причину блокировки
func markSlots(
	checker *slotcheck.Checker,
	probe *domain.EventRequest,
	venueID string,
	slots []types.TimeString,
	slotDuration int,
	date time.Time,
) []Slot {
	loc := date.Location()
	result := make([]Slot, 0, len(slots))

	for _, slotStart := range slots {
		start := slotStart.On(date, loc)
		end := start.Add(time.Duration(slotDuration) * time.Minute)

		slot := Slot{
			StartTime: slotStart,
			EndTime:   types.NewTimeString(end),
			Start:     start,
			End:       end,
			Available: true,
		}
		if v, blocked := checker.FirstViolation(probe, venueID, start, end, nil); blocked {
			slot.Available = false
			slot.Reason = v.Reason
			slot.Kind = v.Kind
		}
		result = append(result, slot)
	}

	return result
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
