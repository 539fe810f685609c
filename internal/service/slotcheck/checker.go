package slotcheck

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
)

// Placement событие, размещенное на площадке в интервале [Start, End)
type Placement struct {
	EventID string
	VenueID string
	Start   time.Time
	End     time.Time
}

// Checker проверяет жесткие ограничения для слотов одной недели
// Безопасен для одновременного использования: после создания не изменяется
type Checker struct {
	data     *domain.WeekData
	existing []Placement
	byVenue  map[string][]Placement
}

// NewChecker создает проверку по данным недели
func NewChecker(data *domain.WeekData) *Checker {
	c := &Checker{
		data:    data,
		byVenue: make(map[string][]Placement),
	}
	for _, s := range data.Existing {
		p := Placement{EventID: s.EventID, VenueID: s.VenueID, Start: s.Start, End: s.End}
		c.existing = append(c.existing, p)
		c.byVenue[s.VenueID] = append(c.byVenue[s.VenueID], p)
	}
	return c
}

// Data возвращает данные недели
func (c *Checker) Data() *domain.WeekData {
	return c.data
}

// Check возвращает все нарушения жестких ограничений для события на площадке venueID в интервале [start, end)
// others - уже размещенные события-кандидаты (например, остальные гены хромосомы)
// Порядок нарушений: неделя, общие блокировки, площадка, блокировки площадки, двойное бронирование, оборудование, вместимость
func (c *Checker) Check(event *domain.EventRequest, venueID string, start, end time.Time, others []Placement) []domain.Violation {
	var violations []domain.Violation
	week := c.data.Constraints
	loc := week.Location
	if loc == nil {
		loc = time.UTC
	}
	localStart := start.In(loc)

	// 1. Слот внутри целевой недели
	if !week.ContainsDate(start) {
		violations = append(violations, domain.Violation{
			Kind:   domain.ViolationOutsideWeek,
			Reason: fmt.Sprintf("Slot Outside Target Week (%s)", localStart.Format(domain.DateFormat)),
		})
	}

	// 2. Общие блокировки: праздники, воскресенья, ночной запрет
	for _, slot := range week.GeneralSlots {
		if slot.Overlaps(start, end) {
			violations = append(violations, domain.Violation{Kind: domain.ViolationBlackout, Reason: slot.Reason})
			break
		}
	}

	// 3. Площадка существует
	venue, venueFound := c.data.Venues[venueID]
	if !venueFound {
		violations = append(violations, domain.Violation{
			Kind:   domain.ViolationVenueNotFound,
			Reason: fmt.Sprintf("Venue Not Found (%s)", venueID),
		})
	}

	// 4. Стандартные блокировки площадки
	if venueFound && !week.IsHecticWeek {
		if v, ok := c.venueBlockage(venue, localStart, start, end); ok {
			violations = append(violations, v)
		}
	}

	// 5. Двойное бронирование площадки
	if v, ok := c.doubleBooking(event.ID, venueID, start, end, others); ok {
		violations = append(violations, v)
	}

	// 6. Оборудование с учетом одновременно идущих событий
	violations = append(violations, c.equipment(event.ID, start, end, others)...)

	// 7. Вместимость
	if venueFound && !venue.HasCapacityFor(event.EstimatedAttendees) {
		violations = append(violations, domain.Violation{
			Kind:   domain.ViolationCapacityExceeded,
			Reason: fmt.Sprintf("Capacity Exceeded (Needs %d, Venue Has %d)", event.EstimatedAttendees, venue.Capacity),
		})
	}

	return violations
}

// FirstViolation возвращает первое нарушение в порядке Check
func (c *Checker) FirstViolation(event *domain.EventRequest, venueID string, start, end time.Time, others []Placement) (domain.Violation, bool) {
	violations := c.Check(event, venueID, start, end, others)
	if len(violations) == 0 {
		return domain.Violation{}, false
	}
	return violations[0], true
}

// BlockageKey ключ стандартных блокировок для группы площадок и дня недели, "" для воскресенья
func BlockageKey(group string, day time.Weekday) string {
	switch day {
	case time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday:
		return group + domain.BlockageSuffixWeekday
	case time.Saturday:
		return group + domain.BlockageSuffixSaturday
	default:
		return ""
	}
}

func (c *Checker) venueBlockage(venue *domain.Venue, localStart, start, end time.Time) (domain.Violation, bool) {
	group := venue.Group()
	if group == "" {
		return domain.Violation{}, false
	}
	key := BlockageKey(group, localStart.Weekday())
	if key == "" {
		return domain.Violation{}, false
	}

	loc := localStart.Location()
	day := domain.DateOnly(localStart)
	for _, w := range c.data.Constraints.VenueBlockages[key] {
		if !w.AppliesTo(localStart.Weekday()) {
			continue
		}
		blockStart := w.Start.On(day, loc)
		blockEnd := w.End.On(day, loc)
		if domain.Overlaps(start, end, blockStart, blockEnd) {
			dayLabel := ""
			if w.Day != nil {
				dayLabel = " (" + w.Day.String() + ")"
			}
			return domain.Violation{
				Kind:   domain.ViolationVenueBlockage,
				Reason: fmt.Sprintf("Venue Blockage: %s%s (%s-%s)", key, dayLabel, w.Start, w.End),
			}, true
		}
	}
	return domain.Violation{}, false
}

func (c *Checker) doubleBooking(eventID, venueID string, start, end time.Time, others []Placement) (domain.Violation, bool) {
	conflict := func(p Placement, source string) (domain.Violation, bool) {
		if p.EventID == eventID || !domain.Overlaps(start, end, p.Start, p.End) {
			return domain.Violation{}, false
		}
		loc := c.data.Constraints.Location
		if loc == nil {
			loc = time.UTC
		}
		return domain.Violation{
			Kind: domain.ViolationDoubleBooking,
			Reason: fmt.Sprintf("Double Booking: venue %s is taken by %s event %s (%s - %s)", venueID, source, p.EventID,
				p.Start.In(loc).Format("2006-01-02 15:04"), p.End.In(loc).Format("15:04")),
		}, true
	}

	for _, p := range c.byVenue[venueID] {
		if v, ok := conflict(p, "scheduled"); ok {
			return v, true
		}
	}
	for _, p := range others {
		if p.VenueID != venueID {
			continue
		}
		if v, ok := conflict(p, "proposed"); ok {
			return v, true
		}
	}
	return domain.Violation{}, false
}

func (c *Checker) equipment(eventID string, start, end time.Time, others []Placement) []domain.Violation {
	requests := c.data.EquipmentByEvent[eventID]
	if len(requests) == 0 {
		return nil
	}
	inv := c.data.Inventory

	// Собственные запросы: неизвестное оборудование
	for _, req := range requests {
		name, ok := inv.IDToName[req.EquipmentID]
		if !ok {
			return []domain.Violation{{
				Kind:   domain.ViolationEquipmentUnknown,
				Reason: fmt.Sprintf("Equipment Unknown: requested equipment id '%s' not found", req.EquipmentID),
			}}
		}
		if _, ok := inv.Counts[name]; !ok {
			return []domain.Violation{{
				Kind:   domain.ViolationEquipmentUnknown,
				Reason: fmt.Sprintf("Equipment Unknown: '%s' not found in inventory", name),
			}}
		}
	}

	// Потребность всех событий, идущих одновременно с этим
	concurrent := map[string]struct{}{eventID: {}}
	for _, p := range c.existing {
		if p.EventID != eventID && domain.Overlaps(start, end, p.Start, p.End) {
			concurrent[p.EventID] = struct{}{}
		}
	}
	for _, p := range others {
		if p.EventID != eventID && domain.Overlaps(start, end, p.Start, p.End) {
			concurrent[p.EventID] = struct{}{}
		}
	}

	needed := make(map[string]int)
	for id := range concurrent {
		for _, req := range c.data.EquipmentByEvent[id] {
			name, ok := inv.IDToName[req.EquipmentID]
			if !ok {
				continue
			}
			qty := req.Quantity
			if qty <= 0 {
				qty = 1
			}
			needed[name] += qty
		}
	}

	// Проверяем только оборудование, которое запрашивает само событие
	own := make([]string, 0, len(requests))
	seen := make(map[string]struct{})
	for _, req := range requests {
		name := inv.IDToName[req.EquipmentID]
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		own = append(own, name)
	}
	sort.Strings(own)

	for _, name := range own {
		if needed[name] > inv.Counts[name] {
			return []domain.Violation{{
				Kind:   domain.ViolationEquipmentShortage,
				Reason: fmt.Sprintf("Equipment Unavailable: '%s' (Needs %d, Has %d)", name, needed[name], inv.Counts[name]),
			}}
		}
	}
	return nil
}
