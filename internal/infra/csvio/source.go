package csvio

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
	"github.com/m04kA/SMC-EventScheduler/pkg/types"
)

// statusPending статус заявки, ожидающей размещения
const statusPending = "Pending"

// Files пути к CSV-файлам источника. Пустой путь означает пустую таблицу
type Files struct {
	Venues         string
	Events         string
	Preferences    string
	Schedules      string
	Equipment      string
	EventEquipment string
}

// Source источник данных из CSV-файлов (только чтение)
// Файлы перечитываются при каждом запросе, поэтому правки видны без перезапуска
type Source struct {
	files Files
	loc   *time.Location
}

// NewSource создает источник; loc - часовой пояс дат и времени в файлах событий
func NewSource(files Files, loc *time.Location) *Source {
	if loc == nil {
		loc = time.UTC
	}
	return &Source{files: files, loc: loc}
}

// List возвращает все площадки, отсортированные по id
func (s *Source) List(ctx context.Context) ([]*domain.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := readFile[venueRow](s.files.Venues)
	if err != nil {
		return nil, err
	}

	venues := make([]*domain.Venue, 0, len(rows))
	for i, row := range rows {
		if strings.TrimSpace(row.ID) == "" {
			return nil, fmt.Errorf("%w: %s line %d: empty id", ErrInvalidRow, s.files.Venues, i+2)
		}
		venues = append(venues, &domain.Venue{
			ID:            row.ID,
			Name:          row.Name,
			Building:      row.Building,
			Code:          row.Code,
			VenueType:     row.VenueType,
			Capacity:      row.Occupancy,
			BlockageGroup: row.BlockageGroup,
		})
	}
	sort.Slice(venues, func(i, j int) bool { return venues[i].ID < venues[j].ID })
	return venues, nil
}

// ListPending возвращает ожидающие заявки с requested_date в [from, to) вместе с предпочтениями
func (s *Source) ListPending(ctx context.Context, from, to time.Time) ([]*domain.EventRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := readFile[eventRow](s.files.Events)
	if err != nil {
		return nil, err
	}

	fromDay := domain.DateOnly(from.In(s.loc))
	toDay := domain.DateOnly(to.In(s.loc))

	events := make([]*domain.EventRequest, 0)
	for i, row := range rows {
		if !strings.EqualFold(row.ApprovalStatus, statusPending) && row.ApprovalStatus != "" {
			continue
		}
		date, err := time.ParseInLocation(domain.DateFormat, row.RequestedDate, s.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: requested_date: %v", ErrInvalidRow, s.files.Events, i+2, err)
		}
		if date.Before(fromDay) || !date.Before(toDay) {
			continue
		}
		start, end, err := s.combine(date, row.RequestedTimeStart, row.RequestedTimeEnd)
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", ErrInvalidRow, s.files.Events, i+2, err)
		}

		events = append(events, &domain.EventRequest{
			ID:                 row.ID,
			Name:               row.EventName,
			OrganizationID:     row.OrganizationID,
			RequestedVenueID:   row.RequestedVenueID,
			RequestedStart:     start,
			RequestedEnd:       end,
			EstimatedAttendees: row.EstimatedAttendees,
			RequiresFunding:    row.RequiresFunding,
		})
	}

	prefs, err := s.preferences()
	if err != nil {
		return nil, err
	}
	for _, e := range events {
		e.Preferences = prefs[e.ID]
	}

	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].RequestedStart.Equal(events[j].RequestedStart) {
			return events[i].RequestedStart.Before(events[j].RequestedStart)
		}
		return events[i].ID < events[j].ID
	})
	return events, nil
}

// ListOverlapping возвращает неоптимизированные расписания, пересекающие [from, to)
func (s *Source) ListOverlapping(ctx context.Context, from, to time.Time) ([]domain.Schedule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := readFile[scheduleRow](s.files.Schedules)
	if err != nil {
		return nil, err
	}

	schedules := make([]domain.Schedule, 0)
	for i, row := range rows {
		if row.IsOptimized {
			continue
		}
		start, err := time.Parse(time.RFC3339, row.ScheduledStartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: scheduled_start_time: %v", ErrInvalidRow, s.files.Schedules, i+2, err)
		}
		end, err := time.Parse(time.RFC3339, row.ScheduledEndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: scheduled_end_time: %v", ErrInvalidRow, s.files.Schedules, i+2, err)
		}
		if !end.After(start) {
			return nil, fmt.Errorf("%w: %s line %d: end must be after start", ErrInvalidRow, s.files.Schedules, i+2)
		}
		if !domain.Overlaps(start, end, from, to) {
			continue
		}
		schedules = append(schedules, domain.Schedule{
			ID:             row.ID,
			EventID:        row.EventID,
			VenueID:        row.VenueID,
			OrganizationID: row.OrganizationID,
			Start:          start.UTC(),
			End:            end.UTC(),
			IsOptimized:    row.IsOptimized,
		})
	}

	sort.SliceStable(schedules, func(i, j int) bool { return schedules[i].Start.Before(schedules[j].Start) })
	return schedules, nil
}

// ListInventory возвращает все единицы оборудования
func (s *Source) ListInventory(ctx context.Context) ([]domain.EquipmentItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := readFile[equipmentRow](s.files.Equipment)
	if err != nil {
		return nil, err
	}

	items := make([]domain.EquipmentItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, domain.EquipmentItem{ID: row.ID, Name: row.Name})
	}
	return items, nil
}

// ListRequests возвращает запросы оборудования указанных событий
func (s *Source) ListRequests(ctx context.Context, eventIDs []string) ([]domain.EquipmentRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(eventIDs) == 0 {
		return []domain.EquipmentRequest{}, nil
	}
	rows, err := readFile[eventEquipmentRow](s.files.EventEquipment)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]struct{}, len(eventIDs))
	for _, id := range eventIDs {
		wanted[id] = struct{}{}
	}

	requests := make([]domain.EquipmentRequest, 0)
	for _, row := range rows {
		if _, ok := wanted[row.EventID]; !ok {
			continue
		}
		qty := row.Quantity
		if qty <= 0 {
			qty = 1
		}
		requests = append(requests, domain.EquipmentRequest{EventID: row.EventID, EquipmentID: row.EquipmentID, Quantity: qty})
	}
	return requests, nil
}

func (s *Source) preferences() (map[string][]domain.Preference, error) {
	rows, err := readFile[preferenceRow](s.files.Preferences)
	if err != nil {
		return nil, err
	}

	result := make(map[string][]domain.Preference)
	for i, row := range rows {
		p := domain.Preference{EventID: row.EventID, PreferredVenueID: row.PreferredVenueID}
		if row.PreferredDate != "" {
			date, err := time.ParseInLocation(domain.DateFormat, row.PreferredDate, s.loc)
			if err != nil {
				return nil, fmt.Errorf("%w: %s line %d: preferred_date: %v", ErrInvalidRow, s.files.Preferences, i+2, err)
			}
			p.PreferredDate = &date
			if row.PreferredTimeSlotStart != "" && row.PreferredTimeSlotEnd != "" {
				start, end, err := s.combine(date, row.PreferredTimeSlotStart, row.PreferredTimeSlotEnd)
				if err != nil {
					return nil, fmt.Errorf("%w: %s line %d: %v", ErrInvalidRow, s.files.Preferences, i+2, err)
				}
				p.SlotStart, p.SlotEnd = &start, &end
			}
		}
		result[p.EventID] = append(result[p.EventID], p)
	}
	return result, nil
}

// combine собирает начало и конец из даты и времени HH:MM; пустое время дает нулевое значение
func (s *Source) combine(date time.Time, start, end string) (time.Time, time.Time, error) {
	if start == "" {
		return date, time.Time{}, nil
	}
	st, err := types.NewTimeStringFromString(trimSeconds(start))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start time: %v", err)
	}
	if end == "" {
		return st.On(date, s.loc), time.Time{}, nil
	}
	et, err := types.NewTimeStringFromString(trimSeconds(end))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end time: %v", err)
	}
	return st.On(date, s.loc), et.On(date, s.loc), nil
}

// trimSeconds "09:30:00" -> "09:30"
func trimSeconds(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 5 {
		return s[:5]
	}
	return s
}

func readFile[T any](path string) ([]*T, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOpen, path, err)
	}
	defer f.Close()

	var rows []*T
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}
	return rows, nil
}
