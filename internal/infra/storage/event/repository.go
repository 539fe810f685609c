package event

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
	"github.com/m04kA/SMC-EventScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-EventScheduler/pkg/psqlbuilder"
	"github.com/m04kA/SMC-EventScheduler/pkg/types"
)

// StatusPending статус заявки, ожидающей размещения
const StatusPending = "Pending"

// Repository репозиторий заявок на события и их предпочтений (только чтение)
type Repository struct {
	db  DBExecutor
	loc *time.Location
}

// NewRepository создает новый экземпляр репозитория событий
// loc - часовой пояс, в котором хранятся даты и время заявок
func NewRepository(db DBExecutor, loc *time.Location) *Repository {
	if loc == nil {
		loc = time.UTC
	}
	return &Repository{db: db, loc: loc}
}

// ListPending возвращает ожидающие заявки с requested_date в [from, to) вместе с предпочтениями
func (r *Repository) ListPending(ctx context.Context, from, to time.Time) ([]*domain.EventRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"event_name",
		"organization_id",
		"requested_venue_id",
		"requires_funding",
		"estimated_attendees",
		"requested_date",
		"requested_time_start",
		"requested_time_end",
	).
		From("events").
		Where(squirrel.Eq{"approval_status": StatusPending}).
		Where(squirrel.GtOrEq{"requested_date": from.In(r.loc).Format(domain.DateFormat)}).
		Where(squirrel.Lt{"requested_date": to.In(r.loc).Format(domain.DateFormat)}).
		OrderBy("requested_date", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListPending - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPending - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	events := make([]*domain.EventRequest, 0)
	ids := make([]string, 0)
	for rows.Next() {
		var (
			e              domain.EventRequest
			requestedDate  time.Time
			startTime, end types.TimeString
		)
		err := rows.Scan(
			&e.ID,
			&e.Name,
			&e.OrganizationID,
			&e.RequestedVenueID,
			&e.RequiresFunding,
			&e.EstimatedAttendees,
			&requestedDate,
			&startTime,
			&end,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListPending - scan row: %v", ErrScanRow, err)
		}

		e.RequestedStart, e.RequestedEnd = r.combine(requestedDate, startTime, end)
		events = append(events, &e)
		ids = append(ids, e.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListPending - rows error: %v", ErrScanRow, err)
	}
	rows.Close()

	prefs, err := r.listPreferences(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, e := range events {
		e.Preferences = prefs[e.ID]
	}

	return events, nil
}

func (r *Repository) listPreferences(ctx context.Context, eventIDs []string) (map[string][]domain.Preference, error) {
	result := make(map[string][]domain.Preference)
	if len(eventIDs) == 0 {
		return result, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"event_id",
		"preferred_venue_id",
		"preferred_date",
		"preferred_time_slot_start",
		"preferred_time_slot_end",
	).
		From("preferences").
		Where(squirrel.Expr("event_id = ANY(?)", pq.Array(eventIDs))).
		OrderBy("event_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listPreferences - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listPreferences - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			p              domain.Preference
			preferredDate  sql.NullTime
			startTime, end types.TimeString
		)
		if err := rows.Scan(&p.EventID, &p.PreferredVenueID, &preferredDate, &startTime, &end); err != nil {
			return nil, fmt.Errorf("%w: listPreferences - scan row: %v", ErrScanRow, err)
		}

		if preferredDate.Valid {
			date := r.localDate(preferredDate.Time)
			p.PreferredDate = &date
			if startTime != "" && end != "" {
				s, e := r.combine(preferredDate.Time, startTime, end)
				p.SlotStart, p.SlotEnd = &s, &e
			}
		}
		result[p.EventID] = append(result[p.EventID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listPreferences - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// localDate переносит дату DATE (полночь UTC от драйвера) в часовой пояс заявок
func (r *Repository) localDate(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, r.loc)
}

// combine собирает начало и конец из даты и времени; пустое время дает нулевое значение
func (r *Repository) combine(date time.Time, start, end types.TimeString) (time.Time, time.Time) {
	day := r.localDate(date)
	if start == "" {
		return day, time.Time{}
	}
	s := start.On(day, r.loc)
	if end == "" {
		return s, time.Time{}
	}
	return s, end.On(day, r.loc)
}
