package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
	"github.com/m04kA/SMC-EventScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-EventScheduler/pkg/psqlbuilder"
)

// Repository репозиторий утвержденных расписаний (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListOverlapping возвращает неоптимизированные расписания, пересекающие [from, to)
// Расписания, созданные оптимизатором, не учитываются: они пересчитываются заново
func (r *Repository) ListOverlapping(ctx context.Context, from, to time.Time) ([]domain.Schedule, error) {
	return r.list(ctx, "ListOverlapping", squirrel.And{
		squirrel.Eq{"is_optimized": false},
		squirrel.Lt{"scheduled_start_time": to},
		squirrel.Gt{"scheduled_end_time": from},
	})
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Sqlizer) ([]domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"event_id",
		"venue_id",
		"organization_id",
		"scheduled_start_time",
		"scheduled_end_time",
		"is_optimized",
	).
		From("schedules").
		Where(where).
		OrderBy("scheduled_start_time", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	schedules := make([]domain.Schedule, 0)
	for rows.Next() {
		var s domain.Schedule
		err := rows.Scan(
			&s.ID,
			&s.EventID,
			&s.VenueID,
			&s.OrganizationID,
			&s.Start,
			&s.End,
			&s.IsOptimized,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		s.Start = s.Start.UTC()
		s.End = s.End.UTC()
		schedules = append(schedules, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return schedules, nil
}
