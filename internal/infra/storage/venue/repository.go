package venue

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
	"github.com/m04kA/SMC-EventScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-EventScheduler/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"name",
	"building",
	"code",
	"venue_type",
	"occupancy",
	"blockage_group",
}

// Repository репозиторий площадок (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория площадок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает все площадки, отсортированные по id
func (r *Repository) List(ctx context.Context) ([]*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("venues").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	venues := make([]*domain.Venue, 0)
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return venues, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanVenue(row scanner) (*domain.Venue, error) {
	var v domain.Venue
	err := row.Scan(
		&v.ID,
		&v.Name,
		&v.Building,
		&v.Code,
		&v.VenueType,
		&v.Capacity,
		&v.BlockageGroup,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
