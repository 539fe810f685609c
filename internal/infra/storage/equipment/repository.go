package equipment

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
	"github.com/m04kA/SMC-EventScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-EventScheduler/pkg/psqlbuilder"
)

// Repository репозиторий оборудования и запросов на него (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория оборудования
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListInventory возвращает все единицы оборудования
func (r *Repository) ListInventory(ctx context.Context) ([]domain.EquipmentItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name").
		From("equipment").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListInventory - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListInventory - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]domain.EquipmentItem, 0)
	for rows.Next() {
		var item domain.EquipmentItem
		if err := rows.Scan(&item.ID, &item.Name); err != nil {
			return nil, fmt.Errorf("%w: ListInventory - scan row: %v", ErrScanRow, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListInventory - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}

// ListRequests возвращает запросы оборудования указанных событий
func (r *Repository) ListRequests(ctx context.Context, eventIDs []string) ([]domain.EquipmentRequest, error) {
	if len(eventIDs) == 0 {
		return []domain.EquipmentRequest{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("event_id", "equipment_id", "quantity").
		From("event_equipment").
		Where(squirrel.Expr("event_id = ANY(?)", pq.Array(eventIDs))).
		OrderBy("event_id", "equipment_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListRequests - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRequests - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	requests := make([]domain.EquipmentRequest, 0)
	for rows.Next() {
		var req domain.EquipmentRequest
		if err := rows.Scan(&req.EventID, &req.EquipmentID, &req.Quantity); err != nil {
			return nil, fmt.Errorf("%w: ListRequests - scan row: %v", ErrScanRow, err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRequests - rows error: %v", ErrScanRow, err)
	}

	return requests, nil
}
