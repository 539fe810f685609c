package weekdata

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
)

// Sources источники данных для загрузки недели
type Sources struct {
	Venues    VenueSource
	Events    EventSource
	Schedules ScheduleSource
	Equipment EquipmentSource
}

// Service собирает данные целевой недели из источников
type Service struct {
	sources Sources
	tx      TxManager
	logger  Logger
}

// NewService создает новый экземпляр сервиса
func NewService(sources Sources, tx TxManager, logger Logger) *Service {
	return &Service{
		sources: sources,
		tx:      tx,
		logger:  logger,
	}
}

// Load читает площадки, заявки, расписания и оборудование для недели week
// Все чтения выполняются в одной read-only транзакции
func (s *Service) Load(ctx context.Context, week domain.WeekConstraints) (*domain.WeekData, error) {
	data := &domain.WeekData{
		Constraints:      week,
		Venues:           make(map[string]*domain.Venue),
		EquipmentByEvent: make(map[string][]domain.EquipmentRequest),
	}

	err := s.tx.DoReadOnly(ctx, func(ctx context.Context) error {
		// 1. Площадки
		venues, err := s.sources.Venues.List(ctx)
		if err != nil {
			return fmt.Errorf("venues: %v", err)
		}
		for _, v := range venues {
			data.Venues[v.ID] = v
			data.VenueOrder = append(data.VenueOrder, v.ID)
		}

		// 2. Заявки, запрошенные на эту неделю
		data.Pending, err = s.sources.Events.ListPending(ctx, week.WeekStart, week.WeekEnd)
		if err != nil {
			return fmt.Errorf("events: %v", err)
		}

		// 3. Утвержденные расписания, пересекающие неделю
		data.Existing, err = s.sources.Schedules.ListOverlapping(ctx, week.WeekStart, week.WeekEnd)
		if err != nil {
			return fmt.Errorf("schedules: %v", err)
		}

		// 4. Инвентарь и запросы оборудования заявок и расписаний
		items, err := s.sources.Equipment.ListInventory(ctx)
		if err != nil {
			return fmt.Errorf("equipment: %v", err)
		}
		data.Inventory = domain.NewEquipmentInventory(items)

		requests, err := s.sources.Equipment.ListRequests(ctx, relevantEventIDs(data))
		if err != nil {
			return fmt.Errorf("equipment requests: %v", err)
		}
		for _, req := range requests {
			data.EquipmentByEvent[req.EventID] = append(data.EquipmentByEvent[req.EventID], req)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Load: week %s: %v", week.WeekStart.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	for _, e := range data.Pending {
		e.Equipment = data.EquipmentByEvent[e.ID]
	}

	s.logger.Info("Load: week %s: venues=%d, pending=%d, existing=%d, equipment items=%d",
		week.WeekStart.Format(domain.DateFormat), len(data.Venues), len(data.Pending), len(data.Existing), len(data.Inventory.IDToName))
	return data, nil
}

// relevantEventIDs id заявок и событий утвержденных расписаний без повторов
func relevantEventIDs(data *domain.WeekData) []string {
	seen := make(map[string]struct{})
	ids := make([]string, 0, len(data.Pending)+len(data.Existing))
	add := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, e := range data.Pending {
		add(e.ID)
	}
	for _, s := range data.Existing {
		add(s.EventID)
	}
	return ids
}
