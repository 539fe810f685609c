package weekdata

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
	"github.com/m04kA/SMC-EventScheduler/internal/infra/csvio"
	"github.com/m04kA/SMC-EventScheduler/pkg/txmanager"
)

const sourcesDir = "../../../testdata/sources"

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type failingSchedules struct{}

func (failingSchedules) ListOverlapping(context.Context, time.Time, time.Time) ([]domain.Schedule, error) {
	return nil, errors.New("connection refused")
}

type countingTx struct {
	calls int
}

func (c *countingTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	c.calls++
	return fn(ctx)
}

func csvSources(loc *time.Location) Sources {
	src := csvio.NewSource(csvio.Files{
		Venues:         filepath.Join(sourcesDir, "venues.csv"),
		Events:         filepath.Join(sourcesDir, "events.csv"),
		Preferences:    filepath.Join(sourcesDir, "preferences.csv"),
		Schedules:      filepath.Join(sourcesDir, "schedules.csv"),
		Equipment:      filepath.Join(sourcesDir, "equipment.csv"),
		EventEquipment: filepath.Join(sourcesDir, "event_equipment.csv"),
	}, loc)
	return Sources{Venues: src, Events: src, Schedules: src, Equipment: src}
}

func week(loc *time.Location) domain.WeekConstraints {
	start := time.Date(2024, time.September, 9, 0, 0, 0, 0, loc)
	return domain.WeekConstraints{WeekStart: start, WeekEnd: start.AddDate(0, 0, 7), Location: loc}
}

func TestService_Load(t *testing.T) {
	loc := time.FixedZone("PHT", 8*60*60)
	tx := &countingTx{}
	svc := NewService(csvSources(loc), tx, nopLogger{})

	data, err := svc.Load(context.Background(), week(loc))
	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)

	assert.Equal(t, []string{"v-101", "v-gym", "v-uls"}, data.VenueOrder)
	assert.Len(t, data.Venues, 3)
	assert.Len(t, data.Pending, 3)
	require.Len(t, data.Existing, 1)
	assert.Equal(t, "e-old", data.Existing[0].EventID)

	assert.Equal(t, 2, data.Inventory.Counts["Projector"])

	// Запросы только для заявок недели и утвержденных расписаний
	assert.Contains(t, data.EquipmentByEvent, "e-2")
	assert.Contains(t, data.EquipmentByEvent, "e-old")
	assert.NotContains(t, data.EquipmentByEvent, "e-9")

	var workshop *domain.EventRequest
	for _, e := range data.Pending {
		if e.ID == "e-2" {
			workshop = e
		}
	}
	require.NotNil(t, workshop)
	assert.Equal(t, []domain.EquipmentRequest{{EventID: "e-2", EquipmentID: "p1", Quantity: 1}}, workshop.Equipment)
}

func TestService_LoadWithoutTransaction(t *testing.T) {
	loc := time.FixedZone("PHT", 8*60*60)
	svc := NewService(csvSources(loc), txmanager.NoopManager{}, nopLogger{})

	data, err := svc.Load(context.Background(), week(loc))
	require.NoError(t, err)
	assert.Len(t, data.Pending, 3)
}

func TestService_LoadSourceError(t *testing.T) {
	loc := time.FixedZone("PHT", 8*60*60)
	sources := csvSources(loc)
	sources.Schedules = failingSchedules{}
	svc := NewService(sources, txmanager.NoopManager{}, nopLogger{})

	_, err := svc.Load(context.Background(), week(loc))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.Contains(t, err.Error(), "schedules")
}

func TestRelevantEventIDs(t *testing.T) {
	data := &domain.WeekData{
		Pending:  []*domain.EventRequest{{ID: "a"}, {ID: "b"}},
		Existing: []domain.Schedule{{EventID: "b"}, {EventID: ""}, {EventID: "c"}},
	}
	assert.Equal(t, []string{"a", "b", "c"}, relevantEventIDs(data))
}
