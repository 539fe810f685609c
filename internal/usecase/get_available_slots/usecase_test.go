package get_available_slots

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
	"github.com/m04kA/SMC-EventScheduler/internal/infra/calendarfile"
	"github.com/m04kA/SMC-EventScheduler/internal/infra/csvio"
	"github.com/m04kA/SMC-EventScheduler/internal/service/calendar"
	"github.com/m04kA/SMC-EventScheduler/internal/service/constraints"
	"github.com/m04kA/SMC-EventScheduler/internal/service/weekdata"
	"github.com/m04kA/SMC-EventScheduler/pkg/txmanager"
	"github.com/m04kA/SMC-EventScheduler/pkg/types"
)

const (
	fixturePath = "../../../testdata/academic_calendar_2024_2025.json"
	sourcesDir  = "../../../testdata/sources"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubCalendars struct{ cal *domain.Calendar }

func (s stubCalendars) Current() (*domain.Calendar, error) { return s.cal, nil }

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func newUseCase(t *testing.T, now func(loc *time.Location) time.Time) (*UseCase, *domain.Calendar) {
	t.Helper()
	raw, err := calendarfile.Load(fixturePath)
	require.NoError(t, err)
	cal, err := calendar.Normalize(raw, calendar.DefaultOptions())
	require.NoError(t, err)

	src := csvio.NewSource(csvio.Files{
		Venues:         filepath.Join(sourcesDir, "venues.csv"),
		Events:         filepath.Join(sourcesDir, "events.csv"),
		Schedules:      filepath.Join(sourcesDir, "schedules.csv"),
		Equipment:      filepath.Join(sourcesDir, "equipment.csv"),
		EventEquipment: filepath.Join(sourcesDir, "event_equipment.csv"),
	}, cal.Location)
	loader := weekdata.NewService(weekdata.Sources{Venues: src, Events: src, Schedules: src, Equipment: src},
		txmanager.NoopManager{}, nopLogger{})
	cons := constraints.NewService(stubCalendars{cal: cal}, constraints.DefaultOptions(), nopLogger{})

	uc := NewUseCase(cons, loader, DefaultOptions(), nopLogger{})
	uc.timeProvider = fixedTime{now: now(cal.Location)}
	return uc, cal
}

func startOfYear(loc *time.Location) time.Time {
	return time.Date(2024, time.August, 1, 9, 0, 0, 0, loc)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func countAvailable(slots []Slot) int {
	n := 0
	for _, s := range slots {
		if s.Available {
			n++
		}
	}
	return n
}

func findSlot(t *testing.T, slots []Slot, start types.TimeString) Slot {
	t.Helper()
	for _, s := range slots {
		if s.StartTime == start {
			return s
		}
	}
	t.Fatalf("slot %s not found", start)
	return Slot{}
}

func TestUseCase_ClassroomWeekday(t *testing.T) {
	uc, cal := newUseCase(t, startOfYear)

	resp, err := uc.Execute(context.Background(), &Request{VenueID: "v-101", Date: date(2024, time.September, 9)})
	require.NoError(t, err)

	assert.Equal(t, "Room 101", resp.VenueName)
	assert.Equal(t, 30, resp.SlotDurationMinutes)
	assert.Equal(t, time.Date(2024, time.September, 9, 0, 0, 0, 0, cal.Location), resp.Date)
	require.Len(t, resp.Slots, 32)
	assert.Equal(t, types.TimeString("06:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("22:00"), resp.Slots[31].EndTime)
	assert.Equal(t, 13, countAvailable(resp.Slots))

	blocked := findSlot(t, resp.Slots, "07:30")
	assert.False(t, blocked.Available)
	assert.Equal(t, domain.ViolationVenueBlockage, blocked.Kind)
	assert.Equal(t, "Venue Blockage: Classroom_weekday (07:30-12:00)", blocked.Reason)

	assert.True(t, findSlot(t, resp.Slots, "12:00").Available)
	assert.True(t, findSlot(t, resp.Slots, "12:30").Available)
	assert.False(t, findSlot(t, resp.Slots, "13:00").Available)
}

func TestUseCase_ExistingSchedule(t *testing.T) {
	uc, _ := newUseCase(t, startOfYear)

	resp, err := uc.Execute(context.Background(), &Request{VenueID: "v-gym", Date: date(2024, time.September, 10)})
	require.NoError(t, err)

	assert.Equal(t, 28, countAvailable(resp.Slots))
	slot := findSlot(t, resp.Slots, "10:30")
	assert.Equal(t, domain.ViolationDoubleBooking, slot.Kind)
	assert.True(t, findSlot(t, resp.Slots, "11:00").Available)
}

func TestUseCase_BlockedDays(t *testing.T) {
	uc, _ := newUseCase(t, startOfYear)
	ctx := context.Background()

	t.Run("sunday", func(t *testing.T) {
		resp, err := uc.Execute(ctx, &Request{VenueID: "v-gym", Date: date(2024, time.September, 15)})
		require.NoError(t, err)
		require.Len(t, resp.Slots, 32)
		assert.Zero(t, countAvailable(resp.Slots))
		for _, s := range resp.Slots {
			assert.Equal(t, "Sunday Blockage", s.Reason)
		}
	})

	t.Run("national holiday", func(t *testing.T) {
		resp, err := uc.Execute(ctx, &Request{VenueID: "v-gym", Date: date(2024, time.August, 26)})
		require.NoError(t, err)
		assert.Zero(t, countAvailable(resp.Slots))
		assert.Equal(t, domain.ViolationBlackout, resp.Slots[0].Kind)
		assert.NotEmpty(t, resp.Slots[0].Reason)
	})
}

func TestUseCase_TodayRespectsNotice(t *testing.T) {
	uc, _ := newUseCase(t, func(loc *time.Location) time.Time {
		return time.Date(2024, time.September, 10, 12, 10, 0, 0, loc)
	})

	resp, err := uc.Execute(context.Background(), &Request{VenueID: "v-gym", Date: date(2024, time.September, 10)})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 17)
	assert.Equal(t, types.TimeString("13:30"), resp.Slots[0].StartTime)
}

func TestUseCase_CustomDurationAndAttendees(t *testing.T) {
	uc, _ := newUseCase(t, startOfYear)
	ctx := context.Background()

	resp, err := uc.Execute(ctx, &Request{VenueID: "v-gym", Date: date(2024, time.September, 11), DurationMinutes: 90})
	require.NoError(t, err)
	assert.Equal(t, 90, resp.SlotDurationMinutes)
	require.Len(t, resp.Slots, 10)
	assert.Equal(t, types.TimeString("19:30"), resp.Slots[9].StartTime)

	resp, err = uc.Execute(ctx, &Request{VenueID: "v-101", Date: date(2024, time.September, 11), EstimatedAttendees: 50})
	require.NoError(t, err)
	slot := findSlot(t, resp.Slots, "12:00")
	assert.False(t, slot.Available)
	assert.Equal(t, domain.ViolationCapacityExceeded, slot.Kind)
}

func TestUseCase_Errors(t *testing.T) {
	uc, _ := newUseCase(t, func(loc *time.Location) time.Time {
		return time.Date(2024, time.October, 1, 9, 0, 0, 0, loc)
	})
	ctx := context.Background()

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{name: "empty venue", req: &Request{Date: date(2024, time.October, 2)}, wantErr: ErrInvalidInput},
		{name: "zero date", req: &Request{VenueID: "v-gym"}, wantErr: ErrInvalidInput},
		{name: "bad duration", req: &Request{VenueID: "v-gym", Date: date(2024, time.October, 2), DurationMinutes: 1}, wantErr: ErrInvalidInput},
		{name: "past date", req: &Request{VenueID: "v-gym", Date: date(2024, time.September, 30)}, wantErr: ErrInvalidDate},
		{name: "outside academic year", req: &Request{VenueID: "v-gym", Date: date(2025, time.August, 10)}, wantErr: ErrOutsideAcademicYear},
		{name: "unknown venue", req: &Request{VenueID: "v-moon", Date: date(2024, time.October, 2)}, wantErr: ErrVenueNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGenerateTimeSlots(t *testing.T) {
	loc := time.FixedZone("PHT", 8*60*60)
	day := time.Date(2024, time.September, 10, 0, 0, 0, 0, loc)

	slots, err := generateTimeSlots("06:00", "08:00", 45, day, day.AddDate(0, 0, -1), 60)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"06:00", "06:45"}, slots)

	slots, err = generateTimeSlots("06:00", "08:00", 30, day, day.AddDate(0, 0, 1), 60)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestUseCase_LongDurationStopsAtCurfew(t *testing.T) {
	uc, _ := newUseCase(t, startOfYear)

	for duration, want := range map[int][]types.TimeString{
		300: {"06:00", "11:00", "16:00"},
		420: {"06:00", "13:00"},
		480: {"06:00", "14:00"},
	} {
		resp, err := uc.Execute(context.Background(), &Request{
			VenueID:         "v-gym",
			Date:            date(2024, time.September, 10),
			DurationMinutes: duration,
		})
		require.NoError(t, err, duration)

		starts := make([]types.TimeString, 0, len(resp.Slots))
		for _, s := range resp.Slots {
			starts = append(starts, s.StartTime)
			assert.False(t, s.EndTime.IsAfter("22:00"), duration)
		}
		assert.Equal(t, want, starts, duration)
	}
}
