package slotcheck

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
	"github.com/m04kA/SMC-EventScheduler/internal/infra/calendarfile"
	"github.com/m04kA/SMC-EventScheduler/internal/service/calendar"
	"github.com/m04kA/SMC-EventScheduler/internal/service/constraints"
)

const fixturePath = "../../../testdata/academic_calendar_2024_2025.json"

func loadCalendar(t *testing.T) *domain.Calendar {
	t.Helper()
	raw, err := calendarfile.Load(fixturePath)
	require.NoError(t, err)
	cal, err := calendar.Normalize(raw, calendar.DefaultOptions())
	require.NoError(t, err)
	return cal
}

func newWeekData(t *testing.T, cal *domain.Calendar, from, to time.Time) *domain.WeekData {
	t.Helper()
	week, err := constraints.Build(cal, from, to, constraints.DefaultOptions())
	require.NoError(t, err)

	return &domain.WeekData{
		Constraints: week,
		Venues: map[string]*domain.Venue{
			"v-class": {ID: "v-class", Name: "Room 101", VenueType: "Classroom", Capacity: 40},
			"v-uls":   {ID: "v-uls", Name: "ULS Hall", VenueType: "Hall", Capacity: 200},
			"v-gym":   {ID: "v-gym", Name: "Gym", VenueType: "Sports"},
		},
		VenueOrder: []string{"v-class", "v-gym", "v-uls"},
		Inventory: domain.NewEquipmentInventory([]domain.EquipmentItem{
			{ID: "p1", Name: "Projector"},
			{ID: "p2", Name: "Projector"},
			{ID: "m1", Name: "Microphone"},
			{ID: "x1"},
		}),
		EquipmentByEvent: map[string][]domain.EquipmentRequest{},
	}
}

func at(cal *domain.Calendar, month time.Month, day, hour, minute int) time.Time {
	return time.Date(2024, month, day, hour, minute, 0, 0, cal.Location)
}

func TestChecker_Check(t *testing.T) {
	cal := loadCalendar(t)
	from := time.Date(2024, time.September, 9, 0, 0, 0, 0, cal.Location)
	data := newWeekData(t, cal, from, from.AddDate(0, 0, 7))
	checker := NewChecker(data)

	event := &domain.EventRequest{ID: "e1", Name: "Org Assembly", EstimatedAttendees: 30}

	tests := []struct {
		name     string
		venueID  string
		start    time.Time
		duration time.Duration
		want     []domain.ViolationKind
		reason   string
	}{
		{
			name:     "free evening slot",
			venueID:  "v-gym",
			start:    at(cal, time.September, 10, 19, 0),
			duration: 90 * time.Minute,
		},
		{
			name:     "outside target week",
			venueID:  "v-gym",
			start:    at(cal, time.September, 17, 10, 0),
			duration: time.Hour,
			want:     []domain.ViolationKind{domain.ViolationOutsideWeek},
			reason:   "Slot Outside Target Week (2024-09-17)",
		},
		{
			name:     "sunday",
			venueID:  "v-gym",
			start:    at(cal, time.September, 15, 10, 0),
			duration: time.Hour,
			want:     []domain.ViolationKind{domain.ViolationBlackout},
			reason:   "Sunday Blockage",
		},
		{
			name:     "runs into night curfew",
			venueID:  "v-gym",
			start:    at(cal, time.September, 10, 21, 30),
			duration: time.Hour,
			want:     []domain.ViolationKind{domain.ViolationBlackout},
			reason:   "Night Curfew (22:00-06:00)",
		},
		{
			name:     "classroom weekday window",
			venueID:  "v-class",
			start:    at(cal, time.September, 9, 8, 0),
			duration: time.Hour,
			want:     []domain.ViolationKind{domain.ViolationVenueBlockage},
			reason:   "Venue Blockage: Classroom_weekday (07:30-12:00)",
		},
		{
			name:     "classroom lunch gap is free",
			venueID:  "v-class",
			start:    at(cal, time.September, 9, 12, 0),
			duration: time.Hour,
		},
		{
			name:     "classroom saturday window",
			venueID:  "v-class",
			start:    at(cal, time.September, 14, 9, 0),
			duration: time.Hour,
			want:     []domain.ViolationKind{domain.ViolationVenueBlockage},
			reason:   "Venue Blockage: Classroom_weekend_Sat (Saturday) (08:00-12:00)",
		},
		{
			name:     "uls wednesday-only window",
			venueID:  "v-uls",
			start:    at(cal, time.September, 11, 9, 30),
			duration: time.Hour,
			want:     []domain.ViolationKind{domain.ViolationVenueBlockage},
			reason:   "Venue Blockage: ULS_weekday (Wednesday) (09:00-11:00)",
		},
		{
			name:     "uls wednesday window does not apply on thursday",
			venueID:  "v-uls",
			start:    at(cal, time.September, 12, 9, 30),
			duration: time.Hour,
		},
		{
			name:     "unknown venue",
			venueID:  "v-missing",
			start:    at(cal, time.September, 10, 19, 0),
			duration: time.Hour,
			want:     []domain.ViolationKind{domain.ViolationVenueNotFound},
			reason:   "Venue Not Found (v-missing)",
		},
		{
			name:     "several violations keep their order",
			venueID:  "v-class",
			start:    at(cal, time.September, 16, 8, 0),
			duration: time.Hour,
			want:     []domain.ViolationKind{domain.ViolationOutsideWeek, domain.ViolationVenueBlockage},
			reason:   "Slot Outside Target Week (2024-09-16)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := checker.Check(event, tt.venueID, tt.start, tt.start.Add(tt.duration), nil)

			kinds := make([]domain.ViolationKind, 0, len(violations))
			for _, v := range violations {
				kinds = append(kinds, v.Kind)
			}
			if len(tt.want) == 0 {
				assert.Empty(t, kinds)
				return
			}
			assert.Equal(t, tt.want, kinds)

			first, ok := checker.FirstViolation(event, tt.venueID, tt.start, tt.start.Add(tt.duration), nil)
			require.True(t, ok)
			assert.Equal(t, tt.reason, first.Reason)
		})
	}
}

func TestChecker_Capacity(t *testing.T) {
	cal := loadCalendar(t)
	from := time.Date(2024, time.September, 9, 0, 0, 0, 0, cal.Location)
	checker := NewChecker(newWeekData(t, cal, from, from.AddDate(0, 0, 7)))

	big := &domain.EventRequest{ID: "e-big", EstimatedAttendees: 50}
	start := at(cal, time.September, 9, 12, 0)

	violations := checker.Check(big, "v-class", start, start.Add(time.Hour), nil)
	require.Len(t, violations, 1)
	assert.Equal(t, domain.ViolationCapacityExceeded, violations[0].Kind)
	assert.Equal(t, "Capacity Exceeded (Needs 50, Venue Has 40)", violations[0].Reason)

	// Вместимость 0 означает, что она неизвестна
	assert.Empty(t, checker.Check(big, "v-gym", start, start.Add(time.Hour), nil))
}

func TestChecker_DoubleBooking(t *testing.T) {
	cal := loadCalendar(t)
	from := time.Date(2024, time.September, 9, 0, 0, 0, 0, cal.Location)
	data := newWeekData(t, cal, from, from.AddDate(0, 0, 7))
	data.Existing = []domain.Schedule{{
		ID:      "s1",
		EventID: "e-old",
		VenueID: "v-gym",
		Start:   at(cal, time.September, 10, 19, 0),
		End:     at(cal, time.September, 10, 21, 0),
	}}
	checker := NewChecker(data)
	event := &domain.EventRequest{ID: "e1", EstimatedAttendees: 10}

	t.Run("existing schedule", func(t *testing.T) {
		start := at(cal, time.September, 10, 20, 0)
		v, ok := checker.FirstViolation(event, "v-gym", start, start.Add(time.Hour), nil)
		require.True(t, ok)
		assert.Equal(t, domain.ViolationDoubleBooking, v.Kind)
		assert.Equal(t, "Double Booking", v.Group())
		assert.Contains(t, v.Reason, "e-old")
	})

	t.Run("touching ranges do not conflict", func(t *testing.T) {
		start := at(cal, time.September, 10, 21, 0)
		assert.Empty(t, checker.Check(event, "v-gym", start, start.Add(30*time.Minute), nil))
	})

	t.Run("another venue is free", func(t *testing.T) {
		start := at(cal, time.September, 10, 20, 0)
		assert.Empty(t, checker.Check(event, "v-uls", start, start.Add(time.Hour), nil))
	})

	t.Run("proposed placement", func(t *testing.T) {
		start := at(cal, time.September, 12, 19, 0)
		others := []Placement{
			{EventID: "e1", VenueID: "v-uls", Start: start, End: start.Add(time.Hour)},
			{EventID: "e2", VenueID: "v-uls", Start: start.Add(30 * time.Minute), End: start.Add(2 * time.Hour)},
		}
		v, ok := checker.FirstViolation(event, "v-uls", start, start.Add(time.Hour), others)
		require.True(t, ok)
		assert.Equal(t, domain.ViolationDoubleBooking, v.Kind)
		assert.True(t, strings.Contains(v.Reason, "proposed event e2"), v.Reason)
	})
}

func TestChecker_Equipment(t *testing.T) {
	cal := loadCalendar(t)
	from := time.Date(2024, time.September, 9, 0, 0, 0, 0, cal.Location)
	data := newWeekData(t, cal, from, from.AddDate(0, 0, 7))
	data.Existing = []domain.Schedule{{
		EventID: "e-old",
		VenueID: "v-uls",
		Start:   at(cal, time.September, 10, 19, 0),
		End:     at(cal, time.September, 10, 21, 0),
	}}
	data.EquipmentByEvent = map[string][]domain.EquipmentRequest{
		"e-old":     {{EventID: "e-old", EquipmentID: "p1", Quantity: 1}},
		"e1":        {{EventID: "e1", EquipmentID: "p1", Quantity: 2}, {EventID: "e1", EquipmentID: "m1", Quantity: 1}},
		"e-small":   {{EventID: "e-small", EquipmentID: "p2", Quantity: 1}},
		"e-unknown": {{EventID: "e-unknown", EquipmentID: "zz", Quantity: 1}},
		"e-noname":  {{EventID: "e-noname", EquipmentID: "x1", Quantity: 1}},
	}
	checker := NewChecker(data)

	t.Run("shortage with concurrent existing event", func(t *testing.T) {
		start := at(cal, time.September, 10, 20, 0)
		v, ok := checker.FirstViolation(&domain.EventRequest{ID: "e1"}, "v-gym", start, start.Add(time.Hour), nil)
		require.True(t, ok)
		assert.Equal(t, domain.ViolationEquipmentShortage, v.Kind)
		assert.Equal(t, "Equipment Unavailable: 'Projector' (Needs 3, Has 2)", v.Reason)
	})

	t.Run("enough when nothing else runs", func(t *testing.T) {
		start := at(cal, time.September, 11, 19, 0)
		assert.Empty(t, checker.Check(&domain.EventRequest{ID: "e1"}, "v-gym", start, start.Add(time.Hour), nil))
	})

	t.Run("shortage with concurrent proposed event", func(t *testing.T) {
		start := at(cal, time.September, 11, 19, 0)
		others := []Placement{{EventID: "e-small", VenueID: "v-uls", Start: start, End: start.Add(time.Hour)}}
		v, ok := checker.FirstViolation(&domain.EventRequest{ID: "e1"}, "v-gym", start, start.Add(time.Hour), others)
		require.True(t, ok)
		assert.Equal(t, "Equipment Unavailable: 'Projector' (Needs 3, Has 2)", v.Reason)
	})

	t.Run("unknown equipment id", func(t *testing.T) {
		start := at(cal, time.September, 11, 19, 0)
		v, ok := checker.FirstViolation(&domain.EventRequest{ID: "e-unknown"}, "v-gym", start, start.Add(time.Hour), nil)
		require.True(t, ok)
		assert.Equal(t, domain.ViolationEquipmentUnknown, v.Kind)
		assert.Equal(t, "Equipment Unknown: requested equipment id 'zz' not found", v.Reason)
	})

	t.Run("item without a name is not in the inventory", func(t *testing.T) {
		start := at(cal, time.September, 11, 19, 0)
		v, ok := checker.FirstViolation(&domain.EventRequest{ID: "e-noname"}, "v-gym", start, start.Add(time.Hour), nil)
		require.True(t, ok)
		assert.Equal(t, domain.ViolationEquipmentUnknown, v.Kind)
	})
}

func TestChecker_HecticWeekSkipsVenueBlockages(t *testing.T) {
	cal := loadCalendar(t)
	from := time.Date(2024, time.December, 16, 0, 0, 0, 0, cal.Location)
	data := newWeekData(t, cal, from, from.AddDate(0, 0, 7))
	require.True(t, data.Constraints.IsHecticWeek)

	checker := NewChecker(data)
	start := at(cal, time.December, 16, 8, 0)
	assert.Empty(t, checker.Check(&domain.EventRequest{ID: "e1"}, "v-class", start, start.Add(time.Hour), nil))
}

func TestBlockageKey(t *testing.T) {
	assert.Equal(t, "Classroom_weekday", BlockageKey("Classroom", time.Monday))
	assert.Equal(t, "ULS_weekday", BlockageKey("ULS", time.Friday))
	assert.Equal(t, "Classroom_weekend_Sat", BlockageKey("Classroom", time.Saturday))
	assert.Empty(t, BlockageKey("Classroom", time.Sunday))
}
