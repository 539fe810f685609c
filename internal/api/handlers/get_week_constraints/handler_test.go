package get_week_constraints

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
	"github.com/m04kA/SMC-EventScheduler/internal/infra/calendarfile"
	"github.com/m04kA/SMC-EventScheduler/internal/service/calendar"
	"github.com/m04kA/SMC-EventScheduler/internal/service/constraints"
)

const fixturePath = "../../../../testdata/academic_calendar_2024_2025.json"

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubCalendars struct {
	cal *domain.Calendar
	err error
}

func (s stubCalendars) Current() (*domain.Calendar, error) { return s.cal, s.err }

func loadCalendar(t *testing.T) *domain.Calendar {
	t.Helper()
	raw, err := calendarfile.Load(fixturePath)
	require.NoError(t, err)
	cal, err := calendar.Normalize(raw, calendar.DefaultOptions())
	require.NoError(t, err)
	return cal
}

func serve(calendars stubCalendars, target string) *httptest.ResponseRecorder {
	svc := constraints.NewService(calendars, constraints.DefaultOptions(), nopLogger{})
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/weeks/{start}/constraints", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodGet)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler(t *testing.T) {
	cal := loadCalendar(t)

	rec := serve(stubCalendars{cal: cal}, "/api/v1/weeks/2024-09-09/constraints")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp WeekConstraintsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2024-09-09", resp.WeekStart)
	assert.Equal(t, "2024-09-16", resp.WeekEnd)
	assert.Equal(t, cal.Location.String(), resp.Timezone)
	assert.False(t, resp.IsHecticWeek)
	assert.Contains(t, resp.VenueBlockages, "Classroom_weekday")

	kinds := make(map[string]int)
	for _, s := range resp.GeneralSlots {
		kinds[s.Kind]++
	}
	assert.Equal(t, 1, kinds[string(domain.BlackoutSunday)])
	assert.Positive(t, kinds[string(domain.BlackoutCurfew)])
}

func TestHandler_Days(t *testing.T) {
	cal := loadCalendar(t)

	rec := serve(stubCalendars{cal: cal}, "/api/v1/weeks/2024-09-09/constraints?days=2")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp WeekConstraintsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2024-09-11", resp.WeekEnd)
	for _, s := range resp.GeneralSlots {
		assert.NotEqual(t, string(domain.BlackoutSunday), s.Kind)
	}
}

func TestHandler_Errors(t *testing.T) {
	cal := loadCalendar(t)

	tests := []struct {
		name      string
		calendars stubCalendars
		target    string
		wantCode  int
	}{
		{name: "bad start", calendars: stubCalendars{cal: cal}, target: "/api/v1/weeks/monday/constraints", wantCode: http.StatusBadRequest},
		{name: "days out of range", calendars: stubCalendars{cal: cal}, target: "/api/v1/weeks/2024-09-09/constraints?days=8", wantCode: http.StatusBadRequest},
		{name: "days not a number", calendars: stubCalendars{cal: cal}, target: "/api/v1/weeks/2024-09-09/constraints?days=all", wantCode: http.StatusBadRequest},
		{name: "calendar not loaded", calendars: stubCalendars{err: errors.New("not loaded")}, target: "/api/v1/weeks/2024-09-09/constraints", wantCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(tt.calendars, tt.target)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
