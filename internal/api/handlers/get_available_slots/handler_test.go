package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-EventScheduler/internal/usecase/get_available_slots"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubUseCase struct {
	got  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	s.got = req
	return s.resp, s.err
}

func serve(uc GetAvailableSlotsUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/venues/{venueId}/available-slots", NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodGet)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler(t *testing.T) {
	loc := time.FixedZone("PHT", 8*60*60)
	start := time.Date(2024, time.September, 9, 7, 30, 0, 0, loc)
	uc := &stubUseCase{resp: &getAvailableSlots.Response{
		Date:                time.Date(2024, time.September, 9, 0, 0, 0, 0, loc),
		VenueID:             "v-101",
		VenueName:           "Room 101",
		SlotDurationMinutes: 30,
		Slots: []getAvailableSlots.Slot{
			{StartTime: "07:30", EndTime: "08:00", Start: start, End: start.Add(30 * time.Minute),
				Reason: "Venue Blockage: Classroom_weekday (07:30-12:00)", Kind: domain.ViolationVenueBlockage},
			{StartTime: "12:00", EndTime: "12:30", Start: start.Add(270 * time.Minute), End: start.Add(300 * time.Minute), Available: true},
		},
	}}

	rec := serve(uc, "/api/v1/venues/v-101/available-slots?date=2024-09-09&duration=90&attendees=25")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, &getAvailableSlots.Request{
		VenueID:            "v-101",
		Date:               time.Date(2024, time.September, 9, 0, 0, 0, 0, time.UTC),
		DurationMinutes:    90,
		EstimatedAttendees: 25,
	}, uc.got)

	var resp AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2024-09-09", resp.Date)
	assert.Equal(t, "Room 101", resp.VenueName)
	require.Len(t, resp.Slots, 2)
	assert.False(t, resp.Slots[0].Available)
	assert.Equal(t, "venue_blockage", resp.Slots[0].Kind)
	assert.True(t, resp.Slots[1].Available)
	assert.Empty(t, resp.Slots[1].Reason)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		err      error
		wantCode int
	}{
		{name: "missing date", target: "/api/v1/venues/v-101/available-slots", wantCode: http.StatusBadRequest},
		{name: "bad date", target: "/api/v1/venues/v-101/available-slots?date=09/09/2024", wantCode: http.StatusBadRequest},
		{name: "bad duration", target: "/api/v1/venues/v-101/available-slots?date=2024-09-09&duration=long", wantCode: http.StatusBadRequest},
		{name: "negative attendees", target: "/api/v1/venues/v-101/available-slots?date=2024-09-09&attendees=-1", wantCode: http.StatusBadRequest},
		{name: "venue not found", target: "/api/v1/venues/v-moon/available-slots?date=2024-09-09", err: getAvailableSlots.ErrVenueNotFound, wantCode: http.StatusNotFound},
		{name: "past date", target: "/api/v1/venues/v-101/available-slots?date=2024-09-09", err: getAvailableSlots.ErrInvalidDate, wantCode: http.StatusBadRequest},
		{name: "outside year", target: "/api/v1/venues/v-101/available-slots?date=2025-08-10", err: getAvailableSlots.ErrOutsideAcademicYear, wantCode: http.StatusBadRequest},
		{name: "calendar not loaded", target: "/api/v1/venues/v-101/available-slots?date=2024-09-09", err: getAvailableSlots.ErrCalendarUnavailable, wantCode: http.StatusServiceUnavailable},
		{name: "internal", target: "/api/v1/venues/v-101/available-slots?date=2024-09-09", err: getAvailableSlots.ErrInternal, wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubUseCase{err: tt.err}, tt.target)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
