package get_blackouts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EventScheduler/internal/infra/calendarfile"
	"github.com/m04kA/SMC-EventScheduler/internal/service/calendar"
)

const fixturePath = "../../../../testdata/academic_calendar_2024_2025.json"

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type nopMetrics struct{}

func (nopMetrics) IncCalendarReload(string) {}

func newService(t *testing.T, load bool) *calendar.Service {
	t.Helper()
	svc := calendar.NewService(fixturePath, calendar.DefaultOptions(), calendarfile.NewHolder(), nopMetrics{}, nopLogger{})
	if load {
		require.NoError(t, svc.Reload(context.Background()))
	}
	return svc
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_JSON(t *testing.T) {
	h := NewHandler(newService(t, true), nopLogger{})

	rec := serve(h, "/api/v1/calendar/blackouts?from=2024-08-19&to=2024-08-27")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp BlackoutsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, "2024-08-21", resp.Blackouts[0].Date)
	assert.Equal(t, "Ninoy Aquino Day", resp.Blackouts[0].Reason)
	assert.Equal(t, "calendar", resp.Blackouts[0].Kind)
	assert.Equal(t, "national_holidays", resp.Blackouts[0].Category)
	assert.Equal(t, "2024-08-26", resp.Blackouts[1].Date)
}

func TestHandler_CSV(t *testing.T) {
	h := NewHandler(newService(t, true), nopLogger{})

	rec := serve(h, "/api/v1/calendar/blackouts?from=2024-08-19&to=2024-08-27&format=csv")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "2024-08-21")
	assert.Contains(t, lines[1], "Ninoy Aquino Day")
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name     string
		loaded   bool
		target   string
		wantCode int
	}{
		{name: "missing to", loaded: true, target: "/?from=2024-08-19", wantCode: http.StatusBadRequest},
		{name: "bad date", loaded: true, target: "/?from=19.08.2024&to=2024-08-27", wantCode: http.StatusBadRequest},
		{name: "inverted range", loaded: true, target: "/?from=2024-08-27&to=2024-08-19", wantCode: http.StatusBadRequest},
		{name: "unknown format", loaded: true, target: "/?from=2024-08-19&to=2024-08-27&format=xml", wantCode: http.StatusBadRequest},
		{name: "calendar not loaded", loaded: false, target: "/?from=2024-08-19&to=2024-08-27", wantCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(newService(t, tt.loaded), nopLogger{})
			rec := serve(h, tt.target)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
