package get_calendar_report

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubInspector struct {
	report *domain.CalendarReport
	err    error
}

func (s stubInspector) Inspect(context.Context) (*domain.CalendarReport, error) {
	return s.report, s.err
}

func TestHandler(t *testing.T) {
	withWarning := &domain.CalendarReport{}
	withWarning.Add(domain.SeverityWarning, "hectic_periods[0].date", "date is outside the academic year")

	withError := &domain.CalendarReport{}
	withError.Add(domain.SeverityError, "academic_year.start_date", "invalid date")
	withError.Add(domain.SeverityWarning, "venue_blockages.Gym", "overlapping windows")

	tests := []struct {
		name      string
		inspector stubInspector
		wantCode  int
		wantValid bool
		wantCount int
	}{
		{name: "warnings only", inspector: stubInspector{report: withWarning}, wantCode: http.StatusOK, wantValid: true, wantCount: 1},
		{name: "errors", inspector: stubInspector{report: withError}, wantCode: http.StatusUnprocessableEntity, wantCount: 2},
		{name: "clean", inspector: stubInspector{report: &domain.CalendarReport{}}, wantCode: http.StatusOK, wantValid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(tt.inspector, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/calendar/report", nil))
			require.Equal(t, tt.wantCode, rec.Code)

			var resp CalendarReportResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantValid, resp.Valid)
			assert.Len(t, resp.Issues, tt.wantCount)
		})
	}
}

func TestHandler_ReadFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	h := NewHandler(stubInspector{err: errors.New("permission denied")}, nopLogger{})
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/calendar/report", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
