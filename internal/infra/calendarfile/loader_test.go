package calendarfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixturePath = "../../../testdata/academic_calendar_2024_2025.json"

func TestLoad_Fixture(t *testing.T) {
	raw, err := Load(fixturePath)
	require.NoError(t, err)

	assert.Equal(t, "2024-08-01", raw.AcademicYear.StartDate)
	assert.Equal(t, "2025-07-31", raw.AcademicYear.EndDate)
	assert.NotEmpty(t, raw.SchedulingConstraints.HardConstraints)
	assert.NotEmpty(t, raw.SchedulingConstraints.SoftConstraints)
	assert.Len(t, raw.SchedulingConstraints.StandardVenueBlockages["Classroom_weekday"], 2)
	assert.Equal(t, "Saturday", raw.SchedulingConstraints.StandardVenueBlockages["Classroom_weekend_Sat"][0].Day)
	assert.Len(t, raw.HecticPeriods, 3)
	assert.Len(t, raw.UnavailableDates, 10)
	assert.Equal(t, RawDateEntry{Date: "Aug 21", Event: "Ninoy Aquino Day"}, raw.UnavailableDates["national_holidays"][0])
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{name: "not json", data: `{"academic_year": `, wantErr: ErrDecode},
		{name: "not an object", data: `[1, 2]`, wantErr: ErrDecode},
		{
			name:    "missing unavailable_dates",
			data:    `{"academic_year": {}, "scheduling_constraints": {}, "hectic_periods": []}`,
			wantErr: ErrMissingSection,
		},
		{
			name:    "null section",
			data:    `{"academic_year": null, "scheduling_constraints": {}, "hectic_periods": [], "unavailable_dates": {}}`,
			wantErr: ErrMissingSection,
		},
		{
			name:    "wrong type",
			data:    `{"academic_year": {}, "scheduling_constraints": {}, "hectic_periods": {}, "unavailable_dates": {}}`,
			wantErr: ErrDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDecode_IgnoresUnknownKeys(t *testing.T) {
	data := `{
		"version": 3,
		"academic_year": {"start_date": "2024-08-01", "end_date": "2025-07-31", "label": "AY 2024-2025"},
		"scheduling_constraints": {"hard_constraints": [], "soft_constraints": [], "standard_venue_blockages": {}},
		"hectic_periods": [],
		"unavailable_dates": {}
	}`

	raw, err := Decode([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, "2024-08-01", raw.AcademicYear.StartDate)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
