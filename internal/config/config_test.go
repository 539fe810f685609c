package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_CSVSources(t *testing.T) {
	cfg, err := Load("testdata/csv.toml")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, SourceCSV, cfg.Sources.Kind)
	assert.Equal(t, "venues.csv", cfg.Sources.VenuesFile)
	assert.Equal(t, "calendar.json", cfg.Calendar.Path)
	assert.False(t, cfg.Calendar.Watch)
	assert.Equal(t, 20, cfg.Optimizer.PopulationSize)
	assert.Equal(t, uint64(42), cfg.Optimizer.Seed)

	// Незаданные значения берутся по умолчанию
	assert.Equal(t, "Asia/Manila", cfg.Calendar.Location)
	assert.Equal(t, int(time.July), cfg.Calendar.CutoffMonth)
	assert.Equal(t, 500*time.Millisecond, cfg.Calendar.DebounceInterval())
	assert.Equal(t, 7, cfg.Scheduling.PreExamDays)
	assert.Equal(t, "22:00", cfg.Scheduling.CurfewStart)
	assert.Equal(t, []string{"national_holidays", "school_holidays_breaks", "examination_periods"},
		cfg.Scheduling.BlockageCategories)
	assert.Equal(t, 50, cfg.Optimizer.Generations)
	assert.InDelta(t, 0.15, cfg.Optimizer.MutationRate, 1e-9)
	assert.Equal(t, 5, cfg.Optimizer.TournamentSize)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load("testdata/invalid.toml")
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "sources.kind")
	assert.Contains(t, err.Error(), "optimizer.mutation_rate")
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("testdata/broken.toml")
	assert.ErrorIs(t, err, ErrLoad)

	_, err = Load("testdata/missing.toml")
	assert.ErrorIs(t, err, ErrLoad)
}

func TestValidate_PostgresRequiresConnection(t *testing.T) {
	cfg := Default()
	require.ErrorIs(t, cfg.Validate(), ErrInvalid)

	cfg.Database.Host = "localhost"
	cfg.Database.DBName = "events"
	assert.NoError(t, cfg.Validate())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	db := DatabaseConfig{
		Host:     "db",
		Port:     5433,
		User:     "ro",
		Password: "secret",
		DBName:   "events",
		SSLMode:  "disable",
	}
	assert.Equal(t, "host=db port=5433 user=ro password=secret dbname=events sslmode=disable", db.DSN())
}

func TestLoad_ExplicitZeroIsKept(t *testing.T) {
	cfg, err := Load("testdata/explicit_zero.toml")
	require.NoError(t, err)

	assert.Zero(t, cfg.Scheduling.PreExamDays)
	assert.Zero(t, cfg.Scheduling.MinNoticeMinutes)
	assert.Zero(t, cfg.Optimizer.MutationRate)
	assert.Equal(t, "20:00", cfg.Scheduling.CurfewStart)
	assert.Equal(t, "06:00", cfg.Scheduling.CurfewEnd)
	assert.Equal(t, 30, cfg.Scheduling.SlotDurationMinutes)
}

func TestLoad_InvalidCurfew(t *testing.T) {
	_, err := Load("testdata/bad_curfew.toml")
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "scheduling.curfew_start")
}
