package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, calendarPath string) string {
	t.Helper()
	dir := t.TempDir()
	sources, err := filepath.Abs("../testdata/sources")
	require.NoError(t, err)

	path := filepath.Join(dir, "config.toml")
	content := fmt.Sprintf(`
[logs]
level = "error"

[sources]
kind = "csv"
venues_file = %q

[calendar]
path = %q
location = "Asia/Manila"
`, filepath.Join(sources, "venues.csv"), calendarPath)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func fixture(t *testing.T) string {
	t.Helper()
	path, err := filepath.Abs("../testdata/academic_calendar_2024_2025.json")
	require.NoError(t, err)
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestValidateCalendarCmd(t *testing.T) {
	cfg := writeConfig(t, fixture(t))

	out, err := run(t, "validate-calendar", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "OK")

	data, err := os.ReadFile(fixture(t))
	require.NoError(t, err)
	broken := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(strings.Replace(string(data), `"2024-08-01"`, `"someday"`, 1)), 0o644))

	out, err = run(t, "validate-calendar", "--config", cfg, broken)
	require.ErrorIs(t, err, errCalendarHasErrors)
	assert.Contains(t, out, "academic_year.start_date")
}

func TestBlackoutsCmd(t *testing.T) {
	cfg := writeConfig(t, fixture(t))

	t.Run("csv", func(t *testing.T) {
		out, err := run(t, "blackouts", "--config", cfg, "--from", "2024-08-19", "--to", "2024-08-27", "--format", "csv")
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 3)
		assert.Contains(t, lines[1], "Ninoy Aquino Day")
		assert.Contains(t, lines[2], "National Heroes Day")
	})

	t.Run("table", func(t *testing.T) {
		out, err := run(t, "blackouts", "--config", cfg, "--from", "2024-08-19", "--to", "2024-08-27")
		require.NoError(t, err)
		assert.Contains(t, out, "2024-08-21")
		assert.Contains(t, out, "2 blackout day(s)")
	})

	t.Run("ics to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "blackouts.ics")
		_, err := run(t, "blackouts", "--config", cfg, "--from", "2024-08-19", "--to", "2024-08-27", "-f", "ics", "-o", path)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(string(data), "BEGIN:VEVENT"))
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := run(t, "blackouts", "--config", cfg, "--format", "xml")
		assert.Error(t, err)
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := run(t, "blackouts", "--config", cfg, "--from", "yesterday")
		assert.Error(t, err)
	})
}
