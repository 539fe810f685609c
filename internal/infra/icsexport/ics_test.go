package icsexport

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
)

func manila() *time.Location {
	loc, err := time.LoadLocation("Asia/Manila")
	if err != nil {
		return time.FixedZone("PHT", 8*60*60)
	}
	return loc
}

func fullDay(loc *time.Location, month time.Month, d int, reason string, kind domain.BlackoutKind, category domain.Category) domain.BlackoutSlot {
	start := time.Date(2024, month, d, 0, 0, 0, 0, loc)
	return domain.BlackoutSlot{Start: start.UTC(), End: start.AddDate(0, 0, 1).UTC(), Reason: reason, Kind: kind, Category: category}
}

func TestWrite(t *testing.T) {
	loc := manila()
	now := time.Date(2024, time.July, 1, 8, 30, 0, 0, time.UTC)
	slots := []domain.BlackoutSlot{
		fullDay(loc, time.August, 21, "Ninoy Aquino Day", domain.BlackoutCalendar, domain.CategoryNationalHolidays),
		fullDay(loc, time.September, 15, "Sunday Blockage", domain.BlackoutSunday, ""),
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, slots, Options{CalendarName: "SMC Blackouts, 2024", Location: loc, Now: now}))
	body := buf.String()

	for _, line := range []string{
		"BEGIN:VCALENDAR\r\n",
		"VERSION:2.0\r\n",
		"PRODID:" + ProductID + "\r\n",
		"X-WR-CALNAME:SMC Blackouts\\, 2024\r\n",
		"DTSTAMP:20240701T083000Z\r\n",
		"DTSTART;VALUE=DATE:20240821\r\n",
		"DTEND;VALUE=DATE:20240822\r\n",
		"SUMMARY:Ninoy Aquino Day\r\n",
		"DESCRIPTION:Blackout (calendar\\, national_holidays)\r\n",
		"DTSTART;VALUE=DATE:20240915\r\n",
		"DESCRIPTION:Blackout (sunday)\r\n",
	} {
		assert.Contains(t, body, line)
	}
	assert.Equal(t, 2, strings.Count(body, "BEGIN:VEVENT"))
	assert.True(t, strings.HasSuffix(body, "END:VCALENDAR\r\n"))
}

func TestWrite_StableUID(t *testing.T) {
	loc := manila()
	slots := []domain.BlackoutSlot{fullDay(loc, time.August, 26, "National Heroes Day", domain.BlackoutCalendar, domain.CategoryNationalHolidays)}

	var first, second bytes.Buffer
	require.NoError(t, Write(&first, slots, Options{Location: loc, Now: time.Now()}))
	require.NoError(t, Write(&second, slots, Options{Location: loc, Now: time.Now().Add(time.Hour)}))

	uid := func(body string) string {
		for _, line := range strings.Split(body, "\r\n") {
			if strings.HasPrefix(line, "UID:") {
				return line
			}
		}
		return ""
	}
	assert.NotEmpty(t, uid(first.String()))
	assert.Equal(t, uid(first.String()), uid(second.String()))
}

func TestWrite_PartialDayCoversEndDate(t *testing.T) {
	loc := manila()
	start := time.Date(2024, time.September, 9, 22, 0, 0, 0, loc)
	slot := domain.BlackoutSlot{Start: start.UTC(), End: start.Add(8 * time.Hour).UTC(), Reason: "Night Curfew (22:00-06:00)", Kind: domain.BlackoutCurfew}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []domain.BlackoutSlot{slot}, Options{Location: loc}))
	assert.Contains(t, buf.String(), "DTSTART;VALUE=DATE:20240909\r\n")
	assert.Contains(t, buf.String(), "DTEND;VALUE=DATE:20240911\r\n")
}

func TestFoldAndEscape(t *testing.T) {
	assert.Equal(t, `a\;b\,c\\d\ne`, escapeText("a;b,c\\d\ne"))

	long := strings.Repeat("x", 100)
	folded := fold("SUMMARY:" + long)
	lines := strings.Split(folded, "\r\n")
	require.Len(t, lines, 2)
	assert.Len(t, lines[0], 75)
	assert.True(t, strings.HasPrefix(lines[1], " "))
	assert.Equal(t, "SUMMARY:"+long, strings.ReplaceAll(folded, "\r\n ", ""))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWrite_Error(t *testing.T) {
	err := Write(failingWriter{}, nil, Options{})
	assert.ErrorIs(t, err, ErrWrite)
}
