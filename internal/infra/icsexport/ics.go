package icsexport

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
)

const (
	// ProductID идентификатор продукта в PRODID
	ProductID = "-//SMC//Event Scheduler//EN"

	uidDomain   = "event-scheduler.smc"
	dateLayout  = "20060102"
	stampLayout = "20060102T150405Z"
	// maxLineOctets длина строки до переноса
	maxLineOctets = 75
)

// Options параметры экспорта
type Options struct {
	CalendarName string
	Location     *time.Location // часовой пояс дат календаря
	Now          time.Time      // DTSTAMP
}

// Write пишет блокировки как события на целый день
// Блокировка, которая заканчивается не в полночь, занимает и день окончания
func Write(w io.Writer, slots []domain.BlackoutSlot, opts Options) error {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	stamp := opts.Now.UTC().Format(stampLayout)

	lw := &lineWriter{w: w}
	lw.line("BEGIN:VCALENDAR")
	lw.line("VERSION:2.0")
	lw.line("PRODID:" + ProductID)
	lw.line("CALSCALE:GREGORIAN")
	lw.line("METHOD:PUBLISH")
	if opts.CalendarName != "" {
		lw.line("X-WR-CALNAME:" + escapeText(opts.CalendarName))
	}
	lw.line("X-WR-TIMEZONE:" + loc.String())

	for _, slot := range slots {
		start := domain.DateOnly(slot.Start.In(loc))
		end := slot.End.In(loc)
		endDate := domain.DateOnly(end)
		if !end.Equal(endDate) || !endDate.After(start) {
			endDate = endDate.AddDate(0, 0, 1)
		}

		lw.line("BEGIN:VEVENT")
		lw.line("UID:" + eventUID(slot, start))
		lw.line("DTSTAMP:" + stamp)
		lw.line("DTSTART;VALUE=DATE:" + start.Format(dateLayout))
		lw.line("DTEND;VALUE=DATE:" + endDate.Format(dateLayout))
		lw.line("SUMMARY:" + escapeText(slot.Reason))
		if desc := description(slot); desc != "" {
			lw.line("DESCRIPTION:" + escapeText(desc))
		}
		lw.line("TRANSP:OPAQUE")
		lw.line("END:VEVENT")
	}

	lw.line("END:VCALENDAR")
	if lw.err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, lw.err)
	}
	return nil
}

// eventUID стабильный UID: одна и та же блокировка при повторном экспорте дает тот же UID
func eventUID(slot domain.BlackoutSlot, start time.Time) string {
	name := start.Format(dateLayout) + "/" + string(slot.Kind) + "/" + slot.Reason
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String() + "@" + uidDomain
}

func description(slot domain.BlackoutSlot) string {
	if slot.Category != "" {
		return fmt.Sprintf("Blackout (%s, %s)", slot.Kind, slot.Category)
	}
	return fmt.Sprintf("Blackout (%s)", slot.Kind)
}

// escapeText экранирует TEXT значение (RFC 5545, 3.3.11)
func escapeText(s string) string {
	r := strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\r\n", `\n`, "\n", `\n`)
	return r.Replace(s)
}

// lineWriter пишет строки с CRLF и переносом длинных строк, запоминая первую ошибку
type lineWriter struct {
	w   io.Writer
	err error
}

func (lw *lineWriter) line(s string) {
	if lw.err != nil {
		return
	}
	_, lw.err = io.WriteString(lw.w, fold(s)+"\r\n")
}

// fold переносит строку длиннее 75 октетов, не разрывая UTF-8 символы
func fold(s string) string {
	if len(s) <= maxLineOctets {
		return s
	}
	var b strings.Builder
	width := 0
	limit := maxLineOctets
	for _, r := range s {
		size := len(string(r))
		if width+size > limit {
			b.WriteString("\r\n ")
			width = 0
			// пробел в начале строки продолжения входит в ее длину
			limit = maxLineOctets - 1
		}
		b.WriteRune(r)
		width += size
	}
	return b.String()
}
