// Package dateparse normalizes the free-form date strings of the academic calendar
// ("Aug 21", "Oct 14 - 19", "Dec 21 - Jan 5", "Feb 24, 25 & Mar 1", "July 15 onwards")
// into sorted sets of calendar dates.
package dateparse

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrEmpty возвращается для пустой строки
	ErrEmpty = errors.New("dateparse: empty date string")

	// ErrUnrecognizedFormat возвращается, когда строка не подходит ни под один формат
	ErrUnrecognizedFormat = errors.New("dateparse: unrecognized date format")

	// ErrUnknownMonth возвращается для неизвестного названия месяца
	ErrUnknownMonth = errors.New("dateparse: unknown month")

	// ErrInvalidDay возвращается, когда дня нет в месяце
	ErrInvalidDay = errors.New("dateparse: invalid day of month")

	// ErrInvalidRange возвращается, когда конец диапазона раньше начала
	ErrInvalidRange = errors.New("dateparse: range end precedes start")
)

// Options описывает учебный год, к которому относятся даты без года
type Options struct {
	StartYear int
	EndYear   int
	// CutoffMonth: месяцы раньше него относятся к EndYear, остальные к StartYear
	CutoffMonth time.Month
	// Until последний день для формы "onwards"; нулевое значение делает "onwards" одним днем
	Until    time.Time
	Location *time.Location
}

var (
	reSingle     = regexp.MustCompile(`^([A-Za-z]{3,})\.?\s+(\d{1,2})$`)
	reDayRange   = regexp.MustCompile(`^([A-Za-z]{3,})\.?\s+(\d{1,2})\s*-\s*(\d{1,2})$`)
	reMonthRange = regexp.MustCompile(`^([A-Za-z]{3,})\.?\s+(\d{1,2})\s*-\s*([A-Za-z]{3,})\.?\s+(\d{1,2})$`)
	reBareDay    = regexp.MustCompile(`^(\d{1,2})$`)
	reBareRange  = regexp.MustCompile(`^(\d{1,2})\s*-\s*(\d{1,2})$`)
	reSpaces     = regexp.MustCompile(`\s+`)
)

// Parse разбирает строку даты и возвращает отсортированные уникальные даты (полночь в opts.Location)
func Parse(s string, opts Options) ([]time.Time, error) {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.CutoffMonth == 0 {
		opts.CutoffMonth = time.July
	}

	normalized := normalize(s)
	if normalized == "" {
		return nil, ErrEmpty
	}

	p := parser{opts: opts, seen: make(map[int]struct{})}

	var err error
	switch {
	case strings.HasSuffix(strings.ToLower(normalized), "onwards"):
		err = p.parseOnwards(strings.TrimSpace(normalized[:len(normalized)-len("onwards")]))
	case strings.ContainsAny(normalized, ",&"):
		err = p.parseList(normalized)
	default:
		err = p.parseSimple(normalized)
	}
	if err != nil {
		return nil, fmt.Errorf("%w (input %q)", err, s)
	}

	sort.Slice(p.dates, func(i, j int) bool { return p.dates[i].Before(p.dates[j]) })
	return p.dates, nil
}

// ParseRange возвращает первую и последнюю дату строки
func ParseRange(s string, opts Options) (time.Time, time.Time, error) {
	dates, err := Parse(s, opts)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return dates[0], dates[len(dates)-1], nil
}

func normalize(s string) string {
	s = strings.NewReplacer("–", "-", "—", "-").Replace(s)
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

type parser struct {
	opts  Options
	dates []time.Time
	seen  map[int]struct{}
}

func (p *parser) add(d time.Time) {
	key := d.Year()*10000 + int(d.Month())*100 + d.Day()
	if _, ok := p.seen[key]; ok {
		return
	}
	p.seen[key] = struct{}{}
	p.dates = append(p.dates, d)
}

func (p *parser) addRange(from, to time.Time) {
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		p.add(d)
	}
}

// parseSimple: "Mon D", "Mon D - D", "Mon D - Mon D"
func (p *parser) parseSimple(s string) error {
	if m := reMonthRange.FindStringSubmatch(s); m != nil {
		from, err := p.date(m[1], m[2])
		if err != nil {
			return err
		}
		to, err := p.date(m[3], m[4])
		if err != nil {
			return err
		}
		// Диапазон через Новый год: "Dec 21 - Jan 5"
		if to.Before(from) {
			to = to.AddDate(1, 0, 0)
		}
		if to.Before(from) {
			return ErrInvalidRange
		}
		p.addRange(from, to)
		return nil
	}

	if m := reDayRange.FindStringSubmatch(s); m != nil {
		from, err := p.date(m[1], m[2])
		if err != nil {
			return err
		}
		to, err := p.date(m[1], m[3])
		if err != nil {
			return err
		}
		if to.Before(from) {
			return ErrInvalidRange
		}
		p.addRange(from, to)
		return nil
	}

	if m := reSingle.FindStringSubmatch(s); m != nil {
		d, err := p.date(m[1], m[2])
		if err != nil {
			return err
		}
		p.add(d)
		return nil
	}

	return ErrUnrecognizedFormat
}

// parseList: "Feb 24, 25 & Mar 1", "Mar 3, 10-14"
// Месяц переносится с предыдущего элемента на голые дни
func (p *parser) parseList(s string) error {
	parts := strings.Split(strings.ReplaceAll(s, "&", ","), ",")

	currentMonth := ""
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if m := reBareRange.FindStringSubmatch(part); m != nil {
			if currentMonth == "" {
				return ErrUnrecognizedFormat
			}
			if err := p.parseSimple(currentMonth + " " + m[1] + " - " + m[2]); err != nil {
				return err
			}
			continue
		}

		if m := reBareDay.FindStringSubmatch(part); m != nil {
			if currentMonth == "" {
				return ErrUnrecognizedFormat
			}
			if err := p.parseSimple(currentMonth + " " + m[1]); err != nil {
				return err
			}
			continue
		}

		if err := p.parseSimple(part); err != nil {
			return err
		}
		currentMonth = lastMonth(part)
	}

	if len(p.dates) == 0 {
		return ErrUnrecognizedFormat
	}
	return nil
}

// parseOnwards: "July 15 onwards", с даты до конца учебного года
func (p *parser) parseOnwards(s string) error {
	m := reSingle.FindStringSubmatch(s)
	if m == nil {
		return ErrUnrecognizedFormat
	}
	from, err := p.date(m[1], m[2])
	if err != nil {
		return err
	}

	if p.opts.Until.IsZero() {
		p.add(from)
		return nil
	}

	y, mo, d := p.opts.Until.Date()
	until := time.Date(y, mo, d, 0, 0, 0, 0, p.opts.Location)
	// Дата относится к последнему году, в который она еще попадает до Until
	for next := from.AddDate(1, 0, 0); !next.After(until); next = from.AddDate(1, 0, 0) {
		from = next
	}
	if until.Before(from) {
		p.add(from)
		return nil
	}
	p.addRange(from, until)
	return nil
}

func (p *parser) date(monthName, dayStr string) (time.Time, error) {
	month, err := ParseMonth(monthName)
	if err != nil {
		return time.Time{}, err
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDay, dayStr)
	}

	year := p.opts.StartYear
	if month < p.opts.CutoffMonth {
		year = p.opts.EndYear
	}

	d := time.Date(year, month, day, 0, 0, 0, 0, p.opts.Location)
	if day < 1 || d.Month() != month {
		return time.Time{}, fmt.Errorf("%w: %s %d", ErrInvalidDay, month, day)
	}
	return d, nil
}

// lastMonth возвращает последнее название месяца в элементе списка ("Feb 24 - Mar 2" -> "Mar")
func lastMonth(part string) string {
	fields := strings.FieldsFunc(part, func(r rune) bool { return r == ' ' || r == '-' })
	month := ""
	for _, f := range fields {
		if _, err := ParseMonth(f); err == nil {
			month = f
		}
	}
	return month
}

// ParseMonth распознает английское название месяца: полное или префикс от 3 букв ("Sept", "Aug")
func ParseMonth(name string) (time.Month, error) {
	lower := strings.ToLower(strings.TrimSuffix(name, "."))
	if len(lower) >= 3 {
		for m := time.January; m <= time.December; m++ {
			if strings.HasPrefix(strings.ToLower(m.String()), lower) {
				return m, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMonth, name)
}
