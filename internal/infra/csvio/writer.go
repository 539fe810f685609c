package csvio

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
)

// WriteBlackouts пишет блокировки в CSV; дата и время выводятся в часовом поясе loc
func WriteBlackouts(w io.Writer, slots []domain.BlackoutSlot, loc *time.Location) error {
	rows := BlackoutRows(slots, loc)
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return nil
}

// BlackoutRows переводит блокировки в строки экспорта
func BlackoutRows(slots []domain.BlackoutSlot, loc *time.Location) []*BlackoutRow {
	if loc == nil {
		loc = time.UTC
	}
	rows := make([]*BlackoutRow, 0, len(slots))
	for _, s := range slots {
		start := s.Start.In(loc)
		end := s.End.In(loc)
		rows = append(rows, &BlackoutRow{
			Date:     start.Format(domain.DateFormat),
			Start:    start.Format("2006-01-02 15:04"),
			End:      end.Format("2006-01-02 15:04"),
			Kind:     string(s.Kind),
			Category: string(s.Category),
			Reason:   s.Reason,
		})
	}
	return rows
}
