package export_calendar

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/m04kA/SMC-EventScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-EventScheduler/internal/domain"
	"github.com/m04kA/SMC-EventScheduler/internal/infra/icsexport"
	"github.com/m04kA/SMC-EventScheduler/internal/service/calendar"
)

const (
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange      = "дата from должна быть раньше to"
	msgCalendarNotLoaded = "учебный календарь не загружен"
)

type Handler struct {
	calendars BlackoutsProvider
	logger    Logger
}

func NewHandler(calendars BlackoutsProvider, logger Logger) *Handler {
	return &Handler{
		calendars: calendars,
		logger:    logger,
	}
}

// Handle GET /api/v1/calendar/export.ics
// Query params: from, to (YYYY-MM-DD, по умолчанию весь учебный год)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	cal, err := h.calendars.Current()
	if err != nil {
		h.respondError(w, err)
		return
	}

	// Диапазон по умолчанию - учебный год целиком
	from := domain.DateOnly(cal.AcademicYear.StartDate.In(cal.Location))
	to := domain.DateOnly(cal.AcademicYear.EndDate.In(cal.Location)).AddDate(0, 0, 1)

	query := r.URL.Query()
	if s := query.Get("from"); s != "" {
		if from, err = time.ParseInLocation(domain.DateFormat, s, cal.Location); err != nil {
			h.logger.Warn("GET /calendar/export.ics - Invalid from: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}
	if s := query.Get("to"); s != "" {
		if to, err = time.ParseInLocation(domain.DateFormat, s, cal.Location); err != nil {
			h.logger.Warn("GET /calendar/export.ics - Invalid to: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	slots, err := h.calendars.Blackouts(from, to)
	if err != nil {
		h.respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="blackouts.ics"`)
	err = icsexport.Write(w, slots, icsexport.Options{
		CalendarName: fmt.Sprintf("SMC Blackouts %d-%d", cal.AcademicYear.StartYear(), cal.AcademicYear.EndYear()),
		Location:     cal.Location,
		Now:          time.Now(),
	})
	if err != nil {
		h.logger.Error("GET /calendar/export.ics - Failed to write calendar: %v", err)
		return
	}

	h.logger.Info("GET /calendar/export.ics - Calendar exported: from=%s, to=%s, events=%d",
		from.Format(domain.DateFormat), to.Format(domain.DateFormat), len(slots))
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, calendar.ErrNotLoaded):
		h.logger.Warn("GET /calendar/export.ics - Calendar not loaded")
		handlers.RespondServiceUnavailable(w, msgCalendarNotLoaded)

	case errors.Is(err, calendar.ErrInvalidRange):
		h.logger.Warn("GET /calendar/export.ics - Invalid range: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)

	default:
		h.logger.Error("GET /calendar/export.ics - Failed to get blackouts: %v", err)
		handlers.RespondInternalError(w)
	}
}
