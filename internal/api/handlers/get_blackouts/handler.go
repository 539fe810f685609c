package get_blackouts

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-EventScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-EventScheduler/internal/infra/csvio"
	"github.com/m04kA/SMC-EventScheduler/internal/service/calendar"
)

const (
	msgMissingRange      = "параметры from и to обязательны"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange      = "дата from должна быть раньше to"
	msgInvalidFormat     = "формат должен быть json или csv"
	msgCalendarNotLoaded = "учебный календарь не загружен"
)

// Форматы ответа
const (
	formatJSON = "json"
	formatCSV  = "csv"
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

// Handle GET /api/v1/calendar/blackouts
// Query params: from, to (required, YYYY-MM-DD, to не включается), format (json|csv)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	fromStr, toStr := query.Get("from"), query.Get("to")
	if fromStr == "" || toStr == "" {
		h.logger.Warn("GET /calendar/blackouts - Missing range")
		handlers.RespondBadRequest(w, msgMissingRange)
		return
	}

	format := query.Get("format")
	if format == "" {
		format = formatJSON
	}
	if format != formatJSON && format != formatCSV {
		h.logger.Warn("GET /calendar/blackouts - Unknown format: %s", format)
		handlers.RespondBadRequest(w, msgInvalidFormat)
		return
	}

	// Даты разбираются в часовом поясе календаря
	cal, err := h.calendars.Current()
	if err != nil {
		h.respondError(w, err)
		return
	}
	from, to, err := ParseRange(fromStr, toStr, cal.Location)
	if err != nil {
		h.logger.Warn("GET /calendar/blackouts - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	slots, err := h.calendars.Blackouts(from, to)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.logger.Info("GET /calendar/blackouts - Blackouts retrieved: from=%s, to=%s, count=%d, format=%s",
		fromStr, toStr, len(slots), format)

	if format == formatCSV {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="blackouts.csv"`)
		if err := csvio.WriteBlackouts(w, slots, cal.Location); err != nil {
			h.logger.Error("GET /calendar/blackouts - Failed to write csv: %v", err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(slots, cal.Location))
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, calendar.ErrNotLoaded):
		h.logger.Warn("GET /calendar/blackouts - Calendar not loaded")
		handlers.RespondServiceUnavailable(w, msgCalendarNotLoaded)

	case errors.Is(err, calendar.ErrInvalidRange):
		h.logger.Warn("GET /calendar/blackouts - Invalid range: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)

	default:
		h.logger.Error("GET /calendar/blackouts - Failed to get blackouts: %v", err)
		handlers.RespondInternalError(w)
	}
}
