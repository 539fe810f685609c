package get_calendar

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-EventScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-EventScheduler/internal/domain"
	"github.com/m04kA/SMC-EventScheduler/internal/service/calendar"
)

const msgCalendarNotLoaded = "учебный календарь не загружен"

type Handler struct {
	calendars CalendarProvider
	logger    Logger
}

func NewHandler(calendars CalendarProvider, logger Logger) *Handler {
	return &Handler{
		calendars: calendars,
		logger:    logger,
	}
}

// Handle GET /api/v1/calendar
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	cal, err := h.calendars.Current()
	if err != nil {
		if errors.Is(err, calendar.ErrNotLoaded) {
			h.logger.Warn("GET /calendar - Calendar not loaded")
			handlers.RespondServiceUnavailable(w, msgCalendarNotLoaded)
			return
		}
		h.logger.Error("GET /calendar - Failed to get calendar: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /calendar - Calendar retrieved: %s - %s",
		cal.AcademicYear.StartDate.Format(domain.DateFormat), cal.AcademicYear.EndDate.Format(domain.DateFormat))
	handlers.RespondJSON(w, http.StatusOK, FromDomain(cal))
}
