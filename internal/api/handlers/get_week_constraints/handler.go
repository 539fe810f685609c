package get_week_constraints

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-EventScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-EventScheduler/internal/domain"
	"github.com/m04kA/SMC-EventScheduler/internal/service/constraints"
)

const (
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDays       = "число дней должно быть от 1 до 7"
	msgInvalidWeek       = "некорректный диапазон недели"
	msgCalendarNotLoaded = "учебный календарь не загружен"
)

type Handler struct {
	constraints ConstraintsProvider
	logger      Logger
}

func NewHandler(constraints ConstraintsProvider, logger Logger) *Handler {
	return &Handler{
		constraints: constraints,
		logger:      logger,
	}
}

// Handle GET /api/v1/weeks/{start}/constraints
// Query params: days (1-7, по умолчанию 7)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	startStr := mux.Vars(r)["start"]

	days := domain.MaxWeekDays
	if s := r.URL.Query().Get("days"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > domain.MaxWeekDays {
			h.logger.Warn("GET /weeks/{start}/constraints - Invalid days: %s", s)
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
		days = n
	}

	cal, err := h.constraints.Calendar()
	if err != nil {
		h.respondError(w, err)
		return
	}

	// Неделя строится по календарным дням в часовом поясе календаря
	start, err := time.ParseInLocation(domain.DateFormat, startStr, cal.Location)
	if err != nil {
		h.logger.Warn("GET /weeks/{start}/constraints - Invalid start: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	week, _, err := h.constraints.ForWeek(start, start.AddDate(0, 0, days))
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.logger.Info("GET /weeks/{start}/constraints - Constraints built: start=%s, days=%d, hectic=%t, general_slots=%d",
		startStr, days, week.IsHecticWeek, len(week.GeneralSlots))
	handlers.RespondJSON(w, http.StatusOK, FromDomain(week))
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, constraints.ErrCalendarUnavailable):
		h.logger.Warn("GET /weeks/{start}/constraints - Calendar not loaded")
		handlers.RespondServiceUnavailable(w, msgCalendarNotLoaded)

	case errors.Is(err, constraints.ErrInvalidWeek):
		h.logger.Warn("GET /weeks/{start}/constraints - Invalid week: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWeek)

	default:
		h.logger.Error("GET /weeks/{start}/constraints - Failed to build constraints: %v", err)
		handlers.RespondInternalError(w)
	}
}
