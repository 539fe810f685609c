package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-EventScheduler/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-EventScheduler/internal/usecase/get_available_slots"
)

const (
	msgMissingVenueID      = "ID площадки обязателен"
	msgMissingDate         = "дата обязательна"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration     = "некорректная длительность, ожидается число минут"
	msgInvalidAttendees    = "некорректное число участников"
	msgDateNotAllowed      = "дата недоступна для планирования"
	msgOutsideAcademicYear = "дата вне учебного года"
	msgVenueNotFound       = "площадка не найдена"
	msgInvalidInput        = "некорректные параметры запроса"
	msgCalendarNotLoaded   = "учебный календарь не загружен"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/available-slots
// Query params: date (required, YYYY-MM-DD), duration (minutes), attendees
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID := mux.Vars(r)["venueId"]
	if venueID == "" {
		h.logger.Warn("GET /venues/{id}/available-slots - Missing venue ID")
		handlers.RespondBadRequest(w, msgMissingVenueID)
		return
	}

	query := r.URL.Query()
	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /venues/{id}/available-slots - Missing date: venue_id=%s", venueID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Формируем запрос к use case (с парсингом даты и чисел)
	useCaseReq, err := ToUseCaseRequest(venueID, dateStr, query.Get("duration"), query.Get("attendees"))
	if err != nil {
		h.logger.Warn("GET /venues/{id}/available-slots - Invalid query: venue_id=%s, error=%v", venueID, err)
		switch {
		case errors.Is(err, errInvalidDuration):
			handlers.RespondBadRequest(w, msgInvalidDuration)
		case errors.Is(err, errInvalidAttendees):
			handlers.RespondBadRequest(w, msgInvalidAttendees)
		default:
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrVenueNotFound):
			h.logger.Warn("GET /venues/{id}/available-slots - Venue not found: venue_id=%s", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, getAvailableSlots.ErrOutsideAcademicYear):
			h.logger.Warn("GET /venues/{id}/available-slots - Outside academic year: venue_id=%s, date=%s", venueID, dateStr)
			handlers.RespondBadRequest(w, msgOutsideAcademicYear)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /venues/{id}/available-slots - Date not allowed: venue_id=%s, date=%s", venueID, dateStr)
			handlers.RespondBadRequest(w, msgDateNotAllowed)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /venues/{id}/available-slots - Invalid input: venue_id=%s, error=%v", venueID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getAvailableSlots.ErrCalendarUnavailable):
			h.logger.Warn("GET /venues/{id}/available-slots - Calendar not loaded")
			handlers.RespondServiceUnavailable(w, msgCalendarNotLoaded)

		default:
			h.logger.Error("GET /venues/{id}/available-slots - Failed to get slots: venue_id=%s, date=%s, error=%v",
				venueID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /venues/{id}/available-slots - Slots retrieved successfully: venue_id=%s, date=%s, slots_count=%d",
		venueID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
