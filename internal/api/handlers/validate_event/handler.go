package validate_event

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-EventScheduler/internal/api/handlers"
	validateEvent "github.com/m04kA/SMC-EventScheduler/internal/usecase/validate_event"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidInput        = "некорректные данные события"
	msgOutsideAcademicYear = "событие вне учебного года"
	msgVenueNotFound       = "площадка не найдена"
	msgCalendarNotLoaded   = "учебный календарь не загружен"
)

type Handler struct {
	useCase ValidateEventUseCase
	logger  Logger
}

func NewHandler(useCase ValidateEventUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/events/validate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ValidateEventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /events/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, validateEvent.ErrInvalidInput):
			h.logger.Warn("POST /events/validate - Invalid input: venue_id=%s, error=%v", req.VenueID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, validateEvent.ErrOutsideAcademicYear):
			h.logger.Warn("POST /events/validate - Outside academic year: venue_id=%s", req.VenueID)
			handlers.RespondBadRequest(w, msgOutsideAcademicYear)

		case errors.Is(err, validateEvent.ErrVenueNotFound):
			h.logger.Warn("POST /events/validate - Venue not found: venue_id=%s", req.VenueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, validateEvent.ErrCalendarUnavailable):
			h.logger.Warn("POST /events/validate - Calendar not loaded")
			handlers.RespondServiceUnavailable(w, msgCalendarNotLoaded)

		default:
			h.logger.Error("POST /events/validate - Failed to validate event: venue_id=%s, error=%v", req.VenueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /events/validate - Event validated: venue_id=%s, valid=%t, violations=%d",
		req.VenueID, result.Valid, len(result.Violations))
	handlers.RespondJSON(w, http.StatusOK, response)
}
