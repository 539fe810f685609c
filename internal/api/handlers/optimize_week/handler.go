package optimize_week

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-EventScheduler/internal/api/handlers"
	optimizeWeek "github.com/m04kA/SMC-EventScheduler/internal/usecase/optimize_week"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные параметры оптимизации"
	msgCalendarNotLoaded  = "учебный календарь не загружен"
)

type Handler struct {
	useCase OptimizeWeekUseCase
	logger  Logger
}

func NewHandler(useCase OptimizeWeekUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/optimize/week
// Предложение расписания не сохраняется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req OptimizeWeekRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /optimize/week - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом дат)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /optimize/week - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, optimizeWeek.ErrInvalidInput):
			h.logger.Warn("POST /optimize/week - Invalid input: week_start=%s, error=%v", req.WeekStart, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, optimizeWeek.ErrCalendarUnavailable):
			h.logger.Warn("POST /optimize/week - Calendar not loaded")
			handlers.RespondServiceUnavailable(w, msgCalendarNotLoaded)

		default:
			h.logger.Error("POST /optimize/week - Failed to optimize week: week_start=%s, error=%v", req.WeekStart, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /optimize/week - Proposal created: proposal_id=%s, proposed=%d, unscheduled=%d",
		result.ProposalID, len(result.Proposed), len(result.Unscheduled))
	handlers.RespondJSON(w, http.StatusOK, response)
}
