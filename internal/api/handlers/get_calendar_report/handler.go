package get_calendar_report

import (
	"net/http"

	"github.com/m04kA/SMC-EventScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-EventScheduler/internal/domain"
)

type Handler struct {
	inspector CalendarInspector
	logger    Logger
}

func NewHandler(inspector CalendarInspector, logger Logger) *Handler {
	return &Handler{
		inspector: inspector,
		logger:    logger,
	}
}

// Handle GET /api/v1/calendar/report
// 200 - ошибок нет, 422 - файл календаря содержит ошибки
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	report, err := h.inspector.Inspect(r.Context())
	if err != nil {
		h.logger.Error("GET /calendar/report - Failed to inspect calendar: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	status := http.StatusOK
	if report.HasErrors() {
		status = http.StatusUnprocessableEntity
	}

	h.logger.Info("GET /calendar/report - Calendar inspected: errors=%d, warnings=%d",
		report.Count(domain.SeverityError), report.Count(domain.SeverityWarning))
	handlers.RespondJSON(w, status, FromDomain(report))
}
