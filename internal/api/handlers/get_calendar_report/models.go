package get_calendar_report

import "github.com/m04kA/SMC-EventScheduler/internal/domain"

// CalendarReportResponse HTTP response model
type CalendarReportResponse struct {
	Valid    bool    `json:"valid"`
	Errors   int     `json:"errors"`
	Warnings int     `json:"warnings"`
	Issues   []Issue `json:"issues"`
}

// Issue замечание к файлу календаря
type Issue struct {
	Severity string `json:"severity"`
	Path     string `json:"path,omitempty"`
	Message  string `json:"message"`
}

// FromDomain конвертирует отчет в HTTP response
func FromDomain(report *domain.CalendarReport) *CalendarReportResponse {
	issues := make([]Issue, len(report.Issues))
	for i, issue := range report.Issues {
		issues[i] = Issue{
			Severity: string(issue.Severity),
			Path:     issue.Path,
			Message:  issue.Message,
		}
	}

	return &CalendarReportResponse{
		Valid:    !report.HasErrors(),
		Errors:   report.Count(domain.SeverityError),
		Warnings: report.Count(domain.SeverityWarning),
		Issues:   issues,
	}
}
