package domain

// Severity of a calendar report issue
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ReportIssue is a single schema-level finding about the calendar file
type ReportIssue struct {
	Severity Severity
	Path     string // e.g. unavailable_dates.national_holidays[3].date
	Message  string
}

// CalendarReport is the result of checking the calendar file
type CalendarReport struct {
	Issues []ReportIssue
}

// Add appends an issue
func (r *CalendarReport) Add(severity Severity, path, message string) {
	r.Issues = append(r.Issues, ReportIssue{Severity: severity, Path: path, Message: message})
}

// HasErrors returns true if the report has at least one error-level issue
func (r *CalendarReport) HasErrors() bool {
	return r.Count(SeverityError) > 0
}

// Count returns the number of issues with the given severity
func (r *CalendarReport) Count(severity Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == severity {
			n++
		}
	}
	return n
}
