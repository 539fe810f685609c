package get_calendar

import (
	"github.com/m04kA/SMC-EventScheduler/internal/domain"
)

// CalendarResponse HTTP response model
type CalendarResponse struct {
	AcademicYear    AcademicYear        `json:"academicYear"`
	Timezone        string              `json:"timezone"`
	HardConstraints []string            `json:"hardConstraints"`
	SoftConstraints []string            `json:"softConstraints"`
	VenueBlockages  map[string][]string `json:"venueBlockages"`
	HecticPeriods   []HecticPeriod      `json:"hecticPeriods"`
	// UnavailableDates число записей по категориям
	UnavailableDates map[string]int `json:"unavailableDates"`
}

// AcademicYear границы учебного года
type AcademicYear struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// HecticPeriod период повышенной нагрузки
type HecticPeriod struct {
	Name              string `json:"name"`
	Date              string `json:"date"`
	ReferenceCategory string `json:"referenceCategory"`
	StartDate         string `json:"startDate,omitempty"`
	EndDate           string `json:"endDate,omitempty"`
}

// FromDomain конвертирует календарь в HTTP response
func FromDomain(cal *domain.Calendar) *CalendarResponse {
	resp := &CalendarResponse{
		AcademicYear: AcademicYear{
			StartDate: cal.AcademicYear.StartDate.Format(domain.DateFormat),
			EndDate:   cal.AcademicYear.EndDate.Format(domain.DateFormat),
		},
		HardConstraints:  append([]string{}, cal.Constraints.Hard...),
		SoftConstraints:  append([]string{}, cal.Constraints.Soft...),
		VenueBlockages:   make(map[string][]string, len(cal.VenueBlockages)),
		HecticPeriods:    make([]HecticPeriod, 0, len(cal.HecticPeriods)),
		UnavailableDates: make(map[string]int, len(cal.Unavailable)),
	}
	if cal.Location != nil {
		resp.Timezone = cal.Location.String()
	}

	for key, windows := range cal.VenueBlockages {
		labels := make([]string, 0, len(windows))
		for _, w := range windows {
			labels = append(labels, w.Label())
		}
		resp.VenueBlockages[key] = labels
	}

	for _, p := range cal.HecticPeriods {
		period := HecticPeriod{Name: p.Name, Date: p.Raw, ReferenceCategory: string(p.ReferenceCategory)}
		if first, last, ok := p.Span(); ok {
			period.StartDate = first.Format(domain.DateFormat)
			period.EndDate = last.Format(domain.DateFormat)
		}
		resp.HecticPeriods = append(resp.HecticPeriods, period)
	}

	for category, entries := range cal.Unavailable {
		resp.UnavailableDates[string(category)] = len(entries)
	}

	return resp
}
