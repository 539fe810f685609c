package calendarfile

// Имена разделов верхнего уровня файла календаря
const (
	SectionAcademicYear          = "academic_year"
	SectionSchedulingConstraints = "scheduling_constraints"
	SectionHecticPeriods         = "hectic_periods"
	SectionUnavailableDates      = "unavailable_dates"
)

// RequiredSections разделы, без которых файл считается некорректным
var RequiredSections = []string{
	SectionAcademicYear,
	SectionSchedulingConstraints,
	SectionHecticPeriods,
	SectionUnavailableDates,
}

// RawCalendar файл календаря в том виде, в котором он записан
type RawCalendar struct {
	AcademicYear          RawAcademicYear           `json:"academic_year"`
	SchedulingConstraints RawSchedulingConstraints  `json:"scheduling_constraints"`
	HecticPeriods         []RawHecticPeriod         `json:"hectic_periods"`
	UnavailableDates      map[string][]RawDateEntry `json:"unavailable_dates"`
}

// RawAcademicYear границы учебного года в формате YYYY-MM-DD
type RawAcademicYear struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// RawSchedulingConstraints текстовые ограничения и стандартные блокировки площадок
type RawSchedulingConstraints struct {
	HardConstraints        []string                       `json:"hard_constraints"`
	SoftConstraints        []string                       `json:"soft_constraints"`
	StandardVenueBlockages map[string][]RawBlockageWindow `json:"standard_venue_blockages"`
}

// RawBlockageWindow повторяющееся окно занятости площадки, время HH:MM
type RawBlockageWindow struct {
	Day       string `json:"day,omitempty"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// RawHecticPeriod период повышенной нагрузки
type RawHecticPeriod struct {
	Name              string `json:"name"`
	Date              string `json:"date"`
	ReferenceCategory string `json:"reference_category"`
}

// RawDateEntry недоступная дата или диапазон дат
type RawDateEntry struct {
	Date  string `json:"date"`
	Event string `json:"event"`
}
