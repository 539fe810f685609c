package domain

import "time"

// Default scheduling values
const (
	DefaultEventDuration       = 90 * time.Minute
	DefaultSlotDurationMinutes = 30
	DefaultPreExamDays         = 7
	DefaultCutoffMonth         = time.July
	DefaultLocation            = "Asia/Manila"
	DefaultCurfewStart         = "22:00"
	DefaultCurfewEnd           = "06:00"
	DefaultMinNoticeMinutes    = 60
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours
	MaxEventNameLength     = 200
	MaxWeekDays            = 7
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultBlockageCategories are the categories whose dates block whole days
var DefaultBlockageCategories = []Category{
	CategoryNationalHolidays,
	CategorySchoolHolidaysBreaks,
	CategoryExaminationPeriods,
}
