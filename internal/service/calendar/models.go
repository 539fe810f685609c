package calendar

import (
	"time"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
	"github.com/m04kA/SMC-EventScheduler/pkg/dateparse"
)

// Результаты перезагрузки для метрик
const (
	ReloadSuccess  = "success"
	ReloadRejected = "rejected"
	ReloadError    = "error"
)

// Options правила интерпретации файла календаря
type Options struct {
	// Location часовой пояс дат календаря
	Location *time.Location
	// CutoffMonth месяцы раньше него относятся ко второму году учебного года
	CutoffMonth time.Month
	// BlockageCategories категории, даты которых блокируют целый день
	BlockageCategories []domain.Category
}

// DefaultOptions настройки по умолчанию
func DefaultOptions() Options {
	loc, err := time.LoadLocation(domain.DefaultLocation)
	if err != nil {
		loc = time.FixedZone("PHT", 8*60*60)
	}
	return Options{
		Location:           loc,
		CutoffMonth:        domain.DefaultCutoffMonth,
		BlockageCategories: domain.DefaultBlockageCategories,
	}
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.CutoffMonth == 0 {
		o.CutoffMonth = domain.DefaultCutoffMonth
	}
	if len(o.BlockageCategories) == 0 {
		o.BlockageCategories = domain.DefaultBlockageCategories
	}
	return o
}

func (o Options) parseOptions(year domain.AcademicYear) dateparse.Options {
	return dateparse.Options{
		StartYear:   year.StartYear(),
		EndYear:     year.EndYear(),
		CutoffMonth: o.CutoffMonth,
		Until:       year.EndDate,
		Location:    o.Location,
	}
}
