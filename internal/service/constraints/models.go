package constraints

import (
	"github.com/m04kA/SMC-EventScheduler/internal/domain"
	"github.com/m04kA/SMC-EventScheduler/pkg/types"
)

// Options правила построения недельных ограничений
type Options struct {
	// BlockageCategories категории, даты которых блокируют целый день
	BlockageCategories []domain.Category
	// PreExamDays число дней перед началом экзаменов, закрытых для мероприятий
	PreExamDays int
	// CurfewStart и CurfewEnd ночной запрет; если конец не позже начала, запрет заканчивается на следующий день
	CurfewStart types.TimeString
	CurfewEnd   types.TimeString
}

// DefaultOptions настройки по умолчанию
func DefaultOptions() Options {
	return Options{
		BlockageCategories: domain.DefaultBlockageCategories,
		PreExamDays:        domain.DefaultPreExamDays,
		CurfewStart:        types.TimeString(domain.DefaultCurfewStart),
		CurfewEnd:          types.TimeString(domain.DefaultCurfewEnd),
	}
}
