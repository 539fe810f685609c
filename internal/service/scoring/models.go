package scoring

// Weights веса мягких ограничений и штраф за нарушение жесткого
type Weights struct {
	VenuePreferenceMatch    float64
	DateMatch               float64
	TimeslotMatch           float64
	CapacityFitPenalty      float64 // отрицательный
	HecticWeekPriorityBonus float64
	BaseScore               float64
	HardConstraintPenalty   float64
}

// DefaultWeights веса по умолчанию
func DefaultWeights() Weights {
	return Weights{
		VenuePreferenceMatch:    50,
		DateMatch:               20,
		TimeslotMatch:           30,
		CapacityFitPenalty:      -10,
		HecticWeekPriorityBonus: 100,
		BaseScore:               10,
		HardConstraintPenalty:   10000,
	}
}

// Breakdown составляющие мягкой оценки размещения
type Breakdown struct {
	Base            float64
	VenueMatch      float64
	DateTimeMatch   float64
	HecticBonus     float64
	CapacityPenalty float64
}

// Total сумма составляющих
func (b Breakdown) Total() float64 {
	return b.Base + b.VenueMatch + b.DateTimeMatch + b.HecticBonus + b.CapacityPenalty
}

// Доли веса для частичных совпадений
const (
	preferenceFactor = 0.8 // совпадение с предпочтением, а не с запросом
	halfFactor       = 0.5 // дата и время оцениваются половиной своего веса
)
