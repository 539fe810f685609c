package metrics

import (
	"time"
)

// Методы ниже безопасны для nil-получателя: при выключенных метриках
// компоненты получают nil и вызывают их без дополнительных проверок

// IncCalendarReload учитывает перезагрузку календаря (result: ok, invalid, error)
func (m *Metrics) IncCalendarReload(result string) {
	if m == nil {
		return
	}
	m.CalendarReloadsTotal.WithLabelValues(result).Inc()
}

// IncValidation учитывает результат проверки события (result: valid, invalid)
func (m *Metrics) IncValidation(result string) {
	if m == nil {
		return
	}
	m.ValidationsTotal.WithLabelValues(result).Inc()
}

// IncViolation учитывает нарушение жесткого ограничения
func (m *Metrics) IncViolation(kind string) {
	if m == nil {
		return
	}
	m.ViolationsTotal.WithLabelValues(kind).Inc()
}

// ObserveOptimizerRun учитывает длительность прогона оптимизатора и число нераспределенных событий
func (m *Metrics) ObserveOptimizerRun(duration time.Duration, unscheduled int) {
	if m == nil {
		return
	}
	m.OptimizerRunDuration.Observe(duration.Seconds())
	m.OptimizerUnscheduled.Observe(float64(unscheduled))
}

// ObserveDBQuery учитывает длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
