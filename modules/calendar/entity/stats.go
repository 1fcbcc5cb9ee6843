package entity

// CalendarStats maps counter names to counts. Derived on every query, never
// persisted.
type CalendarStats map[string]int

// Baseline counters. Additional counters may be added without changing the
// semantics of these three.
const (
	StatTotal               = "total"
	StatUpcoming            = "upcoming"
	StatCompletedThisPeriod = "completed_this_period"
	StatCancelled           = "cancelled"
	StatInProgress          = "in_progress"
)

// SourceFailure records one degraded calendar source on a best-effort
// response.
type SourceFailure struct {
	SourceType string `json:"source_type"`
	Message    string `json:"message"`
}
