package adapter

import (
	"context"

	"academy-api/modules/calendar/entity"

	"github.com/google/uuid"
)

// Source type tags. The UI filters and styles events by these.
const (
	SourceLiveSession    = "live_session"
	SourceCourseDeadline = "course_deadline"
	SourceTutoring       = "tutoring"
	SourceGoogleCalendar = "google_calendar"
)

// SourceAdapter normalizes one event domain's native records into
// CalendarEvent for a given user and window.
//
// Contract:
//   - read-only and idempotent
//   - results scoped strictly to (userID, tenantID)
//   - only events whose [StartAt, EndAt) intersects the window
//
// A new event domain is added by implementing this interface and appending
// it to the registry; the aggregator does not change.
type SourceAdapter interface {
	SourceType() string
	Fetch(ctx context.Context, userID, tenantID uuid.UUID, window entity.CalendarWindow) ([]entity.CalendarEvent, error)
}

// Registry is the ordered list of adapters consulted on every aggregation.
// Order only matters for duplicate keys, which legitimate adapters never
// produce (first occurrence wins).
type Registry struct {
	adapters []SourceAdapter
}

func NewRegistry(adapters ...SourceAdapter) *Registry {
	return &Registry{adapters: adapters}
}

func (r *Registry) Register(a SourceAdapter) {
	r.adapters = append(r.adapters, a)
}

func (r *Registry) All() []SourceAdapter {
	return r.adapters
}
