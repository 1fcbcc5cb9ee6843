package entity

import (
	"time"

	"github.com/google/uuid"
)

// EventStatus is the closed status set every source is normalized to.
type EventStatus string

const (
	StatusScheduled  EventStatus = "scheduled"
	StatusInProgress EventStatus = "in_progress"
	StatusCompleted  EventStatus = "completed"
	StatusCancelled  EventStatus = "cancelled"
)

// CalendarEvent is the common currency of the aggregation engine. Instances
// are projections built fresh on every query; they are never persisted and
// never mutated after construction.
type CalendarEvent struct {
	// ID is stable within its source domain only. De-duplication identity
	// is (SourceType, ID).
	ID          string            `json:"id"`
	SourceType  string            `json:"source_type"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	StartAt     time.Time         `json:"start_at"`
	EndAt       time.Time         `json:"end_at"`
	Status      EventStatus       `json:"status"`
	Metadata    map[string]string `json:"metadata,omitempty"`

	OwnerUserID uuid.UUID `json:"-"`
	TenantID    uuid.UUID `json:"-"`
}

// Key is the de-duplication identity of the event.
func (e CalendarEvent) Key() string {
	return e.SourceType + "/" + e.ID
}

// Overlaps reports whether [StartAt, EndAt) intersects [start, end).
// Instantaneous events (EndAt == StartAt) count when StartAt is inside.
func (e CalendarEvent) Overlaps(start, end time.Time) bool {
	if e.EndAt.Equal(e.StartAt) {
		return !e.StartAt.Before(start) && e.StartAt.Before(end)
	}
	return e.StartAt.Before(end) && e.EndAt.After(start)
}
