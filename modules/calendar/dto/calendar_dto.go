package dto

import (
	"time"

	"academy-api/modules/calendar/entity"
)

// CalendarResponse is the display-ready projection returned to the
// presentation layer.
type CalendarResponse struct {
	Window   entity.CalendarWindow  `json:"window"`
	Events   []entity.CalendarEvent `json:"events"`
	Stats    entity.CalendarStats   `json:"stats"`
	Partial  bool                   `json:"partial"`
	Failures []entity.SourceFailure `json:"failures,omitempty"`
}

// StatsResponse wraps the counter mapping for the stats-only endpoint.
type StatsResponse struct {
	Reference time.Time            `json:"reference"`
	Stats     entity.CalendarStats `json:"stats"`
}

// ExportResponse carries a short-lived download link to a generated ICS
// file.
type ExportResponse struct {
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
	EventCount  int       `json:"event_count"`
}
