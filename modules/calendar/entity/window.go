package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Granularity is the requested calendar view size.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"

	// GranularityCustom marks a caller-supplied raw range that bypassed
	// the window resolver.
	GranularityCustom Granularity = "custom"
)

// CalendarWindow is the resolved [Start, End) instant range of a calendar
// query. Immutable once resolved; all instants are UTC.
type CalendarWindow struct {
	Start       time.Time   `json:"start"`
	End         time.Time   `json:"end"`
	Granularity Granularity `json:"granularity"`
}

func (w CalendarWindow) Validate() error {
	if w.Start.IsZero() || w.End.IsZero() {
		return fmt.Errorf("window bounds must be set")
	}
	if w.End.Before(w.Start) {
		return fmt.Errorf("window end %s precedes start %s", w.End, w.Start)
	}
	return nil
}

// CacheKey identifies one aggregation result in the window cache. The user
// and tenant are part of the key, so entries can never be shared across
// users or tenants.
func (w CalendarWindow) CacheKey(userID, tenantID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%d:%d", tenantID, userID, w.Start.Unix(), w.End.Unix())
}
