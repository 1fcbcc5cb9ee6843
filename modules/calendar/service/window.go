package service

import (
	"time"

	"academy-api/core/errors"
	"academy-api/modules/calendar/entity"
)

// WindowResolver turns a reference instant and a view granularity into the
// [start, end) range to query. Pure; all output in UTC.
type WindowResolver struct {
	weekStart time.Weekday
}

// NewWindowResolver builds a resolver for the configured first day of the
// week ("monday" or "sunday"). Anything else falls back to Monday.
func NewWindowResolver(weekStart string) *WindowResolver {
	day := time.Monday
	if weekStart == "sunday" {
		day = time.Sunday
	}
	return &WindowResolver{weekStart: day}
}

func (r *WindowResolver) Resolve(reference time.Time, granularity entity.Granularity) (entity.CalendarWindow, error) {
	if reference.IsZero() {
		return entity.CalendarWindow{}, errors.NewAppError(errors.ErrInvalidInput, "reference instant is not set", nil)
	}

	ref := reference.UTC()

	switch granularity {
	case entity.GranularityDay:
		start := startOfDay(ref)
		return entity.CalendarWindow{
			Start:       start,
			End:         start.AddDate(0, 0, 1),
			Granularity: granularity,
		}, nil

	case entity.GranularityWeek:
		start := r.startOfWeek(ref)
		return entity.CalendarWindow{
			Start:       start,
			End:         start.AddDate(0, 0, 7),
			Granularity: granularity,
		}, nil

	case entity.GranularityMonth:
		// Padded to full calendar weeks, so a month view renders complete
		// rows.
		firstOfMonth := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
		lastOfMonth := firstOfMonth.AddDate(0, 1, -1)
		start := r.startOfWeek(firstOfMonth)
		end := r.startOfWeek(lastOfMonth).AddDate(0, 0, 7)
		return entity.CalendarWindow{
			Start:       start,
			End:         end,
			Granularity: granularity,
		}, nil

	default:
		// Unknown granularity: exact month bounds, no week padding.
		firstOfMonth := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
		return entity.CalendarWindow{
			Start:       firstOfMonth,
			End:         firstOfMonth.AddDate(0, 1, 0),
			Granularity: entity.GranularityMonth,
		}, nil
	}
}

func (r *WindowResolver) startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	diff := (int(day.Weekday()) - int(r.weekStart) + 7) % 7
	return day.AddDate(0, 0, -diff)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
