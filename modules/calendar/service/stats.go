package service

import (
	"time"

	"academy-api/modules/calendar/entity"
)

// ComputeStats derives summary counters from an aggregated event set. Pure
// and deterministic for a given set and reference instant.
func ComputeStats(events []entity.CalendarEvent, reference time.Time) entity.CalendarStats {
	stats := entity.CalendarStats{
		entity.StatTotal:               len(events),
		entity.StatUpcoming:            0,
		entity.StatCompletedThisPeriod: 0,
		entity.StatCancelled:           0,
		entity.StatInProgress:          0,
	}

	for _, e := range events {
		if e.StartAt.After(reference) && e.Status != entity.StatusCancelled {
			stats[entity.StatUpcoming]++
		}
		switch e.Status {
		case entity.StatusCompleted:
			stats[entity.StatCompletedThisPeriod]++
		case entity.StatusCancelled:
			stats[entity.StatCancelled]++
		case entity.StatusInProgress:
			stats[entity.StatInProgress]++
		}
	}

	return stats
}
