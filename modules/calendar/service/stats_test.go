package service

import (
	"testing"
	"time"

	"academy-api/modules/calendar/entity"
)

func TestComputeStatsFixedSet(t *testing.T) {
	now := time.Date(2026, time.September, 15, 12, 0, 0, 0, time.UTC)

	// 2 past/completed, 2 future/scheduled, 1 past/cancelled.
	events := []entity.CalendarEvent{
		testEvent("live_session", "p1", now.Add(-3*time.Hour), entity.StatusCompleted),
		testEvent("course_deadline", "p2", now.Add(-2*time.Hour), entity.StatusCompleted),
		testEvent("live_session", "f1", now.Add(time.Hour), entity.StatusScheduled),
		testEvent("tutoring", "f2", now.Add(2*time.Hour), entity.StatusScheduled),
		testEvent("tutoring", "c1", now.Add(-time.Hour), entity.StatusCancelled),
	}

	stats := ComputeStats(events, now)

	if stats[entity.StatTotal] != 5 {
		t.Errorf("total = %d, want 5", stats[entity.StatTotal])
	}
	if stats[entity.StatUpcoming] != 2 {
		t.Errorf("upcoming = %d, want 2", stats[entity.StatUpcoming])
	}
	if stats[entity.StatCompletedThisPeriod] != 2 {
		t.Errorf("completed_this_period = %d, want 2", stats[entity.StatCompletedThisPeriod])
	}
	if stats[entity.StatCancelled] != 1 {
		t.Errorf("cancelled = %d, want 1", stats[entity.StatCancelled])
	}
}

func TestComputeStatsUpcomingExcludesCancelled(t *testing.T) {
	now := time.Date(2026, time.September, 15, 12, 0, 0, 0, time.UTC)

	events := []entity.CalendarEvent{
		testEvent("tutoring", "f1", now.Add(time.Hour), entity.StatusCancelled),
		testEvent("tutoring", "f2", now.Add(time.Hour), entity.StatusScheduled),
	}

	stats := ComputeStats(events, now)
	if stats[entity.StatUpcoming] != 1 {
		t.Errorf("upcoming = %d, want 1 (cancelled future event excluded)", stats[entity.StatUpcoming])
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil, time.Date(2026, time.September, 15, 12, 0, 0, 0, time.UTC))
	if stats[entity.StatTotal] != 0 || stats[entity.StatUpcoming] != 0 || stats[entity.StatCompletedThisPeriod] != 0 {
		t.Errorf("empty set stats = %v, want all zeros", stats)
	}
}
