package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"academy-api/modules/calendar/adapter"
	"academy-api/modules/calendar/entity"

	"github.com/google/uuid"
)

type fakeAdapter struct {
	name   string
	events []entity.CalendarEvent
	err    error
	delay  time.Duration
	calls  int
}

func (f *fakeAdapter) SourceType() string { return f.name }

func (f *fakeAdapter) Fetch(ctx context.Context, userID, tenantID uuid.UUID, window entity.CalendarWindow) ([]entity.CalendarEvent, error) {
	f.calls++
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

var (
	testUser    = uuid.MustParse("8a0b2c1d-0000-4000-8000-000000000001")
	testTenant  = uuid.MustParse("8a0b2c1d-0000-4000-8000-000000000002")
	otherUser   = uuid.MustParse("8a0b2c1d-0000-4000-8000-000000000003")
	otherTenant = uuid.MustParse("8a0b2c1d-0000-4000-8000-000000000004")
)

func testEvent(source, id string, start time.Time, status entity.EventStatus) entity.CalendarEvent {
	return entity.CalendarEvent{
		ID:          id,
		SourceType:  source,
		Title:       id,
		StartAt:     start,
		EndAt:       start.Add(time.Hour),
		Status:      status,
		OwnerUserID: testUser,
		TenantID:    testTenant,
	}
}

func testWindow(start, end time.Time) entity.CalendarWindow {
	return entity.CalendarWindow{Start: start, End: end, Granularity: entity.GranularityDay}
}

func TestAggregateOrdersByStartThenSource(t *testing.T) {
	base := time.Date(2026, time.September, 15, 9, 0, 0, 0, time.UTC)

	a := NewAggregator(adapter.NewRegistry(
		&fakeAdapter{name: "zz_source", events: []entity.CalendarEvent{
			testEvent("zz_source", "z1", base, entity.StatusScheduled),
			testEvent("zz_source", "z2", base.Add(2*time.Hour), entity.StatusScheduled),
		}},
		&fakeAdapter{name: "aa_source", events: []entity.CalendarEvent{
			testEvent("aa_source", "a1", base, entity.StatusScheduled),
			testEvent("aa_source", "a2", base.Add(time.Hour), entity.StatusScheduled),
		}},
	), time.Second)

	events, failures := a.Aggregate(context.Background(), testUser, testTenant, testWindow(base.Add(-time.Hour), base.Add(6*time.Hour)))
	if len(failures) != 0 {
		t.Fatalf("unexpected failures: %v", failures)
	}

	var got []string
	for _, e := range events {
		got = append(got, e.Key())
	}
	want := []string{"aa_source/a1", "zz_source/z1", "aa_source/a2", "zz_source/z2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestAggregateIsDeterministic(t *testing.T) {
	base := time.Date(2026, time.September, 15, 9, 0, 0, 0, time.UTC)
	registry := adapter.NewRegistry(
		&fakeAdapter{name: "live_session", events: []entity.CalendarEvent{
			testEvent("live_session", "s1", base.Add(3*time.Hour), entity.StatusScheduled),
			testEvent("live_session", "s2", base, entity.StatusCompleted),
		}},
		&fakeAdapter{name: "tutoring", events: []entity.CalendarEvent{
			testEvent("tutoring", "t1", base.Add(time.Hour), entity.StatusScheduled),
		}},
	)
	a := NewAggregator(registry, time.Second)
	window := testWindow(base.Add(-time.Hour), base.Add(6*time.Hour))

	first, _ := a.Aggregate(context.Background(), testUser, testTenant, window)
	second, _ := a.Aggregate(context.Background(), testUser, testTenant, window)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated aggregation differs:\nfirst:  %v\nsecond: %v", first, second)
	}
}

func TestAggregateDeduplicatesFirstWins(t *testing.T) {
	base := time.Date(2026, time.September, 15, 9, 0, 0, 0, time.UTC)

	early := testEvent("live_session", "dup", base, entity.StatusScheduled)
	early.Title = "first"
	late := testEvent("live_session", "dup", base, entity.StatusCancelled)
	late.Title = "second"

	a := NewAggregator(adapter.NewRegistry(
		&fakeAdapter{name: "live_session", events: []entity.CalendarEvent{early}},
		&fakeAdapter{name: "shadow", events: []entity.CalendarEvent{late}},
	), time.Second)

	events, _ := a.Aggregate(context.Background(), testUser, testTenant, testWindow(base.Add(-time.Hour), base.Add(6*time.Hour)))
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Title != "first" {
		t.Errorf("kept title = %q, want %q (first occurrence wins)", events[0].Title, "first")
	}
}

func TestAggregateSurvivesAdapterFailure(t *testing.T) {
	base := time.Date(2026, time.September, 15, 9, 0, 0, 0, time.UTC)

	a := NewAggregator(adapter.NewRegistry(
		&fakeAdapter{name: "healthy", events: []entity.CalendarEvent{
			testEvent("healthy", "h1", base, entity.StatusScheduled),
		}},
		&fakeAdapter{name: "broken", err: errors.New("connection refused")},
		&fakeAdapter{name: "slow", delay: 500 * time.Millisecond, events: []entity.CalendarEvent{
			testEvent("slow", "s1", base, entity.StatusScheduled),
		}},
	), 50*time.Millisecond)

	events, failures := a.Aggregate(context.Background(), testUser, testTenant, testWindow(base.Add(-time.Hour), base.Add(6*time.Hour)))

	if len(events) != 1 || events[0].ID != "h1" {
		t.Fatalf("events = %v, want just h1", events)
	}
	if len(failures) != 2 {
		t.Fatalf("failures = %v, want broken and slow", failures)
	}
	seen := map[string]bool{}
	for _, f := range failures {
		seen[f.SourceType] = true
	}
	if !seen["broken"] || !seen["slow"] {
		t.Errorf("failure sources = %v, want broken and slow", failures)
	}
}

func TestAggregateDropsOutOfScopeEvents(t *testing.T) {
	base := time.Date(2026, time.September, 15, 9, 0, 0, 0, time.UTC)

	crossTenant := testEvent("live_session", "evil1", base, entity.StatusScheduled)
	crossTenant.TenantID = otherTenant
	crossUser := testEvent("live_session", "evil2", base, entity.StatusScheduled)
	crossUser.OwnerUserID = otherUser
	ok := testEvent("live_session", "ok", base, entity.StatusScheduled)

	a := NewAggregator(adapter.NewRegistry(
		&fakeAdapter{name: "live_session", events: []entity.CalendarEvent{crossTenant, crossUser, ok}},
	), time.Second)

	events, failures := a.Aggregate(context.Background(), testUser, testTenant, testWindow(base.Add(-time.Hour), base.Add(6*time.Hour)))
	if len(failures) != 0 {
		t.Fatalf("unexpected failures: %v", failures)
	}
	if len(events) != 1 || events[0].ID != "ok" {
		t.Fatalf("events = %v, want only the in-scope event", events)
	}
}

func TestAggregateTagsSourceColor(t *testing.T) {
	base := time.Date(2026, time.September, 15, 9, 0, 0, 0, time.UTC)

	a := NewAggregator(adapter.NewRegistry(
		&fakeAdapter{name: adapter.SourceTutoring, events: []entity.CalendarEvent{
			testEvent(adapter.SourceTutoring, "t1", base, entity.StatusScheduled),
		}},
		&fakeAdapter{name: "unknown_source", events: []entity.CalendarEvent{
			testEvent("unknown_source", "u1", base, entity.StatusScheduled),
		}},
	), time.Second)

	events, _ := a.Aggregate(context.Background(), testUser, testTenant, testWindow(base.Add(-time.Hour), base.Add(6*time.Hour)))
	for _, e := range events {
		if e.Metadata["color"] == "" {
			t.Errorf("event %s has no color tag", e.Key())
		}
	}
}

func TestAggregateEndToEndWithStats(t *testing.T) {
	now := time.Date(2026, time.September, 15, 12, 0, 0, 0, time.UTC)

	a1 := testEvent("adapter_a", "a1", now.Add(time.Hour), entity.StatusScheduled)
	b1 := testEvent("adapter_b", "b1", now.Add(-time.Hour), entity.StatusCompleted)

	agg := NewAggregator(adapter.NewRegistry(
		&fakeAdapter{name: "adapter_a", events: []entity.CalendarEvent{a1}},
		&fakeAdapter{name: "adapter_b", events: []entity.CalendarEvent{b1}},
	), time.Second)

	events, failures := agg.Aggregate(context.Background(), testUser, testTenant, testWindow(now.Add(-2*time.Hour), now.Add(2*time.Hour)))
	if len(failures) != 0 {
		t.Fatalf("unexpected failures: %v", failures)
	}
	if len(events) != 2 || events[0].ID != "b1" || events[1].ID != "a1" {
		t.Fatalf("events = %v, want [b1 a1]", events)
	}

	stats := ComputeStats(events, now)
	if stats[entity.StatTotal] != 2 {
		t.Errorf("total = %d, want 2", stats[entity.StatTotal])
	}
	if stats[entity.StatUpcoming] != 1 {
		t.Errorf("upcoming = %d, want 1", stats[entity.StatUpcoming])
	}
	if stats[entity.StatCompletedThisPeriod] != 1 {
		t.Errorf("completed_this_period = %d, want 1", stats[entity.StatCompletedThisPeriod])
	}
}
