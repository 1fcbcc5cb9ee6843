package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"academy-api/core/config"
	apperrors "academy-api/core/errors"
	"academy-api/modules/calendar/adapter"
	"academy-api/modules/calendar/entity"

	"github.com/google/uuid"
)

type fakeCache struct {
	store map[string][]byte
	sets  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string][]byte{}}
}

func (c *fakeCache) GetWindow(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := c.store[key]
	return v, ok, nil
}

func (c *fakeCache) SetWindow(_ context.Context, key string, payload []byte, _ time.Duration) error {
	c.store[key] = payload
	c.sets++
	return nil
}

func (c *fakeCache) InvalidateUser(_ context.Context, _ string) error { return nil }

func (c *fakeCache) MarkUserActive(_ context.Context, _, _ string) error { return nil }

func (c *fakeCache) ActiveUsers(_ context.Context, _ time.Duration) ([]string, error) {
	return nil, nil
}

func (c *fakeCache) Close() error { return nil }

func testCalendarConfig() config.CalendarConfig {
	return config.CalendarConfig{
		WeekStart:      "monday",
		AdapterTimeout: time.Second,
		CacheTTL:       time.Minute,
	}
}

func TestGetCalendarViewEventsAndStatsAgree(t *testing.T) {
	ref := time.Date(2026, time.September, 15, 12, 0, 0, 0, time.UTC)

	registry := adapter.NewRegistry(&fakeAdapter{name: "live_session", events: []entity.CalendarEvent{
		testEvent("live_session", "s1", ref.Add(time.Hour), entity.StatusScheduled),
		testEvent("live_session", "s2", ref.Add(-time.Hour), entity.StatusCompleted),
	}})

	svc := NewCalendarService(registry, nil, nil, testCalendarConfig())
	res, err := svc.GetCalendarView(context.Background(), testUser, testTenant, ref, entity.GranularityWeek)
	if err != nil {
		t.Fatalf("GetCalendarView returned error: %v", err)
	}

	if res.Partial {
		t.Error("Partial = true, want false")
	}
	if res.Window.Granularity != entity.GranularityWeek {
		t.Errorf("granularity = %s, want week", res.Window.Granularity)
	}
	if len(res.Events) != 2 {
		t.Fatalf("got %d events, want 2", len(res.Events))
	}
	if res.Stats[entity.StatTotal] != len(res.Events) {
		t.Errorf("stats total %d disagrees with event count %d", res.Stats[entity.StatTotal], len(res.Events))
	}
	if res.Stats[entity.StatUpcoming] != 1 {
		t.Errorf("upcoming = %d, want 1", res.Stats[entity.StatUpcoming])
	}
}

func TestAggregationResultIsCached(t *testing.T) {
	ref := time.Date(2026, time.September, 15, 12, 0, 0, 0, time.UTC)

	src := &fakeAdapter{name: "live_session", events: []entity.CalendarEvent{
		testEvent("live_session", "s1", ref.Add(time.Hour), entity.StatusScheduled),
	}}
	cache := newFakeCache()
	svc := NewCalendarService(adapter.NewRegistry(src), cache, nil, testCalendarConfig())

	if _, err := svc.GetCalendarView(context.Background(), testUser, testTenant, ref, entity.GranularityWeek); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := svc.GetCalendarView(context.Background(), testUser, testTenant, ref, entity.GranularityWeek); err != nil {
		t.Fatalf("second call: %v", err)
	}

	if src.calls != 1 {
		t.Errorf("adapter invoked %d times, want 1 (second call served from cache)", src.calls)
	}
	if cache.sets != 1 {
		t.Errorf("cache written %d times, want 1", cache.sets)
	}
}

func TestDegradedResultIsNotCached(t *testing.T) {
	ref := time.Date(2026, time.September, 15, 12, 0, 0, 0, time.UTC)

	healthy := &fakeAdapter{name: "live_session", events: []entity.CalendarEvent{
		testEvent("live_session", "s1", ref.Add(time.Hour), entity.StatusScheduled),
	}}
	broken := &fakeAdapter{name: "tutoring", err: errors.New("timeout")}
	cache := newFakeCache()
	svc := NewCalendarService(adapter.NewRegistry(healthy, broken), cache, nil, testCalendarConfig())

	res, err := svc.GetCalendarView(context.Background(), testUser, testTenant, ref, entity.GranularityWeek)
	if err != nil {
		t.Fatalf("GetCalendarView returned error: %v", err)
	}
	if !res.Partial {
		t.Error("Partial = false, want true with a failing adapter")
	}
	if len(res.Events) != 1 {
		t.Errorf("got %d events, want the healthy adapter's 1", len(res.Events))
	}
	if cache.sets != 0 {
		t.Errorf("degraded result was cached (%d writes), want 0", cache.sets)
	}

	// A retry hits the adapters again instead of pinning the gap.
	if _, err := svc.GetCalendarView(context.Background(), testUser, testTenant, ref, entity.GranularityWeek); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if healthy.calls != 2 {
		t.Errorf("healthy adapter invoked %d times, want 2", healthy.calls)
	}
}

func TestGetUserCalendarRejectsInvalidRange(t *testing.T) {
	svc := NewCalendarService(adapter.NewRegistry(), nil, nil, testCalendarConfig())

	start := time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC)
	_, err := svc.GetUserCalendar(context.Background(), testUser, testTenant, start, start.Add(-time.Hour))
	if err == nil {
		t.Fatal("expected error for end before start")
	}
	ae, ok := err.(*apperrors.AppError)
	if !ok || ae.Code != apperrors.ErrInvalidInput {
		t.Errorf("got %v, want ErrInvalidInput", err)
	}

	_, err = svc.GetUserCalendar(context.Background(), testUser, testTenant, time.Time{}, start)
	if err == nil {
		t.Fatal("expected error for zero start")
	}
}

func TestGetUserCalendarBypassesResolver(t *testing.T) {
	start := time.Date(2026, time.September, 3, 10, 30, 0, 0, time.UTC)
	end := start.Add(49 * time.Hour)

	var gotWindow entity.CalendarWindow
	src := &windowRecorder{inner: &fakeAdapter{name: "live_session"}, got: &gotWindow}

	svc := NewCalendarService(adapter.NewRegistry(src), nil, nil, testCalendarConfig())
	if _, err := svc.GetUserCalendar(context.Background(), testUser, testTenant, start, end); err != nil {
		t.Fatalf("GetUserCalendar returned error: %v", err)
	}

	if !gotWindow.Start.Equal(start) || !gotWindow.End.Equal(end) {
		t.Errorf("adapter saw window [%s, %s), want raw [%s, %s)", gotWindow.Start, gotWindow.End, start, end)
	}
	if gotWindow.Granularity != entity.GranularityCustom {
		t.Errorf("granularity = %s, want custom", gotWindow.Granularity)
	}
}

func TestGetCalendarStatsUsesMonthWindow(t *testing.T) {
	ref := time.Date(2026, time.September, 15, 12, 0, 0, 0, time.UTC)

	var gotWindow entity.CalendarWindow
	src := &windowRecorder{inner: &fakeAdapter{name: "live_session", events: []entity.CalendarEvent{
		testEvent("live_session", "s1", ref.Add(time.Hour), entity.StatusScheduled),
	}}, got: &gotWindow}

	svc := NewCalendarService(adapter.NewRegistry(src), nil, nil, testCalendarConfig())
	res, err := svc.GetCalendarStats(context.Background(), testUser, testTenant, ref)
	if err != nil {
		t.Fatalf("GetCalendarStats returned error: %v", err)
	}

	if gotWindow.Granularity != entity.GranularityMonth {
		t.Errorf("stats window granularity = %s, want month", gotWindow.Granularity)
	}
	if res.Stats[entity.StatTotal] != 1 {
		t.Errorf("total = %d, want 1", res.Stats[entity.StatTotal])
	}
}

// windowRecorder captures the window an adapter was invoked with.
type windowRecorder struct {
	inner *fakeAdapter
	got   *entity.CalendarWindow
}

func (r *windowRecorder) SourceType() string { return r.inner.SourceType() }

func (r *windowRecorder) Fetch(ctx context.Context, userID, tenantID uuid.UUID, window entity.CalendarWindow) ([]entity.CalendarEvent, error) {
	*r.got = window
	return r.inner.Fetch(ctx, userID, tenantID, window)
}
