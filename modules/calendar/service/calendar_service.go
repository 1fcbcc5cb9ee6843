package service

import (
	"context"
	"encoding/json"
	"time"

	"academy-api/core/cache"
	"academy-api/core/config"
	"academy-api/core/errors"
	"academy-api/core/logger"
	"academy-api/core/storage"
	"academy-api/modules/calendar/adapter"
	"academy-api/modules/calendar/dto"
	"academy-api/modules/calendar/entity"

	"github.com/google/uuid"
)

// CalendarService is the single entry point the presentation layer talks
// to. Both the event-list and the stats paths run through the same
// window->aggregate step, so they can never disagree within one request.
type CalendarService interface {
	// GetCalendarView resolves a day/week/month window around reference and
	// returns events plus stats computed from the same aggregation.
	GetCalendarView(ctx context.Context, userID, tenantID uuid.UUID, reference time.Time, granularity entity.Granularity) (*dto.CalendarResponse, error)

	// GetUserCalendar serves an arbitrary caller-supplied range (e.g. an
	// AJAX range picker); the window resolver is bypassed.
	GetUserCalendar(ctx context.Context, userID, tenantID uuid.UUID, start, end time.Time) (*dto.CalendarResponse, error)

	// GetCalendarStats computes counters over the month window around
	// reference.
	GetCalendarStats(ctx context.Context, userID, tenantID uuid.UUID, reference time.Time) (*dto.StatsResponse, error)

	// ExportCalendar renders the range as an ICS file and returns a
	// short-lived download link.
	ExportCalendar(ctx context.Context, userID, tenantID uuid.UUID, start, end time.Time) (*dto.ExportResponse, error)

	// WarmWeekWindow pre-aggregates the current week into the cache. Used
	// by the background warm-up worker only.
	WarmWeekWindow(ctx context.Context, userID, tenantID uuid.UUID) error
}

type calendarService struct {
	resolver   *WindowResolver
	aggregator *Aggregator
	cache      cache.Cache
	storage    storage.ExportStorage
	cacheTTL   time.Duration
	now        func() time.Time
}

func NewCalendarService(
	registry *adapter.Registry,
	cache cache.Cache,
	storage storage.ExportStorage,
	calCfg config.CalendarConfig,
) CalendarService {
	return &calendarService{
		resolver:   NewWindowResolver(calCfg.WeekStart),
		aggregator: NewAggregator(registry, calCfg.AdapterTimeout),
		cache:      cache,
		storage:    storage,
		cacheTTL:   calCfg.CacheTTL,
		now:        time.Now,
	}
}

func (s *calendarService) GetCalendarView(ctx context.Context, userID, tenantID uuid.UUID, reference time.Time, granularity entity.Granularity) (*dto.CalendarResponse, error) {
	window, err := s.resolver.Resolve(reference, granularity)
	if err != nil {
		return nil, err
	}

	events, failures := s.aggregateWindow(ctx, userID, tenantID, window)
	return &dto.CalendarResponse{
		Window:   window,
		Events:   events,
		Stats:    ComputeStats(events, reference.UTC()),
		Partial:  len(failures) > 0,
		Failures: failures,
	}, nil
}

func (s *calendarService) GetUserCalendar(ctx context.Context, userID, tenantID uuid.UUID, start, end time.Time) (*dto.CalendarResponse, error) {
	if start.IsZero() || end.IsZero() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "start and end are required", nil)
	}
	if end.Before(start) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "end precedes start", nil)
	}

	window := entity.CalendarWindow{
		Start:       start.UTC(),
		End:         end.UTC(),
		Granularity: entity.GranularityCustom,
	}

	events, failures := s.aggregateWindow(ctx, userID, tenantID, window)
	return &dto.CalendarResponse{
		Window:   window,
		Events:   events,
		Stats:    ComputeStats(events, s.now().UTC()),
		Partial:  len(failures) > 0,
		Failures: failures,
	}, nil
}

func (s *calendarService) GetCalendarStats(ctx context.Context, userID, tenantID uuid.UUID, reference time.Time) (*dto.StatsResponse, error) {
	window, err := s.resolver.Resolve(reference, entity.GranularityMonth)
	if err != nil {
		return nil, err
	}

	events, _ := s.aggregateWindow(ctx, userID, tenantID, window)
	return &dto.StatsResponse{
		Reference: reference.UTC(),
		Stats:     ComputeStats(events, reference.UTC()),
	}, nil
}

func (s *calendarService) WarmWeekWindow(ctx context.Context, userID, tenantID uuid.UUID) error {
	window, err := s.resolver.Resolve(s.now(), entity.GranularityWeek)
	if err != nil {
		return err
	}
	s.aggregateWindow(ctx, userID, tenantID, window)
	return nil
}

// cachedWindow is the redis payload for one aggregated window. Entries are
// written once and only ever read afterwards; freshness is handled by TTL.
type cachedWindow struct {
	Events   []entity.CalendarEvent `json:"events"`
	Failures []entity.SourceFailure `json:"failures,omitempty"`
}

// aggregateWindow is the shared window->aggregate step behind every entry
// point. The cache key includes user and tenant, so results are never
// shared across either.
func (s *calendarService) aggregateWindow(ctx context.Context, userID, tenantID uuid.UUID, window entity.CalendarWindow) ([]entity.CalendarEvent, []entity.SourceFailure) {
	key := window.CacheKey(userID, tenantID)

	if s.cache != nil {
		if payload, hit, err := s.cache.GetWindow(ctx, key); err != nil {
			logger.Warn("CalendarService:CacheGet", "key", key, "error", err)
		} else if hit {
			var cached cachedWindow
			if err := json.Unmarshal(payload, &cached); err != nil {
				logger.Warn("CalendarService:CacheDecode", "key", key, "error", err)
			} else {
				return cached.Events, cached.Failures
			}
		}
	}

	events, failures := s.aggregator.Aggregate(ctx, userID, tenantID, window)

	// Degraded results are not cached: the next request should retry the
	// failed source instead of pinning the gap for the TTL.
	if s.cache != nil && len(failures) == 0 {
		payload, err := json.Marshal(cachedWindow{Events: events})
		if err == nil {
			if err := s.cache.SetWindow(ctx, key, payload, s.cacheTTL); err != nil {
				logger.Warn("CalendarService:CacheSet", "key", key, "error", err)
			}
		}
	}

	return events, failures
}
